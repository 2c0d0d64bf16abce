// Package api contains the API contract shared with external callers, most
// importantly the query planner that maps free-text questions onto engine
// actions. Version v1 is the current stable contract.
package api

// Actions a planner may request. ActionNone signals that no structured
// operation applies and the caller should fall back to its unstructured path.
const (
	ActionFlowShift         = "flow_shift"
	ActionFlowDaily         = "flow_daily"
	ActionQualityCompliance = "quality_compliance"
	ActionBreachEvents      = "breach_events"
	ActionHumidityVsFlow    = "humidity_vs_flow"
	ActionNone              = "none"
)

// ActionRequest is a structured operation request: one named engine action
// plus optional parameters.
type ActionRequest struct {
	Action string       `json:"action" validate:"required,oneof=flow_shift flow_daily quality_compliance breach_events humidity_vs_flow none"`
	Params ActionParams `json:"params"`
}

// ActionParams narrows an action. RangeDays restricts the input to a trailing
// window ending at the series' own maximum timestamp before the operation
// runs; MinDurationMin post-filters breach events by duration.
type ActionParams struct {
	Parameter      string   `json:"parameter,omitempty"`
	RangeDays      *int     `json:"range_days,omitempty" validate:"omitempty,gt=0"`
	MinDurationMin *float64 `json:"min_duration_min,omitempty" validate:"omitempty,gte=0"`
}

// ActionResponse wraps a dispatched operation's result table.
type ActionResponse struct {
	Action string `json:"action"`
	Result any    `json:"result,omitempty"`
}
