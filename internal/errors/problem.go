package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Sentinel errors surfaced by the analytics services.
var (
	ErrNoData              = errors.New("no data loaded")
	ErrUnknownParameter    = errors.New("unknown parameter")
	ErrUnknownAction       = errors.New("unknown action")
	ErrNoOperation         = errors.New("no operation requested")
	ErrParseFailed         = errors.New("parse failed")
	ErrInsufficientHistory = errors.New("insufficient history")
)

// ProblemDetails implements RFC 7807 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Additional fields for extensibility
	Extensions map[string]interface{} `json:"-"`
}

// Render implements the render.Renderer interface
func (pd *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, pd.Status)
	return nil
}

// MarshalJSON custom marshaler to include extensions
func (pd *ProblemDetails) MarshalJSON() ([]byte, error) {
	data := make(map[string]interface{})

	data["type"] = pd.Type
	data["title"] = pd.Title
	data["status"] = pd.Status

	if pd.Detail != "" {
		data["detail"] = pd.Detail
	}
	if pd.Instance != "" {
		data["instance"] = pd.Instance
	}

	for k, v := range pd.Extensions {
		data[k] = v
	}

	return json.Marshal(data)
}

// NewProblemDetails creates a new RFC 7807 compliant error
func NewProblemDetails(status int, problemType, title, detail, instance string) *ProblemDetails {
	return &ProblemDetails{
		Type:       problemType,
		Title:      title,
		Status:     status,
		Detail:     detail,
		Instance:   instance,
		Extensions: make(map[string]interface{}),
	}
}

// WithExtension adds an extension field to the problem details
func (pd *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	pd.Extensions[key] = value
	return pd
}

// MapServiceError maps service-layer sentinel errors to HTTP problem details.
func MapServiceError(err error, traceID string) render.Renderer {
	instance := fmt.Sprintf("/api/query#trace-%s", traceID)

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return NewProblemDetails(
			apiErr.StatusCode,
			"/errors/"+apiErr.ErrorCode,
			http.StatusText(apiErr.StatusCode),
			apiErr.Message,
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", apiErr.ErrorCode)
	}

	switch {
	case errors.Is(err, ErrNoData):
		return NewProblemDetails(
			http.StatusServiceUnavailable,
			"/errors/no-data",
			"No Data Loaded",
			"No meter export has been ingested yet. Load flow and quality exports first.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "NO_DATA")

	case errors.Is(err, ErrUnknownParameter):
		return NewProblemDetails(
			http.StatusNotFound,
			"/errors/unknown-parameter",
			"Unknown Parameter",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "UNKNOWN_PARAMETER")

	case errors.Is(err, ErrUnknownAction):
		return NewProblemDetails(
			http.StatusBadRequest,
			"/errors/unknown-action",
			"Unknown Action",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "UNKNOWN_ACTION")

	case errors.Is(err, ErrNoOperation):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			"/errors/no-operation",
			"No Operation",
			"The request does not map to any supported analytics operation.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "NO_OPERATION")

	case errors.Is(err, ErrParseFailed):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			"/errors/parse-failed",
			"Parse Failed",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "PARSE_FAILED")

	case errors.Is(err, ErrInsufficientHistory):
		return NewProblemDetails(
			http.StatusUnprocessableEntity,
			"/errors/insufficient-history",
			"Insufficient History",
			err.Error(),
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "INSUFFICIENT_HISTORY")

	default:
		return NewProblemDetails(
			http.StatusInternalServerError,
			"/errors/internal-error",
			"Internal Server Error",
			"An unexpected error occurred while processing your request.",
			instance,
		).WithExtension("trace_id", traceID).
			WithExtension("error_code", "INTERNAL_ERROR")
	}
}
