package anomaly

import (
	"strings"

	"waterpulse/pkg/contracts/domain"
)

// Recommendations maps the parameters behind recent breaches to rule-of-thumb
// operator actions. An empty breach list yields a single all-clear message.
func Recommendations(breaches []domain.QualityReading) []string {
	if len(breaches) == 0 {
		return []string{"All parameters within safe ranges in the last 24h."}
	}

	params := make(map[string]struct{})
	for _, b := range breaches {
		params[b.Parameter] = struct{}{}
	}
	match := func(test func(string) bool) bool {
		for p := range params {
			if test(p) {
				return true
			}
		}
		return false
	}

	var tips []string
	if match(func(p string) bool { return strings.Contains(p, "TDS") }) {
		tips = append(tips, "High TDS detected: check RO/softener status, resin condition, and source blend.")
	}
	if match(func(p string) bool { return strings.Contains(p, "(pH") || strings.Contains(p, "pH)") }) {
		tips = append(tips, "pH out of range: verify dosing pumps (alkali/acid), probe calibration, and tank mixing.")
	}
	if match(func(p string) bool { return strings.Contains(p, "TSS") || strings.Contains(p, "Turb") }) {
		tips = append(tips, "Suspended solids/turbidity rising: inspect filters/backwash cycles and upstream settling.")
	}
	if match(func(p string) bool { return strings.Contains(p, "BOD") || strings.Contains(p, "COD") }) {
		tips = append(tips, "BOD/COD breaches: check biological treatment load, aeration, and recycle ratios.")
	}
	if match(func(p string) bool { return strings.Contains(p, "HUMIDITY") }) {
		tips = append(tips, "Humidity spikes: consider ventilation/conditioning; correlate with usage peaks.")
	}
	return tips
}
