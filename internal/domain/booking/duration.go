package booking

import (
	"regexp"

	"github.com/wellscan/patient-portal/internal/models"
)

// DefaultDurationMinutes is assumed whenever a test declares no usable
// duration. Conflict detection and report timing both fall back to it.
const DefaultDurationMinutes = 30

var digitRun = regexp.MustCompile(`\d+`)

// ParseDurationMinutes extracts the first run of decimal digits from a
// free-text duration ("15 minutes" -> 15). Absent or digit-free input yields
// the default; this is never an error. Kept as a migration shim for catalog
// rows that predate the structured minutes field.
func ParseDurationMinutes(text string) int {
	m := digitRun.FindString(text)
	if m == "" {
		return DefaultDurationMinutes
	}
	minutes := 0
	for _, d := range m {
		minutes = minutes*10 + int(d-'0')
	}
	if minutes <= 0 {
		return DefaultDurationMinutes
	}
	return minutes
}

// MinutesFor resolves a test's service duration. The structured field wins;
// the legacy free-text value is parsed only when it is unset. Both the
// conflict checker and the report availability resolver go through here so
// the two always agree.
func MinutesFor(t *models.Test) int {
	if t == nil {
		return DefaultDurationMinutes
	}
	if t.DurationMinutes > 0 {
		return t.DurationMinutes
	}
	return ParseDurationMinutes(t.Duration)
}
