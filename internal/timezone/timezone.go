package timezone

import "time"

// All civil-day reasoning in the portal happens in a single fixed zone.
const DefaultTimezone = "Asia/Kolkata"

func Location() *time.Location {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location())
}

// Format renders an instant for user-facing messages and documents.
func Format(t time.Time) string {
	return t.In(Location()).Format("2 January 2006, 3:04 PM")
}

// DayBounds returns the half-open [start, end) window of the civil day
// containing t. The duplicate guard and the schedule conflict checker both
// scope their queries with this exact window.
func DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(Location())
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return start, start.Add(24 * time.Hour)
}
