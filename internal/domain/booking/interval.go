package booking

import "time"

// Interval is the half-open time range [Start, End) occupied by an
// appointment. A booking that starts exactly when another ends does not
// overlap it; back-to-back scheduling is allowed.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, minutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(minutes) * time.Minute),
	}
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}
