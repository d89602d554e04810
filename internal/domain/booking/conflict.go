package booking

import (
	"fmt"
	"time"

	"github.com/wellscan/patient-portal/internal/models"
	"github.com/wellscan/patient-portal/internal/timezone"
)

// ScheduleConflictError names the existing appointment a candidate interval
// collides with, so callers can surface a human-readable message.
type ScheduleConflictError struct {
	BookingID uint
	TestName  string
	StartTime time.Time
}

func (e *ScheduleConflictError) Error() string {
	return fmt.Sprintf(
		"conflicts with your existing %s appointment at %s",
		e.TestName,
		e.StartTime.In(timezone.Location()).Format("3:04 PM"),
	)
}

// CheckSchedule scans the patient's same-day bookings for an overlap with the
// candidate interval. Each existing booking occupies the interval derived
// from its own test's duration. Cancelled bookings never conflict; excludeID
// skips one booking (unused on create, reserved for reschedule flows).
func CheckSchedule(candidate Interval, sameDay []models.Booking, excludeID uint) *ScheduleConflictError {
	for i := range sameDay {
		existing := &sameDay[i]
		if existing.ID == excludeID {
			continue
		}
		if Status(existing.Status) == StatusCancelled {
			continue
		}

		occupied := NewInterval(existing.AppointmentDate, MinutesFor(&existing.Test))
		if candidate.Overlaps(occupied) {
			return &ScheduleConflictError{
				BookingID: existing.ID,
				TestName:  existing.Test.Name,
				StartTime: existing.AppointmentDate,
			}
		}
	}
	return nil
}
