package booking

import (
	"time"

	"github.com/wellscan/patient-portal/internal/models"
)

// ReportAvailability is derived per request and never stored.
type ReportAvailability struct {
	AvailableAt time.Time `json:"reportAvailableTime"`
	Available   bool      `json:"reportAvailable"`
}

// ResolveReportAvailability computes when a booking's report may be
// downloaded: the end of the appointment interval, or immediately once an
// operator marks the booking completed. Listing, single reads and report
// downloads all resolve through this one function.
func ResolveReportAvailability(b *models.Booking, now time.Time) ReportAvailability {
	availableAt := NewInterval(b.AppointmentDate, MinutesFor(&b.Test)).End
	return ReportAvailability{
		AvailableAt: availableAt,
		Available:   !now.Before(availableAt) || Status(b.Status) == StatusCompleted,
	}
}
