package booking

import (
	"time"

	"github.com/wellscan/patient-portal/internal/models"
)

// Cancel applies the one-way scheduled -> cancelled transition. The record is
// never deleted and reportGenerated is never touched.
func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

// Complete applies the operator-driven scheduled -> completed transition.
func Complete(b *models.Booking, now time.Time) error {
	if err := CanComplete(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCompleted)
	b.CompletedAt = &now
	return nil
}
