package booking

import (
	"context"
	"errors"
	"time"

	"github.com/wellscan/patient-portal/internal/audit"
	domain "github.com/wellscan/patient-portal/internal/domain/booking"
	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCancelBooking(repo domain.Repository, audit *audit.Dispatcher) *CancelBooking {
	return &CancelBooking{repo: repo, audit: audit, now: timezone.Now}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	patientID, bookingID uint,
) (*AnnotatedBooking, error) {

	b, err := uc.repo.GetBookingForPatient(ctx, bookingID, patientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusinessMsg(httperr.CodeBookingNotFound, "Booking not found")
		}
		return nil, err
	}

	now := uc.now()
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		PatientID: &patientID,
		Action:    "booking_cancelled",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	annotated := annotate(*b, now)
	return &annotated, nil
}
