package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/wellscan/patient-portal/internal/domain/booking"
	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/timezone"
)

type GetBooking struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetBooking(repo domain.Repository) *GetBooking {
	return &GetBooking{repo: repo, now: timezone.Now}
}

// Execute fetches by id AND owner in one query; a booking owned by another
// patient is simply not found.
func (uc *GetBooking) Execute(
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

	annotated := annotate(*b, uc.now())
	return &annotated, nil
}
