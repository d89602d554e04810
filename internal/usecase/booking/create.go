package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/wellscan/patient-portal/internal/audit"
	domain "github.com/wellscan/patient-portal/internal/domain/booking"
	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/models"
	"github.com/wellscan/patient-portal/internal/timezone"
)

// Bookings may be made up to three months ahead.
const maxAdvance = 3 * 31 * 24 * time.Hour

type CreateBookingInput struct {
	PatientID       uint
	TestID          uint
	AppointmentDate time.Time
	Notes           string
}

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewCreateBooking(repo domain.Repository, audit *audit.Dispatcher) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		now:   timezone.Now,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*AnnotatedBooking, error) {

	now := uc.now()

	if !in.AppointmentDate.After(now) {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeAppointmentInPast,
			"Appointment date must be in the future",
		)
	}
	if in.AppointmentDate.After(now.Add(maxAdvance)) {
		return nil, httperr.ErrBusinessMsg(
			httperr.CodeAppointmentTooFarAhead,
			"Appointment date cannot be more than 3 months in advance",
		)
	}

	test, err := uc.repo.GetActiveTest(ctx, in.TestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusinessMsg(
				httperr.CodeTestNotFound,
				"Test not found or not available",
			)
		}
		return nil, err
	}

	minutes := domain.MinutesFor(test)
	if test.DurationMinutes <= 0 {
		zap.L().Warn("test duration resolved from legacy free text",
			zap.Uint("test_id", test.ID),
			zap.String("duration", test.Duration),
			zap.Int("minutes", minutes),
		)
	}

	candidate := domain.NewInterval(in.AppointmentDate, minutes)

	b := &models.Booking{
		PatientID:       in.PatientID,
		TestID:          test.ID,
		AppointmentDate: in.AppointmentDate,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
		TotalAmount:     test.Price,
	}

	// Duplicate and overlap guards run inside the create transaction under a
	// per-patient advisory lock; two concurrent overlapping creates cannot
	// both pass.
	err = uc.repo.CreateBookingGuarded(ctx, b, func(sameDay []models.Booking) error {
		if conflict := domain.CheckSchedule(candidate, sameDay, 0); conflict != nil {
			return httperr.ErrBusinessMsg(
				httperr.CodeScheduleOverlap,
				"This appointment "+conflict.Error()+". Please choose a different time.",
			)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	b.Test = *test

	uc.audit.Dispatch(audit.Event{
		PatientID: &in.PatientID,
		Action:    "booking_created",
		Entity:    "booking",
		EntityID:  &b.ID,
	})

	annotated := annotate(*b, now)
	return &annotated, nil
}
