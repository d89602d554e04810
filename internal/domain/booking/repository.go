package booking

import (
	"context"
	"errors"
	"time"

	"github.com/wellscan/patient-portal/internal/models"
)

// ErrNotFound is what lookups return when no row matches. Anything else out
// of the repository is a storage failure and must not be mistaken for a
// missing record.
var ErrNotFound = errors.New("not found")

// ListQuery scopes a booking-history read.
type ListQuery struct {
	PatientID uint
	Status    string // empty or "all" means no filter
	Page      int
	Limit     int
}

// GuardFunc runs inside the create transaction, after the per-patient lock is
// held, against the patient's non-cancelled same-day bookings (tests
// preloaded). Returning an error aborts the insert.
type GuardFunc func(sameDay []models.Booking) error

type Repository interface {
	// -------- Test --------
	GetActiveTest(ctx context.Context, testID uint) (*models.Test, error)

	// -------- Booking (create path) --------

	// CreateBookingGuarded inserts b atomically with respect to the duplicate
	// and overlap guards: it serializes on the patient, re-checks the
	// duplicate constraint, hands the same-day bookings to guard, and maps a
	// unique-index violation on insert to duplicate_booking.
	CreateBookingGuarded(ctx context.Context, b *models.Booking, guard GuardFunc) error

	ListSameDayBookings(ctx context.Context, patientID uint, dayStart, dayEnd time.Time) ([]models.Booking, error)

	// -------- Booking (reads / state change) --------

	// GetBookingForPatient matches id and owner in a single query; a booking
	// belonging to someone else is indistinguishable from a missing one.
	GetBookingForPatient(ctx context.Context, bookingID, patientID uint) (*models.Booking, error)

	// GetBookingByID fetches regardless of owner. Report emission uses it so
	// it can answer 403 wrong_owner instead of 404.
	GetBookingByID(ctx context.Context, bookingID uint) (*models.Booking, error)

	ListBookings(ctx context.Context, q ListQuery) ([]models.Booking, int64, error)

	UpdateBooking(ctx context.Context, b *models.Booking) error

	// MarkReportGenerated flips report_generated false -> true at most once.
	MarkReportGenerated(ctx context.Context, bookingID uint) error
}
