package booking

import (
	"context"
	"sort"
	"time"

	domain "github.com/wellscan/patient-portal/internal/domain/booking"
	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/models"
	"github.com/wellscan/patient-portal/internal/timezone"
)

// fakeRepo is an in-memory Repository that mirrors the transactional create
// semantics: duplicate check first, then the guard over same-day bookings.
// Setting failWith makes every lookup fail as if storage were down.
type fakeRepo struct {
	tests    map[uint]*models.Test
	bookings []models.Booking
	nextID   uint

	failWith  error
	updated   *models.Booking
	markCalls int
}

var _ domain.Repository = (*fakeRepo)(nil)

func newFakeRepo(tests ...*models.Test) *fakeRepo {
	r := &fakeRepo{tests: map[uint]*models.Test{}, nextID: 1}
	for _, t := range tests {
		r.tests[t.ID] = t
	}
	return r
}

func (r *fakeRepo) add(b models.Booking) uint {
	b.ID = r.nextID
	r.nextID++
	if t, ok := r.tests[b.TestID]; ok {
		b.Test = *t
	}
	r.bookings = append(r.bookings, b)
	return b.ID
}

func (r *fakeRepo) GetActiveTest(_ context.Context, testID uint) (*models.Test, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	t, ok := r.tests[testID]
	if !ok || !t.Active {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (r *fakeRepo) CreateBookingGuarded(ctx context.Context, b *models.Booking, guard domain.GuardFunc) error {
	dayStart, dayEnd := timezone.DayBounds(b.AppointmentDate)

	dup := r.hasDuplicate(b.PatientID, b.TestID, dayStart, dayEnd)
	if dup {
		return httperr.ErrBusinessMsg(
			httperr.CodeDuplicateBooking,
			"You already have a booking for this test on the selected date",
		)
	}

	sameDay, err := r.ListSameDayBookings(ctx, b.PatientID, dayStart, dayEnd)
	if err != nil {
		return err
	}
	if err := guard(sameDay); err != nil {
		return err
	}

	b.ID = r.add(*b)
	return nil
}

func (r *fakeRepo) hasDuplicate(patientID, testID uint, dayStart, dayEnd time.Time) bool {
	for _, b := range r.bookings {
		if b.PatientID == patientID && b.TestID == testID &&
			b.Status != string(domain.StatusCancelled) &&
			!b.AppointmentDate.Before(dayStart) && b.AppointmentDate.Before(dayEnd) {
			return true
		}
	}
	return false
}

func (r *fakeRepo) ListSameDayBookings(_ context.Context, patientID uint, dayStart, dayEnd time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range r.bookings {
		if b.PatientID == patientID &&
			b.Status != string(domain.StatusCancelled) &&
			!b.AppointmentDate.Before(dayStart) && b.AppointmentDate.Before(dayEnd) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetBookingForPatient(_ context.Context, bookingID, patientID uint) (*models.Booking, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for i := range r.bookings {
		if r.bookings[i].ID == bookingID && r.bookings[i].PatientID == patientID {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) GetBookingByID(_ context.Context, bookingID uint) (*models.Booking, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for i := range r.bookings {
		if r.bookings[i].ID == bookingID {
			b := r.bookings[i]
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) ListBookings(_ context.Context, q domain.ListQuery) ([]models.Booking, int64, error) {
	var matched []models.Booking
	for _, b := range r.bookings {
		if b.PatientID != q.PatientID {
			continue
		}
		if q.Status != "" && q.Status != "all" && b.Status != q.Status {
			continue
		}
		matched = append(matched, b)
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].AppointmentDate.After(matched[j].AppointmentDate)
	})

	total := int64(len(matched))
	start := (q.Page - 1) * q.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	for i := range r.bookings {
		if r.bookings[i].ID == b.ID {
			r.bookings[i] = *b
			r.updated = b
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRepo) MarkReportGenerated(_ context.Context, bookingID uint) error {
	for i := range r.bookings {
		if r.bookings[i].ID == bookingID && !r.bookings[i].ReportGenerated {
			r.bookings[i].ReportGenerated = true
			r.markCalls++
			return nil
		}
	}
	return nil
}
