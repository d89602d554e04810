package booking

import (
	"context"
	"time"

	domain "github.com/wellscan/patient-portal/internal/domain/booking"
	"github.com/wellscan/patient-portal/internal/models"
	"github.com/wellscan/patient-portal/internal/timezone"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// AnnotatedBooking is a booking plus the derived report-availability pair.
// The pair is recomputed on every read and never persisted.
type AnnotatedBooking struct {
	models.Booking
	ReportAvailable     bool      `json:"reportAvailable"`
	ReportAvailableTime time.Time `json:"reportAvailableTime"`
}

func annotate(b models.Booking, now time.Time) AnnotatedBooking {
	avail := domain.ResolveReportAvailability(&b, now)
	return AnnotatedBooking{
		Booking:             b,
		ReportAvailable:     avail.Available,
		ReportAvailableTime: avail.AvailableAt,
	}
}

type ListBookingsInput struct {
	PatientID uint
	Status    string
	Page      int
	Limit     int
}

// BookingPage carries the served page plus the page/limit actually applied,
// so the response envelope always matches the rows that were fetched.
type BookingPage struct {
	Items []AnnotatedBooking
	Page  int
	Limit int
	Total int64
}

type ListBookings struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo, now: timezone.Now}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	in ListBookingsInput,
) (*BookingPage, error) {

	if in.Page < 1 {
		in.Page = defaultPage
	}
	if in.Limit < 1 {
		in.Limit = defaultLimit
	}
	if in.Limit > maxLimit {
		in.Limit = maxLimit
	}

	bookings, total, err := uc.repo.ListBookings(ctx, domain.ListQuery{
		PatientID: in.PatientID,
		Status:    in.Status,
		Page:      in.Page,
		Limit:     in.Limit,
	})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	annotated := make([]AnnotatedBooking, 0, len(bookings))
	for _, b := range bookings {
		annotated = append(annotated, annotate(b, now))
	}

	return &BookingPage{
		Items: annotated,
		Page:  in.Page,
		Limit: in.Limit,
		Total: total,
	}, nil
}
