package booking

import (
	"context"
	"errors"
	"time"

	domain "github.com/wellscan/patient-portal/internal/domain/booking"
	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/timezone"
)

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityInput struct {
	PatientID uint
	TestID    uint
	Date      time.Time // any instant within the requested civil day
}

// GetAvailability suggests bookable start times for a test on a given day:
// slots of the test's duration within clinic hours that neither lie in the
// past nor overlap the patient's own schedule.
type GetAvailability struct {
	repo        domain.Repository
	clinicOpen  string
	clinicClose string
	now         func() time.Time
}

func NewGetAvailability(repo domain.Repository, clinicOpen, clinicClose string) *GetAvailability {
	return &GetAvailability{
		repo:        repo,
		clinicOpen:  clinicOpen,
		clinicClose: clinicClose,
		now:         timezone.Now,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) ([]TimeSlot, error) {

	test, err := uc.repo.GetActiveTest(ctx, in.TestID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusinessMsg(httperr.CodeTestNotFound, "Test not found or not available")
		}
		return nil, err
	}

	dayStart, dayEnd := timezone.DayBounds(in.Date)

	openAt, err := atClockTime(dayStart, uc.clinicOpen)
	if err != nil {
		return nil, err
	}
	closeAt, err := atClockTime(dayStart, uc.clinicClose)
	if err != nil {
		return nil, err
	}

	sameDay, err := uc.repo.ListSameDayBookings(ctx, in.PatientID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	step := time.Duration(domain.MinutesFor(test)) * time.Minute

	slots := []TimeSlot{}
	for cur := openAt; !cur.Add(step).After(closeAt); cur = cur.Add(step) {
		if cur.Before(now) {
			continue
		}

		candidate := domain.Interval{Start: cur, End: cur.Add(step)}
		if domain.CheckSchedule(candidate, sameDay, 0) != nil {
			continue
		}

		slots = append(slots, TimeSlot{
			Start: candidate.Start.Format("15:04"),
			End:   candidate.End.Format("15:04"),
		})
	}

	return slots, nil
}

func atClockTime(dayStart time.Time, hm string) (time.Time, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		dayStart.Year(), dayStart.Month(), dayStart.Day(),
		t.Hour(), t.Minute(), 0, 0,
		dayStart.Location(),
	), nil
}
