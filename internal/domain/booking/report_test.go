package booking

import (
	"testing"
	"time"

	"github.com/wellscan/patient-portal/internal/models"
)

func TestReportAvailableAfterDurationElapses(t *testing.T) {
	now := at(12, 0)
	b := &models.Booking{
		AppointmentDate: now.Add(-40 * time.Minute),
		Status:          string(StatusScheduled),
		Test:            models.Test{DurationMinutes: 30},
	}

	got := ResolveReportAvailability(b, now)
	if !got.Available {
		t.Error("report should be available 40min after a 30min appointment")
	}
	if want := b.AppointmentDate.Add(30 * time.Minute); !got.AvailableAt.Equal(want) {
		t.Errorf("AvailableAt = %s, want %s", got.AvailableAt, want)
	}
}

func TestReportUnavailableBeforeDurationElapses(t *testing.T) {
	now := at(12, 0)
	b := &models.Booking{
		AppointmentDate: now.Add(-10 * time.Minute),
		Status:          string(StatusScheduled),
		Test:            models.Test{DurationMinutes: 30},
	}

	if got := ResolveReportAvailability(b, now); got.Available {
		t.Error("report must not be available 10min into a 30min appointment")
	}
}

func TestReportAvailableExactlyAtBoundary(t *testing.T) {
	now := at(12, 0)
	b := &models.Booking{
		AppointmentDate: now.Add(-30 * time.Minute),
		Status:          string(StatusScheduled),
		Test:            models.Test{DurationMinutes: 30},
	}

	if got := ResolveReportAvailability(b, now); !got.Available {
		t.Error("now == availableAt must count as available")
	}
}

func TestCompletedStatusOverridesTimer(t *testing.T) {
	now := at(12, 0)
	b := &models.Booking{
		AppointmentDate: now.Add(2 * time.Hour), // still in the future
		Status:          string(StatusCompleted),
		Test:            models.Test{DurationMinutes: 30},
	}

	if got := ResolveReportAvailability(b, now); !got.Available {
		t.Error("completed bookings are always available regardless of time")
	}
}

func TestReportDefaultsUnparseableDuration(t *testing.T) {
	now := at(12, 0)
	b := &models.Booking{
		AppointmentDate: now.Add(-31 * time.Minute),
		Status:          string(StatusScheduled),
		Test:            models.Test{Duration: "unknown"},
	}

	got := ResolveReportAvailability(b, now)
	if !got.Available {
		t.Error("unparseable duration should gate on the 30-minute default")
	}
	if want := b.AppointmentDate.Add(30 * time.Minute); !got.AvailableAt.Equal(want) {
		t.Errorf("AvailableAt = %s, want default-based %s", got.AvailableAt, want)
	}
}
