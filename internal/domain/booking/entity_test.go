package booking

import (
	"testing"

	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/models"
)

func TestCancelScheduled(t *testing.T) {
	b := &models.Booking{Status: string(StatusScheduled), ReportGenerated: true}
	now := at(11, 0)

	if err := Cancel(b, now); err != nil {
		t.Fatalf("Cancel returned %v", err)
	}
	if b.Status != string(StatusCancelled) {
		t.Errorf("status = %q, want cancelled", b.Status)
	}
	if b.CancelledAt == nil || !b.CancelledAt.Equal(now) {
		t.Error("CancelledAt not stamped")
	}
	if !b.ReportGenerated {
		t.Error("cancellation must not touch reportGenerated")
	}
}

func TestCancelAlreadyCancelledNeverSucceeds(t *testing.T) {
	b := &models.Booking{Status: string(StatusCancelled)}

	for i := 0; i < 2; i++ {
		err := Cancel(b, at(11, 0))
		if !httperr.IsBusiness(err, httperr.CodeAlreadyCancelled) {
			t.Fatalf("attempt %d: err = %v, want %s", i, err, httperr.CodeAlreadyCancelled)
		}
	}
}

func TestCancelCompleted(t *testing.T) {
	b := &models.Booking{Status: string(StatusCompleted)}

	err := Cancel(b, at(11, 0))
	if !httperr.IsBusiness(err, httperr.CodeCannotCancelCompleted) {
		t.Fatalf("err = %v, want %s", err, httperr.CodeCannotCancelCompleted)
	}
	if b.Status != string(StatusCompleted) {
		t.Error("status must be untouched on rejected transition")
	}
}

func TestCompleteScheduled(t *testing.T) {
	b := &models.Booking{Status: string(StatusScheduled)}
	now := at(11, 0)

	if err := Complete(b, now); err != nil {
		t.Fatalf("Complete returned %v", err)
	}
	if b.Status != string(StatusCompleted) || b.CompletedAt == nil {
		t.Error("completed transition not applied")
	}
}

func TestCompleteIsTerminal(t *testing.T) {
	for _, status := range []Status{StatusCompleted, StatusCancelled} {
		b := &models.Booking{Status: string(status)}
		if err := Complete(b, at(11, 0)); err == nil {
			t.Errorf("Complete from %s should fail", status)
		}
	}
}
