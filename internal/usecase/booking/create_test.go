package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domain "github.com/wellscan/patient-portal/internal/domain/booking"
	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/models"
	"github.com/wellscan/patient-portal/internal/timezone"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, timezone.Location())

func fixedNow() time.Time { return testNow }

func cbcTest() *models.Test {
	return &models.Test{
		ID:              1,
		Name:            "Complete Blood Count (CBC)",
		Price:           850,
		DurationMinutes: 30,
		Active:          true,
	}
}

func newCreate(repo *fakeRepo) *CreateBooking {
	uc := NewCreateBooking(repo, nil)
	uc.now = fixedNow
	return uc
}

func TestCreateBooking(t *testing.T) {
	repo := newFakeRepo(cbcTest())
	uc := newCreate(repo)

	appt := testNow.Add(24 * time.Hour)
	b, err := uc.Execute(context.Background(), CreateBookingInput{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: appt,
		Notes:           "fasting since midnight",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if b.ID == 0 {
		t.Error("booking was not persisted")
	}
	if b.Status != string(domain.StatusScheduled) {
		t.Errorf("status = %q, want scheduled", b.Status)
	}
	if b.TotalAmount != 850 {
		t.Errorf("totalAmount = %v, want price captured at booking time", b.TotalAmount)
	}
	if b.ReportGenerated {
		t.Error("new booking must start with reportGenerated false")
	}
	if b.Test.Name == "" {
		t.Error("expected test preloaded on the returned booking")
	}

	// The create response carries the derived availability pair like every
	// other booking read.
	if b.ReportAvailable {
		t.Error("fresh booking must not report as available")
	}
	if want := appt.Add(30 * time.Minute); !b.ReportAvailableTime.Equal(want) {
		t.Errorf("reportAvailableTime = %v, want %v", b.ReportAvailableTime, want)
	}
}

func TestCreateBookingStorageFailurePassesThrough(t *testing.T) {
	repo := newFakeRepo(cbcTest())
	repo.failWith = errors.New("connection reset")
	uc := newCreate(repo)

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: testNow.Add(24 * time.Hour),
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if httperr.IsBusiness(err, httperr.CodeTestNotFound) {
		t.Fatalf("storage failure must not masquerade as test_not_found: %v", err)
	}
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	uc := newCreate(newFakeRepo(cbcTest()))

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: testNow.Add(-time.Hour),
	})
	if !httperr.IsBusiness(err, httperr.CodeAppointmentInPast) {
		t.Fatalf("err = %v, want appointment_in_past", err)
	}
}

func TestCreateBookingRejectsFarFuture(t *testing.T) {
	uc := newCreate(newFakeRepo(cbcTest()))

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: testNow.Add(120 * 24 * time.Hour),
	})
	if !httperr.IsBusiness(err, httperr.CodeAppointmentTooFarAhead) {
		t.Fatalf("err = %v, want appointment_too_far_ahead", err)
	}
}

func TestCreateBookingRejectsInactiveTest(t *testing.T) {
	inactive := cbcTest()
	inactive.Active = false
	uc := newCreate(newFakeRepo(inactive))

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: testNow.Add(24 * time.Hour),
	})
	if !httperr.IsBusiness(err, httperr.CodeTestNotFound) {
		t.Fatalf("err = %v, want test_not_found", err)
	}
}

func TestCreateBookingRejectsDuplicateSameDay(t *testing.T) {
	repo := newFakeRepo(cbcTest())
	uc := newCreate(repo)

	appt := testNow.Add(24 * time.Hour)
	repo.add(models.Booking{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: appt,
		Status:          string(domain.StatusScheduled),
	})

	_, err := uc.Execute(context.Background(), CreateBookingInput{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: appt.Add(2 * time.Hour),
	})
	if !httperr.IsBusiness(err, httperr.CodeDuplicateBooking) {
		t.Fatalf("err = %v, want duplicate_booking", err)
	}
}

func TestCreateBookingAllowsRebookingAfterCancellation(t *testing.T) {
	repo := newFakeRepo(cbcTest())
	uc := newCreate(repo)

	appt := testNow.Add(24 * time.Hour)
	repo.add(models.Booking{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: appt,
		Status:          string(domain.StatusCancelled),
	})

	if _, err := uc.Execute(context.Background(), CreateBookingInput{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: appt,
	}); err != nil {
		t.Fatalf("rebooking a cancelled slot should succeed, got %v", err)
	}
}

func TestCreateBookingRejectsOverlapWithOtherTest(t *testing.T) {
	xray := &models.Test{ID: 2, Name: "Chest X-Ray", Price: 800, DurationMinutes: 10, Active: true}
	repo := newFakeRepo(cbcTest(), xray)
	uc := newCreate(repo)

	appt := testNow.Add(24 * time.Hour)
	repo.add(models.Booking{
		PatientID:       7,
		TestID:          2,
		AppointmentDate: appt,
		Status:          string(domain.StatusScheduled),
	})

	// CBC starts 5 minutes into the 10-minute X-Ray window.
	_, err := uc.Execute(context.Background(), CreateBookingInput{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: appt.Add(5 * time.Minute),
	})
	if !httperr.IsBusiness(err, httperr.CodeScheduleOverlap) {
		t.Fatalf("err = %v, want schedule_overlap", err)
	}
	if !strings.Contains(err.Error(), "Chest X-Ray") {
		t.Errorf("overlap message should name the conflicting test, got %q", err.Error())
	}
}

func TestCreateBookingAllowsBackToBack(t *testing.T) {
	xray := &models.Test{ID: 2, Name: "Chest X-Ray", Price: 800, DurationMinutes: 10, Active: true}
	repo := newFakeRepo(cbcTest(), xray)
	uc := newCreate(repo)

	appt := testNow.Add(24 * time.Hour)
	repo.add(models.Booking{
		PatientID:       7,
		TestID:          2,
		AppointmentDate: appt,
		Status:          string(domain.StatusScheduled),
	})

	// Starts exactly when the X-Ray ends.
	if _, err := uc.Execute(context.Background(), CreateBookingInput{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: appt.Add(10 * time.Minute),
	}); err != nil {
		t.Fatalf("back-to-back booking should succeed, got %v", err)
	}
}

func TestCreateBookingIgnoresOtherPatientsSchedule(t *testing.T) {
	repo := newFakeRepo(cbcTest())
	uc := newCreate(repo)

	appt := testNow.Add(24 * time.Hour)
	repo.add(models.Booking{
		PatientID:       99,
		TestID:          1,
		AppointmentDate: appt,
		Status:          string(domain.StatusScheduled),
	})

	if _, err := uc.Execute(context.Background(), CreateBookingInput{
		PatientID:       7,
		TestID:          1,
		AppointmentDate: appt,
	}); err != nil {
		t.Fatalf("another patient's booking must not conflict, got %v", err)
	}
}
