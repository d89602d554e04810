package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/wellscan/patient-portal/internal/domain/booking"
	"github.com/wellscan/patient-portal/internal/httperr"
	"github.com/wellscan/patient-portal/internal/models"
	"github.com/wellscan/patient-portal/internal/timezone"
)

// Advisory-lock class for booking creation; the second key is the patient id,
// so concurrent creates for one patient serialize while different patients
// proceed in parallel.
const bookingLockClass = 4217

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Test
// --------------------------------------------------

func (r *BookingGormRepository) GetActiveTest(
	ctx context.Context,
	testID uint,
) (*models.Test, error) {

	var test models.Test
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", testID, true).
		First(&test).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &test, nil
}

// mapNotFound translates gorm's missing-row error into the repository
// sentinel so callers never match on driver types.
func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Booking (create path)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBookingGuarded(
	ctx context.Context,
	b *models.Booking,
	guard domain.GuardFunc,
) error {

	dayStart, dayEnd := timezone.DayBounds(b.AppointmentDate)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Two-argument form takes int4 pairs; int32 keeps the driver from
		// encoding int8 and missing the overload.
		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?, ?)",
			int32(bookingLockClass), int32(b.PatientID),
		).Error; err != nil {
			return err
		}

		dup, err := hasDuplicate(tx, b.PatientID, b.TestID, dayStart, dayEnd)
		if err != nil {
			return err
		}
		if dup {
			return httperr.ErrBusinessMsg(
				httperr.CodeDuplicateBooking,
				"You already have a booking for this test on the selected date",
			)
		}

		sameDay, err := listSameDay(tx, b.PatientID, dayStart, dayEnd)
		if err != nil {
			return err
		}

		if err := guard(sameDay); err != nil {
			return err
		}

		if err := tx.Create(b).Error; err != nil {
			// Concurrent duplicate caught by the partial unique index.
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusinessMsg(
					httperr.CodeDuplicateBooking,
					"You already have a booking for this test on the selected date",
				)
			}
			return err
		}

		return nil
	})
}

func (r *BookingGormRepository) ListSameDayBookings(
	ctx context.Context,
	patientID uint,
	dayStart, dayEnd time.Time,
) ([]models.Booking, error) {
	return listSameDay(r.db.WithContext(ctx), patientID, dayStart, dayEnd)
}

func hasDuplicate(
	tx *gorm.DB,
	patientID, testID uint,
	dayStart, dayEnd time.Time,
) (bool, error) {

	var count int64
	err := tx.Model(&models.Booking{}).
		Where(
			"patient_id = ? AND test_id = ? AND appointment_date >= ? AND appointment_date < ? AND status <> ?",
			patientID, testID, dayStart, dayEnd, string(domain.StatusCancelled),
		).
		Count(&count).Error
	return count > 0, err
}

func listSameDay(
	tx *gorm.DB,
	patientID uint,
	dayStart, dayEnd time.Time,
) ([]models.Booking, error) {

	var sameDay []models.Booking
	err := tx.
		Preload("Test").
		Where(
			"patient_id = ? AND appointment_date >= ? AND appointment_date < ? AND status <> ?",
			patientID, dayStart, dayEnd, string(domain.StatusCancelled),
		).
		Order("appointment_date ASC").
		Find(&sameDay).Error
	return sameDay, err
}

// --------------------------------------------------
// Booking (reads / state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForPatient(
	ctx context.Context,
	bookingID, patientID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Test").
		Preload("Patient").
		Where("id = ? AND patient_id = ?", bookingID, patientID).
		First(&b).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingByID(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Test").
		Preload("Patient").
		First(&b, bookingID).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &b, nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	q domain.ListQuery,
) ([]models.Booking, int64, error) {

	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("patient_id = ?", q.PatientID)
		if q.Status != "" && q.Status != "all" {
			tx = tx.Where("status = ?", q.Status)
		}
		return tx
	}

	var total int64
	if err := filter(r.db.WithContext(ctx).Model(&models.Booking{})).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []models.Booking
	err := filter(r.db.WithContext(ctx)).
		Preload("Test").
		Preload("Patient").
		Order("appointment_date DESC").
		Offset((q.Page - 1) * q.Limit).
		Limit(q.Limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) MarkReportGenerated(
	ctx context.Context,
	bookingID uint,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND report_generated = ?", bookingID, false).
		Update("report_generated", true).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
