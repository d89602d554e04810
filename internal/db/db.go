package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/wellscan/patient-portal/internal/config"
	"github.com/wellscan/patient-portal/internal/models"
	"github.com/wellscan/patient-portal/internal/timezone"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		zap.L().Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.L().Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Patient{},
		&models.Test{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		zap.L().Fatal("failed to migrate", zap.Error(err))
	}

	// Authoritative duplicate guard: at most one non-cancelled booking per
	// (patient, test, civil day). The in-process check is an early exit, not
	// the enforcement.
	db.Exec(fmt.Sprintf(`
        CREATE UNIQUE INDEX IF NOT EXISTS idx_bookings_patient_test_day
        ON bookings (patient_id, test_id, ((appointment_date AT TIME ZONE '%s')::date))
        WHERE status <> 'cancelled'
    `, timezone.DefaultTimezone))

	return db
}
