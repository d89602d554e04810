package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PatientID uint    `gorm:"index:idx_bookings_patient_date,priority:1" json:"patientId"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"patient"`

	TestID uint `json:"testId"`
	Test   Test `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"test"`

	AppointmentDate time.Time `gorm:"not null;index:idx_bookings_patient_date,priority:2" json:"appointmentDate"`

	Status string `gorm:"size:20;default:'scheduled'" json:"status"`

	ReportGenerated bool   `gorm:"default:false" json:"reportGenerated"`
	Notes           string `gorm:"size:500" json:"notes"`

	// Captured from the test price at booking time; never recomputed.
	TotalAmount float64 `json:"totalAmount"`

	CancelledAt *time.Time `json:"cancelledAt"`
	CompletedAt *time.Time `json:"completedAt"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
