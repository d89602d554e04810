package models

import "time"

// Test categories are a closed set; seed data and admin tooling must not
// invent new ones.
var TestCategories = []string{
	"Blood Test",
	"Urine Test",
	"X-Ray",
	"CT Scan",
	"MRI",
	"Ultrasound",
	"ECG",
	"Other",
}

func IsValidCategory(category string) bool {
	for _, c := range TestCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Test struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:500" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"size:50;default:'Other'" json:"category"`

	// DurationMinutes is authoritative. Duration keeps the legacy free-text
	// value ("15 minutes") for display and for migrating old catalog rows
	// where only the text exists.
	DurationMinutes int    `json:"durationMinutes"`
	Duration        string `gorm:"size:50;default:'30 minutes'" json:"duration"`

	Active       bool   `gorm:"default:true" json:"active"`
	Requirements string `gorm:"size:300" json:"requirements"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
