package models

import "time"

type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:20" json:"phone"`
	DateOfBirth  time.Time `json:"dateOfBirth"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
