package model

import (
	"time"
)

// Tenant represents a renter. IsActive is a manual flag, independent of
// contract status.
type Tenant struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	FirstName        string    `json:"first_name" gorm:"type:text;not null"`
	LastName         string    `json:"last_name" gorm:"type:text;not null"`
	Email            string    `json:"email,omitempty" gorm:"type:varchar(100);uniqueIndex"`
	Phone            string    `json:"phone,omitempty"`
	BirthDate        *string   `json:"birth_date,omitempty" gorm:"type:date"`
	NationalID       string    `json:"national_id,omitempty"` // PESEL, SSN, etc.
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	Notes            string    `json:"notes,omitempty" gorm:"type:text"`
	IsActive         bool      `json:"is_active" gorm:"default:true"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
