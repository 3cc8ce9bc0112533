package model

import (
	"time"
)

// Property statuses. The status is set manually and never derived from
// contract state.
const (
	PropertyAvailable   = "available"
	PropertyRented      = "rented"
	PropertyMaintenance = "maintenance"
	PropertyUnavailable = "unavailable"
)

// Property types
const (
	PropertyTypeApartment = "apartment"
	PropertyTypeHouse     = "house"
	PropertyTypeStudio    = "studio"
	PropertyTypeLoft      = "loft"
)

// Property represents a rental unit
type Property struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Address      string    `json:"address" gorm:"type:text;not null"`
	City         string    `json:"city" gorm:"type:text;not null"`
	PostalCode   string    `json:"postal_code,omitempty"`
	PropertyType string    `json:"property_type" gorm:"type:varchar(20);not null"` // apartment, house, studio, loft
	Area         int       `json:"area,omitempty"`                                 // in m²
	Rooms        int       `json:"rooms,omitempty"`
	Bathrooms    int       `json:"bathrooms,omitempty"`
	Floor        int       `json:"floor,omitempty"`
	TotalFloors  int       `json:"total_floors,omitempty"`
	Rent         float64   `json:"rent" gorm:"not null"`
	Deposit      float64   `json:"deposit,omitempty"`
	Utilities    float64   `json:"utilities,omitempty"`
	Description  string    `json:"description,omitempty" gorm:"type:text"`
	Status       string    `json:"status" gorm:"type:varchar(20);default:'available'"` // available, rented, maintenance, unavailable
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ValidPropertyStatus reports whether s is a known property status
func ValidPropertyStatus(s string) bool {
	switch s {
	case PropertyAvailable, PropertyRented, PropertyMaintenance, PropertyUnavailable:
		return true
	}
	return false
}

// ValidPropertyType reports whether t is a known property type
func ValidPropertyType(t string) bool {
	switch t {
	case PropertyTypeApartment, PropertyTypeHouse, PropertyTypeStudio, PropertyTypeLoft:
		return true
	}
	return false
}
