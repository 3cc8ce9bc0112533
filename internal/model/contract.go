package model

import (
	"time"
)

// Contract statuses
const (
	ContractActive     = "active"
	ContractExpired    = "expired"
	ContractTerminated = "terminated"
)

// Contract binds one tenant to one property for a date range at a fixed
// monthly rent. Dates are stored as YYYY-MM-DD strings (SQL date columns).
type Contract struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PropertyID  uint      `json:"property_id" gorm:"index;not null"`
	TenantID    uint      `json:"tenant_id" gorm:"index;not null"`
	StartDate   string    `json:"start_date" gorm:"type:date;not null"`
	EndDate     string    `json:"end_date" gorm:"type:date;not null"`
	MonthlyRent float64   `json:"monthly_rent" gorm:"not null"`
	Deposit     float64   `json:"deposit,omitempty"`
	PaymentDay  int       `json:"payment_day" gorm:"default:1"` // day of month, 1..28
	Terms       string    `json:"terms,omitempty" gorm:"type:text"`
	Status      string    `json:"status" gorm:"type:varchar(20);default:'active'"` // active, expired, terminated
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations (optional for GORM to preload)
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Tenant   *Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Payments []Payment `json:"payments,omitempty" gorm:"foreignKey:ContractID"`
}

// ValidContractStatus reports whether s is a known contract status
func ValidContractStatus(s string) bool {
	switch s {
	case ContractActive, ContractExpired, ContractTerminated:
		return true
	}
	return false
}
