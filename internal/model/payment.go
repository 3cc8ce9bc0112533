package model

import (
	"time"
)

// Payment statuses. "overdue" is both a stored status and a derived
// condition, see EffectivelyOverdue.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentOverdue = "overdue"
)

// Payment methods
const (
	PaymentMethodTransfer = "transfer"
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
)

// Payment represents a rent payment against a contract
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ContractID    uint      `json:"contract_id" gorm:"index;not null"`
	Amount        float64   `json:"amount" gorm:"not null"`
	DueDate       string    `json:"due_date" gorm:"type:date;not null"`
	PaymentDate   *string   `json:"payment_date,omitempty" gorm:"type:date"`
	PaymentMethod string    `json:"payment_method,omitempty" gorm:"type:varchar(20)"` // transfer, cash, card
	Status        string    `json:"status" gorm:"type:varchar(20);default:'pending'"` // pending, paid, overdue
	Notes         string    `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`

	// Relation (optional for GORM to preload)
	Contract *Contract `json:"contract,omitempty" gorm:"foreignKey:ContractID"`
}

// ValidPaymentStatus reports whether s is a known payment status
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentOverdue:
		return true
	}
	return false
}
