package model

import (
	"time"
)

// Service request statuses
const (
	RequestOpen       = "open"
	RequestInProgress = "in_progress"
	RequestCompleted  = "completed"
	RequestCancelled  = "cancelled"
)

// Service request priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Service request categories
const (
	CategoryPlumbing   = "plumbing"
	CategoryElectrical = "electrical"
	CategoryHeating    = "heating"
	CategoryGeneral    = "general"
)

// ServiceRequest is a maintenance ticket against a property. TenantID is
// optional because a property issue may exist without a current tenant.
type ServiceRequest struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	PropertyID    uint      `json:"property_id" gorm:"index;not null"`
	TenantID      *uint     `json:"tenant_id,omitempty" gorm:"index"`
	Title         string    `json:"title" gorm:"type:text;not null"`
	Description   string    `json:"description" gorm:"type:text;not null"`
	Category      string    `json:"category,omitempty" gorm:"type:varchar(20)"`       // plumbing, electrical, heating, general
	Priority      string    `json:"priority" gorm:"type:varchar(20);default:'medium'"` // low, medium, high, urgent
	Status        string    `json:"status" gorm:"type:varchar(20);default:'open'"`     // open, in_progress, completed, cancelled
	EstimatedCost *float64  `json:"estimated_cost,omitempty"`
	ActualCost    *float64  `json:"actual_cost,omitempty"`
	AssignedTo    string    `json:"assigned_to,omitempty"` // service provider name
	ScheduledDate *string   `json:"scheduled_date,omitempty" gorm:"type:date"`
	CompletedDate *string   `json:"completed_date,omitempty" gorm:"type:date"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations (optional for GORM to preload)
	Property *Property `json:"property,omitempty" gorm:"foreignKey:PropertyID"`
	Tenant   *Tenant   `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
}

// ValidRequestStatus reports whether s is a known service request status
func ValidRequestStatus(s string) bool {
	switch s {
	case RequestOpen, RequestInProgress, RequestCompleted, RequestCancelled:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known priority
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ValidCategory reports whether c is a known category
func ValidCategory(c string) bool {
	switch c {
	case CategoryPlumbing, CategoryElectrical, CategoryHeating, CategoryGeneral:
		return true
	}
	return false
}
