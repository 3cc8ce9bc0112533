package model

import (
	"time"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application account. The role gates the admin-only
// screens (user management).
type User struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Email           string    `json:"email" gorm:"type:varchar(100);uniqueIndex"`
	Password        string    `json:"-" gorm:"type:varchar(255)"`
	FirstName       string    `json:"first_name" gorm:"type:varchar(100)"`
	LastName        string    `json:"last_name" gorm:"type:varchar(100)"`
	ProfileImageURL string    `json:"profile_image_url,omitempty"`
	Role            string    `json:"role" gorm:"type:varchar(20);default:'user'"` // user, admin
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user may access admin-only operations
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
