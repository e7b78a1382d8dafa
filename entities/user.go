package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Phone      string    `gorm:"uniqueIndex" json:"phone"`
	Name       string    `json:"name,omitempty"`
	Location   string    `json:"location,omitempty"`
	Role       string    `gorm:"default:user" json:"role"`
	IsVerified bool      `json:"is_verified"`

	// One-time code fields are transient credentials, never serialized.
	OTPHash      string     `json:"-"`
	OTPExpiresAt *time.Time `json:"-"`

	Timestamp
}
