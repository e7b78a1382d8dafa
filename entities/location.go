package entities

import (
	"github.com/google/uuid"
)

type Location struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name     string    `json:"name"`
	Address  string    `json:"address,omitempty"`
	IsActive bool      `json:"is_active"`

	Timestamp
}
