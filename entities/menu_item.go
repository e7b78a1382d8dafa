package entities

import (
	"github.com/google/uuid"
)

type MenuItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Category    string    `gorm:"index" json:"category"`
	IsVeg       bool      `json:"is_veg"`
	Price       float64   `json:"price"`
	SubItems    []string  `gorm:"serializer:json" json:"sub_items"`
	IsEnabled   bool      `json:"is_enabled"`

	Timestamp
}
