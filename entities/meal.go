package entities

import (
	"time"

	"github.com/google/uuid"
)

// MealDeadline is a single mutable slot per category. The admin re-sets
// it every day; nothing rolls it forward automatically.
type MealDeadline struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category string    `gorm:"uniqueIndex" json:"category"`
	Deadline time.Time `json:"deadline"`
	Date     time.Time `json:"date"`
	IsLive   bool      `json:"is_live"`

	Timestamp
}

// MealCounter tracks how many orders were placed for a category on a
// calendar day, with an optional cap. One row per (category, day).
type MealCounter struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category   string    `gorm:"uniqueIndex:idx_meal_counters_category_date" json:"category"`
	Date       time.Time `gorm:"uniqueIndex:idx_meal_counters_category_date" json:"date"`
	OrderCount int       `json:"order_count"`
	MaxOrders  *int      `json:"max_orders,omitempty"`

	Timestamp
}
