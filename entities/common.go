package entities

import (
	"time"
)

// Meal categories the platform partitions menus, deadlines and
// counters by.
const (
	CategoryLunch       = "lunch"
	CategoryDinner      = "dinner"
	CategoryDinnerMeals = "dinner-meals"
)

func IsValidCategory(category string) bool {
	switch category {
	case CategoryLunch, CategoryDinner, CategoryDinnerMeals:
		return true
	}
	return false
}

type Timestamp struct {
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp" json:"updated_at"`
}
