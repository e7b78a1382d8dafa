package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusPacked    = "packed"
	StatusInTransit = "in-transit"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusAccepted, StatusPacked,
		StatusInTransit, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type OrderAddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderItem is a snapshot of the menu item at order time. Name, price
// and isVeg are captured here so later catalog edits never change a
// historical order.
type OrderItem struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID    uuid.UUID    `gorm:"type:uuid;index" json:"order_id"`
	MenuItemID uuid.UUID    `gorm:"type:uuid" json:"item_id"`
	Name       string       `json:"name"`
	Quantity   int          `json:"quantity"`
	Price      float64      `json:"price"`
	IsVeg      bool         `json:"is_veg"`
	AddOns     []OrderAddOn `gorm:"serializer:json" json:"add_ons"`
}

type Order struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index" json:"user_id"`

	// Denormalized at creation, not re-synced with the user record.
	UserName  string `json:"user_name"`
	UserPhone string `json:"user_phone"`
	Location  string `json:"location"`

	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	MealType string      `gorm:"index" json:"meal_type"`

	// OrderDate is the midnight-truncated calendar day the order is
	// for, distinct from CreatedAt.
	OrderDate   time.Time `gorm:"index" json:"order_date"`
	TotalAmount float64   `json:"total_amount"`

	PaymentStatus bool   `json:"payment_status"`
	PaymentID     string `json:"payment_id,omitempty"`
	Packed        bool   `json:"packed"`
	Delivered     bool   `json:"delivered"`
	Status        string `gorm:"default:pending" json:"status"`

	Timestamp
}
