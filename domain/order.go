package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	MessageSuccessCreateOrder   = "order created successfully"
	MessageSuccessGetOrder      = "order retrieved successfully"
	MessageSuccessGetHistory    = "order history retrieved successfully"
	MessageSuccessUpdatePayment = "payment status updated"
	MessageSuccessUpdateOrder   = "order updated successfully"
	MessageSuccessCancelOrder   = "order cancelled"
	MessageSuccessSetDeadline   = "deadline set successfully"
	MessageSuccessSetCounter    = "counter limit set successfully"
	MessageSuccessGetOrders     = "orders retrieved successfully"

	MessageFailedCreateOrder   = "failed to create order"
	MessageFailedGetOrder      = "failed to retrieve order"
	MessageFailedGetHistory    = "failed to retrieve order history"
	MessageFailedUpdatePayment = "failed to update payment status"
	MessageFailedUpdateOrder   = "failed to update order"
	MessageFailedCancelOrder   = "failed to cancel order"
	MessageFailedSetDeadline   = "failed to set deadline"
	MessageFailedSetCounter    = "failed to set counter limit"
	MessageFailedGetOrders     = "failed to retrieve orders"

	ErrEmptyOrder          = errors.New("items are required")
	ErrLocationRequired    = errors.New("location is required")
	ErrDeadlinePassed      = errors.New("order deadline has passed")
	ErrCapacityExceeded    = errors.New("maximum orders reached for this meal")
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrOrderNotCancellable = errors.New("order can no longer be cancelled")
)

// ItemUnavailableError names the item that blocked the order, so the
// caller knows what to drop from the cart.
type ItemUnavailableError struct {
	Name string
}

func (e *ItemUnavailableError) Error() string {
	return fmt.Sprintf("item %s is not available", e.Name)
}

var ErrItemUnavailable = errors.New("item is not available")

func (e *ItemUnavailableError) Unwrap() error { return ErrItemUnavailable }

type (
	OrderAddOnRequest struct {
		Name  string  `json:"name" validate:"required"`
		Price float64 `json:"price" validate:"min=0"`
	}

	OrderItemRequest struct {
		ItemID   string              `json:"item_id" validate:"required,uuid"`
		Quantity int                 `json:"quantity" validate:"required,min=1"`
		AddOns   []OrderAddOnRequest `json:"add_ons" validate:"omitempty,dive"`
	}

	CreateOrderRequest struct {
		Items    []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
		MealType string             `json:"meal_type" validate:"required,oneof=lunch dinner dinner-meals"`
		Location string             `json:"location" validate:"required"`
	}

	UpdatePaymentRequest struct {
		PaymentID     string `json:"payment_id" validate:"omitempty"`
		PaymentStatus *bool  `json:"payment_status" validate:"omitempty"`
	}

	// AdminUpdateOrderRequest: an explicit status wins and recomputes
	// the packed/delivered flags; a flag set true lifts the status
	// forward to the matching state.
	AdminUpdateOrderRequest struct {
		Packed        *bool   `json:"packed" validate:"omitempty"`
		PaymentStatus *bool   `json:"payment_status" validate:"omitempty"`
		Delivered     *bool   `json:"delivered" validate:"omitempty"`
		Status        *string `json:"status" validate:"omitempty,oneof=pending accepted packed in-transit delivered cancelled"`
	}

	SetDeadlineRequest struct {
		Category string    `json:"category" validate:"required,oneof=lunch dinner dinner-meals"`
		Deadline time.Time `json:"deadline" validate:"required"`
		IsLive   *bool     `json:"is_live" validate:"omitempty"`
	}

	SetCounterRequest struct {
		Category  string     `json:"category" validate:"required,oneof=lunch dinner dinner-meals"`
		MaxOrders int        `json:"max_orders" validate:"required,min=1"`
		Date      *time.Time `json:"date" validate:"omitempty"`
	}

	HistoryFilter struct {
		Date     *time.Time
		MealType string
		Status   string
	}

	AdminOrderFilter struct {
		Date     *time.Time
		MealType string
		Location string
		Status   string
		IsVeg    *bool
	}

	AdminOrderSummary struct {
		TotalOrders  int     `json:"total_orders"`
		TotalRevenue float64 `json:"total_revenue"`
		Packed       int     `json:"packed"`
		Paid         int     `json:"paid"`
		Delivered    int     `json:"delivered"`
	}
)
