package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/entities"
)

var (
	MessageSuccessGetMenu         = "menu retrieved successfully"
	MessageSuccessCreateMenuItem  = "menu item created successfully"
	MessageSuccessUpdateMenuItem  = "menu item updated successfully"
	MessageSuccessToggleMenuItem  = "menu item toggled"
	MessageSuccessUploadItemImage = "menu item image uploaded successfully"

	MessageFailedGetMenu         = "failed to retrieve menu"
	MessageFailedCreateMenuItem  = "failed to create menu item"
	MessageFailedUpdateMenuItem  = "failed to update menu item"
	MessageFailedToggleMenuItem  = "failed to toggle menu item"
	MessageFailedUploadItemImage = "failed to upload menu item image"

	ErrMenuItemNotFound = errors.New("menu item not found")
	ErrInvalidCategory  = errors.New("valid meal type is required")
)

type (
	CreateMenuItemRequest struct {
		Name        string   `json:"name" validate:"required"`
		Description string   `json:"description" validate:"required"`
		Image       string   `json:"image" validate:"required"`
		Category    string   `json:"category" validate:"required,oneof=lunch dinner dinner-meals"`
		IsVeg       *bool    `json:"is_veg" validate:"required"`
		Price       *float64 `json:"price" validate:"required,min=0"`
		SubItems    []string `json:"sub_items" validate:"omitempty"`
	}

	UpdateMenuItemRequest struct {
		Name        string   `json:"name" validate:"omitempty"`
		Description string   `json:"description" validate:"omitempty"`
		Image       string   `json:"image" validate:"omitempty"`
		Category    string   `json:"category" validate:"omitempty,oneof=lunch dinner dinner-meals"`
		IsVeg       *bool    `json:"is_veg" validate:"omitempty"`
		Price       *float64 `json:"price" validate:"omitempty,min=0"`
		SubItems    []string `json:"sub_items" validate:"omitempty"`
	}

	UploadItemImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	DeadlineInfo struct {
		Time   time.Time `json:"time"`
		IsLive bool      `json:"is_live"`
	}

	CategoryMenuResponse struct {
		Category string               `json:"category"`
		Items    []*entities.MenuItem `json:"items"`
		Deadline *DeadlineInfo        `json:"deadline"`
	}
)
