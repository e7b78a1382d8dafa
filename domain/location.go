package domain

import (
	"errors"
)

var (
	MessageSuccessGetLocations   = "locations retrieved successfully"
	MessageSuccessCreateLocation = "location created successfully"
	MessageSuccessUpdateLocation = "location updated successfully"
	MessageSuccessToggleLocation = "location toggled"

	MessageFailedGetLocations   = "failed to retrieve locations"
	MessageFailedCreateLocation = "failed to create location"
	MessageFailedUpdateLocation = "failed to update location"
	MessageFailedToggleLocation = "failed to toggle location"

	ErrLocationNotFound = errors.New("location not found")
)

type (
	CreateLocationRequest struct {
		Name    string `json:"name" validate:"required"`
		Address string `json:"address" validate:"omitempty"`
	}

	UpdateLocationRequest struct {
		Name    string `json:"name" validate:"omitempty"`
		Address string `json:"address" validate:"omitempty"`
	}
)
