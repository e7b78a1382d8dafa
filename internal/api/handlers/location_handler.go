package handlers

import (
	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/amanjaiswal7236/chai-lelo/internal/api/presenters"
	"github.com/amanjaiswal7236/chai-lelo/pkg/location"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	LocationHandler interface {
		GetActiveLocations(c *fiber.Ctx) error
		CreateLocation(c *fiber.Ctx) error
		UpdateLocation(c *fiber.Ctx) error
		ToggleLocation(c *fiber.Ctx) error
	}

	locationHandler struct {
		locationService location.LocationService
		validator       *validator.Validate
	}
)

func NewLocationHandler(locationService location.LocationService, validator *validator.Validate) LocationHandler {
	return &locationHandler{
		locationService: locationService,
		validator:       validator,
	}
}

func (h *locationHandler) GetActiveLocations(c *fiber.Ctx) error {
	res, err := h.locationService.GetActiveLocations(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetLocations, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLocations)
}

func (h *locationHandler) CreateLocation(c *fiber.Ctx) error {
	req := new(domain.CreateLocationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateLocation, err)
	}

	res, err := h.locationService.CreateLocation(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedCreateLocation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateLocation)
}

func (h *locationHandler) UpdateLocation(c *fiber.Ctx) error {
	locationID := c.Params("id")
	req := new(domain.UpdateLocationRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateLocation, err)
	}

	res, err := h.locationService.UpdateLocation(c.Context(), locationID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedUpdateLocation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateLocation)
}

func (h *locationHandler) ToggleLocation(c *fiber.Ctx) error {
	locationID := c.Params("id")

	res, err := h.locationService.ToggleLocation(c.Context(), locationID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedToggleLocation, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleLocation)
}
