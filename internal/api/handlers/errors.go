package handlers

import (
	"errors"

	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/gofiber/fiber/v2"
)

// statusFromError maps service errors to HTTP codes. Anything
// unrecognised is treated as a server fault.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrMenuItemNotFound),
		errors.Is(err, domain.ErrLocationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrTokenNotFound),
		errors.Is(err, domain.ErrTokenInvalid),
		errors.Is(err, domain.ErrTokenExpired),
		errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrOTPExpired):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotAllowed):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidPhone),
		errors.Is(err, domain.ErrInvalidCategory),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrEmptyOrder),
		errors.Is(err, domain.ErrLocationRequired),
		errors.Is(err, domain.ErrDeadlinePassed),
		errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrItemUnavailable),
		errors.Is(err, domain.ErrOrderNotCancellable),
		errors.Is(err, domain.ErrParseUUID):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
