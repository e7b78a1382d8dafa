package handlers

import (
	"strconv"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/amanjaiswal7236/chai-lelo/internal/api/presenters"
	"github.com/amanjaiswal7236/chai-lelo/pkg/dashboard"
	"github.com/amanjaiswal7236/chai-lelo/pkg/order"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		ListOrders(c *fiber.Ctx) error
		UpdateOrder(c *fiber.Ctx) error
		CancelOrder(c *fiber.Ctx) error
		SetDeadline(c *fiber.Ctx) error
		SetCounterCap(c *fiber.Ctx) error
		GetDashboard(c *fiber.Ctx) error
		EmailDailySummary(c *fiber.Ctx) error
	}

	adminHandler struct {
		orderService     order.OrderService
		dashboardService dashboard.DashboardService
		validator        *validator.Validate
	}
)

func NewAdminHandler(orderService order.OrderService, dashboardService dashboard.DashboardService, validator *validator.Validate) AdminHandler {
	return &adminHandler{
		orderService:     orderService,
		dashboardService: dashboardService,
		validator:        validator,
	}
}

func (h *adminHandler) ListOrders(c *fiber.Ctx) error {
	date, err := parseDateQuery(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
	}

	filter := domain.AdminOrderFilter{
		Date:     date,
		MealType: c.Query("meal_type"),
		Location: c.Query("location"),
		Status:   c.Query("status"),
	}
	if raw := c.Query("is_veg"); raw != "" {
		isVeg, err := strconv.ParseBool(raw)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetOrders, err)
		}
		filter.IsVeg = &isVeg
	}

	orders, summary, err := h.orderService.ListOrders(c.Context(), filter)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetOrders, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"orders":  orders,
		"summary": summary,
	}, fiber.StatusOK, domain.MessageSuccessGetOrders)
}

func (h *adminHandler) UpdateOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	req := new(domain.AdminUpdateOrderRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateOrder, err)
	}

	res, err := h.orderService.UpdateOrder(c.Context(), orderID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedUpdateOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateOrder)
}

func (h *adminHandler) CancelOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	res, err := h.orderService.CancelOrder(c.Context(), orderID)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedCancelOrder, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCancelOrder)
}

func (h *adminHandler) SetDeadline(c *fiber.Ctx) error {
	req := new(domain.SetDeadlineRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetDeadline, err)
	}

	res, err := h.orderService.SetDeadline(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedSetDeadline, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSetDeadline)
}

func (h *adminHandler) SetCounterCap(c *fiber.Ctx) error {
	req := new(domain.SetCounterRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetCounter, err)
	}

	res, err := h.orderService.SetCounterCap(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedSetCounter, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSetCounter)
}

func (h *adminHandler) GetDashboard(c *fiber.Ctx) error {
	day := time.Now()
	if date, err := parseDateQuery(c); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDashboard, err)
	} else if date != nil {
		day = *date
	}

	res, err := h.dashboardService.GetDashboard(c.Context(), day)
	if err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedGetDashboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetDashboard)
}

func (h *adminHandler) EmailDailySummary(c *fiber.Ctx) error {
	day := time.Now()
	if date, err := parseDateQuery(c); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEmailDashboard, err)
	} else if date != nil {
		day = *date
	}

	if err := h.dashboardService.EmailDailySummary(c.Context(), day); err != nil {
		return presenters.ErrorResponse(c, statusFromError(err), domain.MessageFailedEmailDashboard, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessEmailDashboard)
}
