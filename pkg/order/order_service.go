package order

import (
	"context"
	"errors"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/amanjaiswal7236/chai-lelo/entities"
	"github.com/amanjaiswal7236/chai-lelo/pkg/notify"
	"github.com/amanjaiswal7236/chai-lelo/pkg/user"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	historyLimit   = 50
	adminListLimit = 100
)

// MenuGetter is the slice of the catalog the ledger needs: current
// item records for availability checks and server-side pricing.
type MenuGetter interface {
	GetByID(ctx context.Context, id string) (*entities.MenuItem, error)
}

type (
	OrderService interface {
		CreateOrder(ctx context.Context, userID string, req domain.CreateOrderRequest) (*entities.Order, error)
		GetCurrentOrder(ctx context.Context, userID string) (*entities.Order, error)
		GetOrderHistory(ctx context.Context, userID string, filter domain.HistoryFilter) ([]*entities.Order, error)
		UpdatePaymentStatus(ctx context.Context, orderID string, userID string, req domain.UpdatePaymentRequest) (*entities.Order, error)

		UpdateOrder(ctx context.Context, orderID string, req domain.AdminUpdateOrderRequest) (*entities.Order, error)
		CancelOrder(ctx context.Context, orderID string) (*entities.Order, error)
		ListOrders(ctx context.Context, filter domain.AdminOrderFilter) ([]*entities.Order, domain.AdminOrderSummary, error)
		SetDeadline(ctx context.Context, req domain.SetDeadlineRequest) (*entities.MealDeadline, error)
		SetCounterCap(ctx context.Context, req domain.SetCounterRequest) (*entities.MealCounter, error)
	}

	orderService struct {
		orderRepository    OrderRepository
		counterRepository  CounterRepository
		deadlineRepository DeadlineRepository
		userRepository     user.UserRepository
		menu               MenuGetter
		receiptSender      notify.ReceiptSender
	}
)

func NewOrderService(
	orderRepository OrderRepository,
	counterRepository CounterRepository,
	deadlineRepository DeadlineRepository,
	userRepository user.UserRepository,
	menu MenuGetter,
	receiptSender notify.ReceiptSender,
) OrderService {
	return &orderService{
		orderRepository:    orderRepository,
		counterRepository:  counterRepository,
		deadlineRepository: deadlineRepository,
		userRepository:     userRepository,
		menu:               menu,
		receiptSender:      receiptSender,
	}
}

var statusRank = map[string]int{
	entities.StatusPending:   0,
	entities.StatusAccepted:  1,
	entities.StatusPacked:    2,
	entities.StatusInTransit: 3,
	entities.StatusDelivered: 4,
}

// applyStatus moves an order to the given lifecycle state and derives
// the packed/delivered flags from it. Cancellation leaves the flags
// where they were.
func applyStatus(order *entities.Order, status string) {
	order.Status = status
	if status == entities.StatusCancelled {
		return
	}
	order.Packed = statusRank[status] >= statusRank[entities.StatusPacked]
	order.Delivered = status == entities.StatusDelivered
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func (s *orderService) CreateOrder(ctx context.Context, userID string, req domain.CreateOrderRequest) (*entities.Order, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	if !entities.IsValidCategory(req.MealType) {
		return nil, domain.ErrInvalidCategory
	}
	if req.Location == "" {
		return nil, domain.ErrLocationRequired
	}

	now := time.Now()
	deadline, err := s.deadlineRepository.GetByCategory(ctx, req.MealType)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if deadline != nil && deadline.Deadline.Before(now) {
		return nil, domain.ErrDeadlinePassed
	}

	today := truncateToDay(now)

	// Advisory cap check so a full day is reported before item-level
	// failures; the authoritative check is the conditional increment
	// inside the create transaction.
	counter, err := s.counterRepository.Get(ctx, req.MealType, today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if counter != nil && counter.MaxOrders != nil && counter.OrderCount >= *counter.MaxOrders {
		return nil, domain.ErrCapacityExceeded
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	owner, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	orderID := uuid.New()
	var totalAmount float64
	orderItems := make([]entities.OrderItem, 0, len(req.Items))

	for _, line := range req.Items {
		menuItem, err := s.menu.GetByID(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &domain.ItemUnavailableError{Name: line.ItemID}
			}
			return nil, err
		}
		if !menuItem.IsEnabled {
			return nil, &domain.ItemUnavailableError{Name: menuItem.Name}
		}

		// Prices come from the catalog record, never the payload.
		lineTotal := menuItem.Price * float64(line.Quantity)
		addOns := make([]entities.OrderAddOn, 0, len(line.AddOns))
		for _, addOn := range line.AddOns {
			lineTotal += addOn.Price
			addOns = append(addOns, entities.OrderAddOn{Name: addOn.Name, Price: addOn.Price})
		}
		totalAmount += lineTotal

		orderItems = append(orderItems, entities.OrderItem{
			ID:         uuid.New(),
			OrderID:    orderID,
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   line.Quantity,
			Price:      menuItem.Price,
			IsVeg:      menuItem.IsVeg,
			AddOns:     addOns,
		})
	}

	userName := owner.Name
	if userName == "" {
		userName = owner.Phone
	}

	newOrder := &entities.Order{
		ID:          orderID,
		UserID:      userUUID,
		UserName:    userName,
		UserPhone:   owner.Phone,
		Location:    req.Location,
		Items:       orderItems,
		MealType:    req.MealType,
		OrderDate:   today,
		TotalAmount: totalAmount,
		Status:      entities.StatusPending,
	}

	if err := s.orderRepository.CreateWithIncrement(ctx, newOrder); err != nil {
		return nil, err
	}
	return newOrder, nil
}

func (s *orderService) GetCurrentOrder(ctx context.Context, userID string) (*entities.Order, error) {
	today := truncateToDay(time.Now())
	current, err := s.orderRepository.GetCurrent(ctx, userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return current, nil
}

func (s *orderService) GetOrderHistory(ctx context.Context, userID string, filter domain.HistoryFilter) ([]*entities.Order, error) {
	if filter.Date != nil {
		day := truncateToDay(*filter.Date)
		filter.Date = &day
	}
	return s.orderRepository.GetHistory(ctx, userID, filter, historyLimit)
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, orderID string, userID string, req domain.UpdatePaymentRequest) (*entities.Order, error) {
	current, err := s.orderRepository.GetByIDAndUser(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	paymentStatus := true
	if req.PaymentStatus != nil {
		paymentStatus = *req.PaymentStatus
	}

	current.PaymentStatus = paymentStatus
	if req.PaymentID != "" {
		current.PaymentID = req.PaymentID
	}
	if paymentStatus && current.Status != entities.StatusCancelled &&
		statusRank[current.Status] < statusRank[entities.StatusAccepted] {
		applyStatus(current, entities.StatusAccepted)
	}

	if err := s.orderRepository.Update(ctx, current); err != nil {
		return nil, err
	}

	// Receipt delivery is fire-and-forget: a provider failure is
	// logged and never rolls back the payment flag.
	if paymentStatus {
		if err := s.receiptSender.Send(current.UserPhone, buildReceipt(current)); err != nil {
			log.Errorf("failed to send receipt for order %s: %v", current.ID, err)
		}
	}

	return current, nil
}

func buildReceipt(o *entities.Order) notify.Receipt {
	items := make([]notify.ReceiptItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, notify.ReceiptItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return notify.Receipt{
		OrderID:     o.ID.String(),
		Items:       items,
		TotalAmount: o.TotalAmount,
		OrderDate:   o.OrderDate,
	}
}

func (s *orderService) UpdateOrder(ctx context.Context, orderID string, req domain.AdminUpdateOrderRequest) (*entities.Order, error) {
	current, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	if req.Status != nil {
		if !entities.IsValidStatus(*req.Status) {
			return nil, domain.ErrInvalidStatus
		}
		applyStatus(current, *req.Status)
	}
	if req.PaymentStatus != nil {
		current.PaymentStatus = *req.PaymentStatus
	}

	// Flag updates only move the lifecycle forward; repositioning
	// backward goes through the status field.
	if req.Packed != nil && *req.Packed && current.Status != entities.StatusCancelled &&
		statusRank[current.Status] < statusRank[entities.StatusPacked] {
		applyStatus(current, entities.StatusPacked)
	}
	if req.Delivered != nil && *req.Delivered && current.Status != entities.StatusCancelled {
		applyStatus(current, entities.StatusDelivered)
	}

	if err := s.orderRepository.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

// CancelOrder marks the order cancelled. The meal counter keeps its
// slot: freeing it would let users loop order-and-cancel around the cap.
func (s *orderService) CancelOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	current, err := s.orderRepository.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	if current.Status == entities.StatusDelivered || current.Status == entities.StatusCancelled {
		return nil, domain.ErrOrderNotCancellable
	}

	applyStatus(current, entities.StatusCancelled)
	if err := s.orderRepository.Update(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter domain.AdminOrderFilter) ([]*entities.Order, domain.AdminOrderSummary, error) {
	if filter.Date != nil {
		day := truncateToDay(*filter.Date)
		filter.Date = &day
	}

	orders, err := s.orderRepository.List(ctx, filter, adminListLimit)
	if err != nil {
		return nil, domain.AdminOrderSummary{}, err
	}

	if filter.IsVeg != nil {
		filtered := orders[:0]
		for _, o := range orders {
			for _, item := range o.Items {
				if item.IsVeg == *filter.IsVeg {
					filtered = append(filtered, o)
					break
				}
			}
		}
		orders = filtered
	}

	var summary domain.AdminOrderSummary
	summary.TotalOrders = len(orders)
	for _, o := range orders {
		if o.PaymentStatus {
			summary.Paid++
			summary.TotalRevenue += o.TotalAmount
		}
		if o.Packed {
			summary.Packed++
		}
		if o.Delivered {
			summary.Delivered++
		}
	}

	return orders, summary, nil
}

func (s *orderService) SetDeadline(ctx context.Context, req domain.SetDeadlineRequest) (*entities.MealDeadline, error) {
	isLive := false
	if req.IsLive != nil {
		isLive = *req.IsLive
	}
	return s.deadlineRepository.Set(ctx, req.Category, req.Deadline, isLive)
}

func (s *orderService) SetCounterCap(ctx context.Context, req domain.SetCounterRequest) (*entities.MealCounter, error) {
	day := time.Now()
	if req.Date != nil {
		day = *req.Date
	}
	return s.counterRepository.SetCap(ctx, req.Category, req.MaxOrders, truncateToDay(day))
}
