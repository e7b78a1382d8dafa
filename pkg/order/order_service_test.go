package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/amanjaiswal7236/chai-lelo/entities"
	"github.com/amanjaiswal7236/chai-lelo/pkg/notify"
	"github.com/amanjaiswal7236/chai-lelo/pkg/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.MenuItem{},
		&entities.MealDeadline{},
		&entities.MealCounter{},
		&entities.Order{},
		&entities.OrderItem{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

type fakeReceiptSender struct {
	sent []notify.Receipt
	err  error
}

func (f *fakeReceiptSender) Send(phone string, receipt notify.Receipt) error {
	f.sent = append(f.sent, receipt)
	return f.err
}

// dbMenuGetter reads catalog rows straight from the test database.
type dbMenuGetter struct {
	db *gorm.DB
}

func (g dbMenuGetter) GetByID(ctx context.Context, id string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

type orderTestEnv struct {
	db       *gorm.DB
	service  OrderService
	counters CounterRepository
	receipts *fakeReceiptSender
	customer *entities.User
}

func newOrderTestEnv(t *testing.T) *orderTestEnv {
	db := setupOrderTestDB(t)

	customer := &entities.User{
		ID:         uuid.New(),
		Phone:      "+919876543210",
		Name:       "Asha",
		Role:       entities.RoleUser,
		IsVerified: true,
	}
	require.NoError(t, db.Create(customer).Error)

	receipts := &fakeReceiptSender{}
	counters := NewCounterRepository(db)
	service := NewOrderService(
		NewOrderRepository(db),
		counters,
		NewDeadlineRepository(db),
		user.NewUserRepository(db),
		dbMenuGetter{db: db},
		receipts,
	)

	return &orderTestEnv{
		db:       db,
		service:  service,
		counters: counters,
		receipts: receipts,
		customer: customer,
	}
}

func (e *orderTestEnv) seedMenuItem(t *testing.T, name string, price float64, enabled bool) *entities.MenuItem {
	item := &entities.MenuItem{
		ID:        uuid.New(),
		Name:      name,
		Category:  entities.CategoryLunch,
		IsVeg:     true,
		Price:     price,
		SubItems:  []string{},
		IsEnabled: enabled,
	}
	require.NoError(t, e.db.Create(item).Error)
	return item
}

func TestCreateOrderSnapshotsPricing(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)

	created, err := env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items: []domain.OrderItemRequest{
			{
				ItemID:   thali.ID.String(),
				Quantity: 2,
				AddOns:   []domain.OrderAddOnRequest{{Name: "Extra Roti", Price: 20}},
			},
		},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	require.NoError(t, err)

	assert.Equal(t, 220.0, created.TotalAmount)
	assert.Equal(t, entities.StatusPending, created.Status)
	assert.Equal(t, "Asha", created.UserName)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "Veg Thali", created.Items[0].Name)
	assert.Equal(t, 100.0, created.Items[0].Price)

	// Later catalog edits must not reach the stored order.
	require.NoError(t, env.db.Model(thali).Update("price", 500).Error)

	stored, err := env.service.GetCurrentOrder(ctx, env.customer.ID.String())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 220.0, stored.TotalAmount)
	assert.Equal(t, 100.0, stored.Items[0].Price)
}

func TestCreateOrderRejectsPassedDeadline(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)

	_, err := env.service.SetDeadline(ctx, domain.SetDeadlineRequest{
		Category: entities.CategoryLunch,
		Deadline: time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	_, err = env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: thali.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	assert.ErrorIs(t, err, domain.ErrDeadlinePassed)
}

func TestCreateOrderHonoursCounterCap(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)

	_, err := env.service.SetCounterCap(ctx, domain.SetCounterRequest{
		Category:  entities.CategoryLunch,
		MaxOrders: 2,
	})
	require.NoError(t, err)

	request := domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: thali.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	}

	for i := 0; i < 2; i++ {
		_, err := env.service.CreateOrder(ctx, env.customer.ID.String(), request)
		require.NoError(t, err)
	}

	_, err = env.service.CreateOrder(ctx, env.customer.ID.String(), request)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)

	counter, err := env.counters.Get(ctx, entities.CategoryLunch, truncateToDay(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, 2, counter.OrderCount)

	// A rejected order must not leave a stray row behind.
	var orderCount int64
	require.NoError(t, env.db.Model(&entities.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(2), orderCount)
}

func TestCreateOrderConcurrentAtCap(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	// sqlite opens a fresh in-memory database per connection, so pin
	// the pool to one connection before fanning out.
	sqlDB, err := env.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)

	_, err = env.service.SetCounterCap(ctx, domain.SetCounterRequest{
		Category:  entities.CategoryLunch,
		MaxOrders: 3,
	})
	require.NoError(t, err)

	request := domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: thali.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	}

	const attempts = 6
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.service.CreateOrder(ctx, env.customer.ID.String(), request)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrCapacityExceeded):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 3, rejected)

	counter, err := env.counters.Get(ctx, entities.CategoryLunch, truncateToDay(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, 3, counter.OrderCount)

	var orderCount int64
	require.NoError(t, env.db.Model(&entities.Order{}).Count(&orderCount).Error)
	assert.Equal(t, int64(3), orderCount)
}

func TestCreateOrderRejectsDisabledItem(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	samosa := env.seedMenuItem(t, "Samosa", 30, false)

	_, err := env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: samosa.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	assert.ErrorIs(t, err, domain.ErrItemUnavailable)

	var unavailable *domain.ItemUnavailableError
	require.True(t, errors.As(err, &unavailable))
	assert.Equal(t, "Samosa", unavailable.Name)

	_, err = env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: uuid.NewString(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	assert.ErrorIs(t, err, domain.ErrItemUnavailable)
}

func TestCreateOrderValidation(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)
	items := []domain.OrderItemRequest{{ItemID: thali.ID.String(), Quantity: 1}}

	_, err := env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	assert.ErrorIs(t, err, domain.ErrEmptyOrder)

	_, err = env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    items,
		MealType: "brunch",
		Location: "Hostel A",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)

	_, err = env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    items,
		MealType: entities.CategoryLunch,
	})
	assert.ErrorIs(t, err, domain.ErrLocationRequired)
}

func TestUpdatePaymentStatusAdvancesAndSendsReceipt(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)
	created, err := env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: thali.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	require.NoError(t, err)

	updated, err := env.service.UpdatePaymentStatus(ctx, created.ID.String(), env.customer.ID.String(), domain.UpdatePaymentRequest{
		PaymentID: "pay_123",
	})
	require.NoError(t, err)

	assert.True(t, updated.PaymentStatus)
	assert.Equal(t, "pay_123", updated.PaymentID)
	assert.Equal(t, entities.StatusAccepted, updated.Status)
	require.Len(t, env.receipts.sent, 1)
	assert.Equal(t, created.ID.String(), env.receipts.sent[0].OrderID)
	assert.Equal(t, 100.0, env.receipts.sent[0].TotalAmount)
}

func TestUpdatePaymentStatusSurvivesSendFailure(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()
	env.receipts.err = errors.New("provider down")

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)
	created, err := env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: thali.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	require.NoError(t, err)

	updated, err := env.service.UpdatePaymentStatus(ctx, created.ID.String(), env.customer.ID.String(), domain.UpdatePaymentRequest{})
	require.NoError(t, err)
	assert.True(t, updated.PaymentStatus)
}

func TestUpdatePaymentStatusWrongUser(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)
	created, err := env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: thali.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	require.NoError(t, err)

	_, err = env.service.UpdatePaymentStatus(ctx, created.ID.String(), uuid.NewString(), domain.UpdatePaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestUpdateOrderStatusUnification(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)
	created, err := env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: thali.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	require.NoError(t, err)

	packed := true
	updated, err := env.service.UpdateOrder(ctx, created.ID.String(), domain.AdminUpdateOrderRequest{Packed: &packed})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusPacked, updated.Status)
	assert.True(t, updated.Packed)
	assert.False(t, updated.Delivered)

	status := entities.StatusDelivered
	updated, err = env.service.UpdateOrder(ctx, created.ID.String(), domain.AdminUpdateOrderRequest{Status: &status})
	require.NoError(t, err)
	assert.True(t, updated.Packed)
	assert.True(t, updated.Delivered)

	// An explicit status can move the order backwards and the flags
	// follow it down.
	status = entities.StatusAccepted
	updated, err = env.service.UpdateOrder(ctx, created.ID.String(), domain.AdminUpdateOrderRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusAccepted, updated.Status)
	assert.False(t, updated.Packed)
	assert.False(t, updated.Delivered)
}

func TestCancelOrderKeepsCounterSlot(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)
	created, err := env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: thali.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	require.NoError(t, err)

	cancelled, err := env.service.CancelOrder(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, entities.StatusCancelled, cancelled.Status)

	counter, err := env.counters.Get(ctx, entities.CategoryLunch, truncateToDay(time.Now()))
	require.NoError(t, err)
	assert.Equal(t, 1, counter.OrderCount)

	_, err = env.service.CancelOrder(ctx, created.ID.String())
	assert.ErrorIs(t, err, domain.ErrOrderNotCancellable)
}

func TestGetCurrentOrderEmpty(t *testing.T) {
	env := newOrderTestEnv(t)

	current, err := env.service.GetCurrentOrder(context.Background(), env.customer.ID.String())
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestGetOrderHistoryFilters(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)
	dal := env.seedMenuItem(t, "Dal Makhani", 150, true)
	dal.Category = entities.CategoryDinner
	require.NoError(t, env.db.Save(dal).Error)

	_, err := env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: thali.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	require.NoError(t, err)

	_, err = env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: dal.ID.String(), Quantity: 1}},
		MealType: entities.CategoryDinner,
		Location: "Hostel A",
	})
	require.NoError(t, err)

	all, err := env.service.GetOrderHistory(ctx, env.customer.ID.String(), domain.HistoryFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	lunchOnly, err := env.service.GetOrderHistory(ctx, env.customer.ID.String(), domain.HistoryFilter{
		MealType: entities.CategoryLunch,
	})
	require.NoError(t, err)
	require.Len(t, lunchOnly, 1)
	assert.Equal(t, entities.CategoryLunch, lunchOnly[0].MealType)
}

func TestListOrdersSummaryAndVegFilter(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	thali := env.seedMenuItem(t, "Veg Thali", 100, true)
	chicken := env.seedMenuItem(t, "Chicken Curry", 180, true)
	chicken.IsVeg = false
	require.NoError(t, env.db.Save(chicken).Error)

	vegOrder, err := env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: thali.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel A",
	})
	require.NoError(t, err)

	_, err = env.service.CreateOrder(ctx, env.customer.ID.String(), domain.CreateOrderRequest{
		Items:    []domain.OrderItemRequest{{ItemID: chicken.ID.String(), Quantity: 1}},
		MealType: entities.CategoryLunch,
		Location: "Hostel B",
	})
	require.NoError(t, err)

	_, err = env.service.UpdatePaymentStatus(ctx, vegOrder.ID.String(), env.customer.ID.String(), domain.UpdatePaymentRequest{})
	require.NoError(t, err)

	orders, summary, err := env.service.ListOrders(ctx, domain.AdminOrderFilter{})
	require.NoError(t, err)
	assert.Len(t, orders, 2)
	assert.Equal(t, 2, summary.TotalOrders)
	assert.Equal(t, 1, summary.Paid)
	assert.Equal(t, 100.0, summary.TotalRevenue)

	isVeg := true
	vegOrders, vegSummary, err := env.service.ListOrders(ctx, domain.AdminOrderFilter{IsVeg: &isVeg})
	require.NoError(t, err)
	require.Len(t, vegOrders, 1)
	assert.Equal(t, vegOrder.ID, vegOrders[0].ID)
	assert.Equal(t, 1, vegSummary.TotalOrders)
}

func TestSetDeadlineOverwritesSlot(t *testing.T) {
	env := newOrderTestEnv(t)
	ctx := context.Background()

	first := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	second := first.Add(2 * time.Hour)

	_, err := env.service.SetDeadline(ctx, domain.SetDeadlineRequest{
		Category: entities.CategoryLunch,
		Deadline: first,
	})
	require.NoError(t, err)

	live := true
	latest, err := env.service.SetDeadline(ctx, domain.SetDeadlineRequest{
		Category: entities.CategoryLunch,
		Deadline: second,
		IsLive:   &live,
	})
	require.NoError(t, err)
	assert.True(t, latest.IsLive)
	assert.True(t, latest.Deadline.Equal(second))

	var count int64
	require.NoError(t, env.db.Model(&entities.MealDeadline{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
