package dashboard

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/entities"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDashboardTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&entities.Order{}, &entities.OrderItem{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

type capturedMail struct {
	to      string
	subject string
	body    string
	sends   int
}

func seedOrder(t *testing.T, db *gorm.DB, day time.Time, paid bool, status string, items ...entities.OrderItem) *entities.Order {
	var total float64
	orderID := uuid.New()
	for i := range items {
		items[i].ID = uuid.New()
		items[i].OrderID = orderID
		total += items[i].Price * float64(items[i].Quantity)
	}

	o := &entities.Order{
		ID:            orderID,
		UserID:        uuid.New(),
		UserName:      "Asha",
		UserPhone:     "+919876543210",
		Location:      "Hostel A",
		Items:         items,
		MealType:      entities.CategoryLunch,
		OrderDate:     day,
		TotalAmount:   total,
		PaymentStatus: paid,
		Status:        status,
	}
	require.NoError(t, db.Create(o).Error)
	return o
}

func TestGetDashboardAggregates(t *testing.T) {
	db := setupDashboardTestDB(t)
	service := NewDashboardService(NewDashboardRepository(db), func(to, subject, body string) error {
		return nil
	}, "admin@example.com")

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	thaliID := uuid.New()
	samosaID := uuid.New()
	dalID := uuid.New()

	seedOrder(t, db, day, true, entities.StatusDelivered,
		entities.OrderItem{MenuItemID: thaliID, Name: "Veg Thali", Quantity: 2, Price: 100, IsVeg: true},
	)
	seedOrder(t, db, day, false, entities.StatusPending,
		entities.OrderItem{MenuItemID: samosaID, Name: "Samosa", Quantity: 5, Price: 30, IsVeg: true},
	)
	// Cancelled orders stay in the window count and dish tallies; only
	// revenue is gated on payment.
	seedOrder(t, db, day, false, entities.StatusCancelled,
		entities.OrderItem{MenuItemID: thaliID, Name: "Veg Thali", Quantity: 1, Price: 100, IsVeg: true},
	)
	// Different day, same month.
	seedOrder(t, db, day.AddDate(0, 0, 5), true, entities.StatusDelivered,
		entities.OrderItem{MenuItemID: dalID, Name: "Dal Makhani", Quantity: 1, Price: 150, IsVeg: true},
	)
	// Different month.
	seedOrder(t, db, day.AddDate(0, 1, 0), true, entities.StatusDelivered,
		entities.OrderItem{MenuItemID: thaliID, Name: "Veg Thali", Quantity: 1, Price: 100, IsVeg: true},
	)

	res, err := service.GetDashboard(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, "2026-03-10", res.Daily.Date)
	assert.Equal(t, 3, res.Daily.OrderCount)
	assert.Equal(t, 1, res.Daily.PaidOrders)
	assert.Equal(t, 200.0, res.Daily.TotalRevenue)

	require.Len(t, res.Daily.TopDishes, 2)
	assert.Equal(t, "Samosa", res.Daily.TopDishes[0].Name)
	assert.Equal(t, 5, res.Daily.TopDishes[0].Count)
	assert.Equal(t, 0.0, res.Daily.TopDishes[0].Revenue)
	assert.Equal(t, "Veg Thali", res.Daily.TopDishes[1].Name)
	assert.Equal(t, 3, res.Daily.TopDishes[1].Count)
	assert.Equal(t, 200.0, res.Daily.TopDishes[1].Revenue)

	// Monthly totals cover paid orders only.
	assert.Equal(t, 3, res.Monthly.Month)
	assert.Equal(t, 2026, res.Monthly.Year)
	assert.Equal(t, 2, res.Monthly.OrderCount)
	assert.Equal(t, 350.0, res.Monthly.TotalRevenue)
}

func TestMonthlyCountsPaidOrdersOnly(t *testing.T) {
	db := setupDashboardTestDB(t)
	service := NewDashboardService(NewDashboardRepository(db), func(to, subject, body string) error {
		return nil
	}, "admin@example.com")

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	seedOrder(t, db, day, false, entities.StatusPending,
		entities.OrderItem{MenuItemID: uuid.New(), Name: "Samosa", Quantity: 1, Price: 30, IsVeg: true},
	)

	res, err := service.GetDashboard(context.Background(), day)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Daily.OrderCount)
	assert.Equal(t, 0, res.Monthly.OrderCount)
	assert.Equal(t, 0.0, res.Monthly.TotalRevenue)
}

func TestTopDishesKeyedByItemIdentity(t *testing.T) {
	db := setupDashboardTestDB(t)
	service := NewDashboardService(NewDashboardRepository(db), func(to, subject, body string) error {
		return nil
	}, "admin@example.com")

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	// Two distinct catalog entries sharing a display name must stay
	// separate dishes.
	seedOrder(t, db, day, true, entities.StatusDelivered,
		entities.OrderItem{MenuItemID: uuid.New(), Name: "Thali", Quantity: 2, Price: 100, IsVeg: true},
		entities.OrderItem{MenuItemID: uuid.New(), Name: "Thali", Quantity: 3, Price: 150, IsVeg: false},
	)

	res, err := service.GetDashboard(context.Background(), day)
	require.NoError(t, err)

	require.Len(t, res.Daily.TopDishes, 2)
	assert.Equal(t, "Thali", res.Daily.TopDishes[0].Name)
	assert.Equal(t, 3, res.Daily.TopDishes[0].Count)
	assert.Equal(t, 450.0, res.Daily.TopDishes[0].Revenue)
	assert.Equal(t, "Thali", res.Daily.TopDishes[1].Name)
	assert.Equal(t, 2, res.Daily.TopDishes[1].Count)
	assert.Equal(t, 200.0, res.Daily.TopDishes[1].Revenue)
}

func TestGetDashboardEmptyDay(t *testing.T) {
	db := setupDashboardTestDB(t)
	service := NewDashboardService(NewDashboardRepository(db), func(to, subject, body string) error {
		return nil
	}, "admin@example.com")

	res, err := service.GetDashboard(context.Background(), time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, 0, res.Daily.OrderCount)
	assert.Equal(t, 0.0, res.Daily.TotalRevenue)
	assert.Empty(t, res.Daily.TopDishes)
	assert.Equal(t, 0, res.Monthly.OrderCount)
}

func TestEmailDailySummary(t *testing.T) {
	db := setupDashboardTestDB(t)
	mail := &capturedMail{}
	service := NewDashboardService(NewDashboardRepository(db), func(to, subject, body string) error {
		mail.to, mail.subject, mail.body = to, subject, body
		mail.sends++
		return nil
	}, "admin@example.com")

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	seedOrder(t, db, day, true, entities.StatusDelivered,
		entities.OrderItem{MenuItemID: uuid.New(), Name: "Veg Thali", Quantity: 2, Price: 100, IsVeg: true},
	)

	require.NoError(t, service.EmailDailySummary(context.Background(), day))

	assert.Equal(t, 1, mail.sends)
	assert.Equal(t, "admin@example.com", mail.to)
	assert.Contains(t, mail.subject, "2026-03-10")
	assert.Contains(t, mail.body, "Veg Thali")
	assert.True(t, strings.Contains(mail.body, "200.00"))
}
