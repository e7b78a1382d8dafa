package order

import (
	"context"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/amanjaiswal7236/chai-lelo/entities"
	"gorm.io/gorm"
)

type (
	OrderRepository interface {
		CreateWithIncrement(ctx context.Context, order *entities.Order) error
		GetByID(ctx context.Context, id string) (*entities.Order, error)
		GetByIDAndUser(ctx context.Context, id string, userID string) (*entities.Order, error)
		GetCurrent(ctx context.Context, userID string, day time.Time) (*entities.Order, error)
		GetHistory(ctx context.Context, userID string, filter domain.HistoryFilter, limit int) ([]*entities.Order, error)
		List(ctx context.Context, filter domain.AdminOrderFilter, limit int) ([]*entities.Order, error)
		Update(ctx context.Context, order *entities.Order) error
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// CreateWithIncrement persists the order and bumps the meal counter in
// one transaction: either both happen or neither does, and a full
// counter rolls the order back with ErrCapacityExceeded.
func (r *orderRepository) CreateWithIncrement(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := incrementIfBelowCap(tx, order.MealType, order.OrderDate); err != nil {
			return err
		}
		return tx.Create(order).Error
	})
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDAndUser(ctx context.Context, id string, userID string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetCurrent(ctx context.Context, userID string, day time.Time) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ? AND order_date >= ? AND status <> ?", userID, day, entities.StatusDelivered).
		Order("created_at desc").
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetHistory(ctx context.Context, userID string, filter domain.HistoryFilter, limit int) ([]*entities.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID)

	if filter.Date != nil {
		query = query.Where("order_date >= ? AND order_date < ?", *filter.Date, filter.Date.AddDate(0, 0, 1))
	}
	if filter.MealType != "" {
		query = query.Where("meal_type = ?", filter.MealType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var orders []*entities.Order
	if err := query.Order("created_at desc").Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) List(ctx context.Context, filter domain.AdminOrderFilter, limit int) ([]*entities.Order, error) {
	query := r.db.WithContext(ctx).Preload("Items")

	if filter.Date != nil {
		query = query.Where("order_date >= ? AND order_date < ?", *filter.Date, filter.Date.AddDate(0, 0, 1))
	}
	if filter.MealType != "" {
		query = query.Where("meal_type = ?", filter.MealType)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var orders []*entities.Order
	if err := query.Order("created_at desc").Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}
