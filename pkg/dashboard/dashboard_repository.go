package dashboard

import (
	"context"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/entities"
	"gorm.io/gorm"
)

type (
	DashboardRepository interface {
		FindByDateRange(ctx context.Context, from time.Time, to time.Time) ([]*entities.Order, error)
	}

	dashboardRepository struct {
		db *gorm.DB
	}
)

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// FindByDateRange returns orders with order_date in [from, to), items
// preloaded. Aggregation happens in the service.
func (r *dashboardRepository) FindByDateRange(ctx context.Context, from time.Time, to time.Time) ([]*entities.Order, error) {
	var orders []*entities.Order
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("order_date >= ? AND order_date < ?", from, to).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
