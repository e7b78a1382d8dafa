package order

import (
	"context"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/amanjaiswal7236/chai-lelo/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// CounterRepository tracks per-category per-day order counts. The
	// increment is a single conditional UPDATE so two orders racing
	// near the cap can never both get through.
	CounterRepository interface {
		Get(ctx context.Context, category string, day time.Time) (*entities.MealCounter, error)
		Increment(ctx context.Context, category string, day time.Time) error
		SetCap(ctx context.Context, category string, maxOrders int, day time.Time) (*entities.MealCounter, error)
	}

	counterRepository struct {
		db *gorm.DB
	}
)

func NewCounterRepository(db *gorm.DB) CounterRepository {
	return &counterRepository{db: db}
}

func (r *counterRepository) Get(ctx context.Context, category string, day time.Time) (*entities.MealCounter, error) {
	var counter entities.MealCounter
	if err := r.db.WithContext(ctx).
		Where("category = ? AND date = ?", category, day).
		First(&counter).Error; err != nil {
		return nil, err
	}
	return &counter, nil
}

func (r *counterRepository) Increment(ctx context.Context, category string, day time.Time) error {
	return incrementIfBelowCap(r.db.WithContext(ctx), category, day)
}

func (r *counterRepository) SetCap(ctx context.Context, category string, maxOrders int, day time.Time) (*entities.MealCounter, error) {
	counter := &entities.MealCounter{
		ID:        uuid.New(),
		Category:  category,
		Date:      day,
		MaxOrders: &maxOrders,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"max_orders", "updated_at"}),
	}).Create(counter).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, category, day)
}

// incrementIfBelowCap bumps the counter for (category, day) by one,
// refusing with ErrCapacityExceeded when a cap is set and already met.
// The guard and the increment are one UPDATE statement, which is what
// makes concurrent orders at the cap boundary safe.
func incrementIfBelowCap(tx *gorm.DB, category string, day time.Time) error {
	res := tx.Model(&entities.MealCounter{}).
		Where("category = ? AND date = ?", category, day).
		Where("max_orders IS NULL OR order_count < max_orders").
		UpdateColumn("order_count", gorm.Expr("order_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 1 {
		return nil
	}

	var existing int64
	if err := tx.Model(&entities.MealCounter{}).
		Where("category = ? AND date = ?", category, day).
		Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		return domain.ErrCapacityExceeded
	}

	counter := &entities.MealCounter{
		ID:         uuid.New(),
		Category:   category,
		Date:       day,
		OrderCount: 1,
	}
	if err := tx.Create(counter).Error; err != nil {
		// Lost the race to create the first row of the day; retry the
		// conditional update once against the winner's row.
		res = tx.Model(&entities.MealCounter{}).
			Where("category = ? AND date = ?", category, day).
			Where("max_orders IS NULL OR order_count < max_orders").
			UpdateColumn("order_count", gorm.Expr("order_count + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrCapacityExceeded
		}
	}
	return nil
}
