package order

import (
	"context"
	"time"

	"github.com/amanjaiswal7236/chai-lelo/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// DeadlineRepository holds one mutable deadline slot per category.
	// Setting a deadline overwrites the previous one; no history.
	DeadlineRepository interface {
		Set(ctx context.Context, category string, deadline time.Time, isLive bool) (*entities.MealDeadline, error)
		GetByCategory(ctx context.Context, category string) (*entities.MealDeadline, error)
	}

	deadlineRepository struct {
		db *gorm.DB
	}
)

func NewDeadlineRepository(db *gorm.DB) DeadlineRepository {
	return &deadlineRepository{db: db}
}

func (r *deadlineRepository) Set(ctx context.Context, category string, deadline time.Time, isLive bool) (*entities.MealDeadline, error) {
	record := &entities.MealDeadline{
		ID:       uuid.New(),
		Category: category,
		Deadline: deadline,
		Date:     time.Now(),
		IsLive:   isLive,
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoUpdates: clause.AssignmentColumns([]string{"deadline", "date", "is_live", "updated_at"}),
	}).Create(record).Error
	if err != nil {
		return nil, err
	}

	return r.GetByCategory(ctx, category)
}

func (r *deadlineRepository) GetByCategory(ctx context.Context, category string) (*entities.MealDeadline, error) {
	var record entities.MealDeadline
	if err := r.db.WithContext(ctx).Where("category = ?", category).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}
