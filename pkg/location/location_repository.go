package location

import (
	"context"

	"github.com/amanjaiswal7236/chai-lelo/entities"
	"gorm.io/gorm"
)

type (
	LocationRepository interface {
		Create(ctx context.Context, loc *entities.Location) error
		Update(ctx context.Context, loc *entities.Location) error
		GetByID(ctx context.Context, id string) (*entities.Location, error)
		GetActive(ctx context.Context) ([]*entities.Location, error)
	}

	locationRepository struct {
		db *gorm.DB
	}
)

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(ctx context.Context, loc *entities.Location) error {
	return r.db.WithContext(ctx).Create(loc).Error
}

func (r *locationRepository) Update(ctx context.Context, loc *entities.Location) error {
	return r.db.WithContext(ctx).Save(loc).Error
}

func (r *locationRepository) GetByID(ctx context.Context, id string) (*entities.Location, error) {
	var loc entities.Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&loc).Error; err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *locationRepository) GetActive(ctx context.Context) ([]*entities.Location, error) {
	var locations []*entities.Location
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name asc").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}
