package menu

import (
	"context"

	"github.com/amanjaiswal7236/chai-lelo/entities"
	"gorm.io/gorm"
)

type (
	MenuRepository interface {
		Create(ctx context.Context, item *entities.MenuItem) error
		Update(ctx context.Context, item *entities.MenuItem) error
		GetByID(ctx context.Context, id string) (*entities.MenuItem, error)
		GetEnabledByCategory(ctx context.Context, category string) ([]*entities.MenuItem, error)
		GetAll(ctx context.Context) ([]*entities.MenuItem, error)
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) Create(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) Update(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuRepository) GetByID(ctx context.Context, id string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetEnabledByCategory(ctx context.Context, category string) ([]*entities.MenuItem, error) {
	var items []*entities.MenuItem
	if err := r.db.WithContext(ctx).
		Where("category = ? AND is_enabled = ?", category, true).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *menuRepository) GetAll(ctx context.Context) ([]*entities.MenuItem, error) {
	var items []*entities.MenuItem
	if err := r.db.WithContext(ctx).
		Order("category asc, created_at desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
