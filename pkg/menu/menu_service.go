package menu

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/amanjaiswal7236/chai-lelo/entities"
	"github.com/amanjaiswal7236/chai-lelo/internal/utils/storage"
	"github.com/amanjaiswal7236/chai-lelo/pkg/order"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	MenuService interface {
		GetMenuByCategory(ctx context.Context, category string) (domain.CategoryMenuResponse, error)
		GetAllMenuItems(ctx context.Context) ([]*entities.MenuItem, error)
		CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (*entities.MenuItem, error)
		UpdateMenuItem(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (*entities.MenuItem, error)
		ToggleMenuItem(ctx context.Context, id string) (*entities.MenuItem, error)
		UploadItemImage(ctx context.Context, id string, image *multipart.FileHeader) (*entities.MenuItem, error)
	}

	menuService struct {
		menuRepository     MenuRepository
		deadlineRepository order.DeadlineRepository
		s3                 storage.AwsS3
	}
)

func NewMenuService(menuRepository MenuRepository, deadlineRepository order.DeadlineRepository, s3 storage.AwsS3) MenuService {
	return &menuService{
		menuRepository:     menuRepository,
		deadlineRepository: deadlineRepository,
		s3:                 s3,
	}
}

func (s *menuService) GetMenuByCategory(ctx context.Context, category string) (domain.CategoryMenuResponse, error) {
	if !entities.IsValidCategory(category) {
		return domain.CategoryMenuResponse{}, domain.ErrInvalidCategory
	}

	items, err := s.menuRepository.GetEnabledByCategory(ctx, category)
	if err != nil {
		return domain.CategoryMenuResponse{}, err
	}

	response := domain.CategoryMenuResponse{
		Category: category,
		Items:    items,
	}

	deadline, err := s.deadlineRepository.GetByCategory(ctx, category)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.CategoryMenuResponse{}, err
	}
	if deadline != nil {
		response.Deadline = &domain.DeadlineInfo{
			Time:   deadline.Deadline,
			IsLive: deadline.IsLive,
		}
	}

	return response, nil
}

func (s *menuService) GetAllMenuItems(ctx context.Context) ([]*entities.MenuItem, error) {
	return s.menuRepository.GetAll(ctx)
}

func (s *menuService) CreateMenuItem(ctx context.Context, req domain.CreateMenuItemRequest) (*entities.MenuItem, error) {
	item := &entities.MenuItem{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		IsVeg:       *req.IsVeg,
		Price:       *req.Price,
		SubItems:    req.SubItems,
		IsEnabled:   true,
	}
	if item.SubItems == nil {
		item.SubItems = []string{}
	}

	if err := s.menuRepository.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, id string, req domain.UpdateMenuItemRequest) (*entities.MenuItem, error) {
	item, err := s.menuRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		item.Name = req.Name
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Image != "" {
		item.Image = req.Image
	}
	if req.Category != "" {
		item.Category = req.Category
	}
	if req.IsVeg != nil {
		item.IsVeg = *req.IsVeg
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.SubItems != nil {
		item.SubItems = req.SubItems
	}

	if err := s.menuRepository.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) ToggleMenuItem(ctx context.Context, id string) (*entities.MenuItem, error) {
	item, err := s.menuRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}

	item.IsEnabled = !item.IsEnabled
	if err := s.menuRepository.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *menuService) UploadItemImage(ctx context.Context, id string, image *multipart.FileHeader) (*entities.MenuItem, error) {
	item, err := s.menuRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}

	fileName := fmt.Sprintf("menu-item-%s", item.ID.String())
	objectKey, err := s.s3.UploadFile(fileName, image, "menu-items", storage.AllowImage...)
	if err != nil {
		return nil, err
	}

	// Replacing an image orphans the old object; clean it up
	// best-effort.
	if oldKey := s.s3.GetObjectKeyFromLink(item.Image); oldKey != "" && oldKey != objectKey {
		if err := s.s3.DeleteFile(oldKey); err != nil {
			log.Warnf("failed to delete replaced image %s: %v", oldKey, err)
		}
	}

	item.Image = s.s3.GetPublicLinkKey(objectKey)
	if err := s.menuRepository.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
