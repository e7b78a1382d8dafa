package location

import (
	"context"
	"errors"

	"github.com/amanjaiswal7236/chai-lelo/domain"
	"github.com/amanjaiswal7236/chai-lelo/entities"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	LocationService interface {
		GetActiveLocations(ctx context.Context) ([]*entities.Location, error)
		CreateLocation(ctx context.Context, req domain.CreateLocationRequest) (*entities.Location, error)
		UpdateLocation(ctx context.Context, id string, req domain.UpdateLocationRequest) (*entities.Location, error)
		ToggleLocation(ctx context.Context, id string) (*entities.Location, error)
	}

	locationService struct {
		locationRepository LocationRepository
	}
)

func NewLocationService(locationRepository LocationRepository) LocationService {
	return &locationService{locationRepository: locationRepository}
}

func (s *locationService) GetActiveLocations(ctx context.Context) ([]*entities.Location, error) {
	return s.locationRepository.GetActive(ctx)
}

func (s *locationService) CreateLocation(ctx context.Context, req domain.CreateLocationRequest) (*entities.Location, error) {
	loc := &entities.Location{
		ID:       uuid.New(),
		Name:     req.Name,
		Address:  req.Address,
		IsActive: true,
	}
	if err := s.locationRepository.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *locationService) UpdateLocation(ctx context.Context, id string, req domain.UpdateLocationRequest) (*entities.Location, error) {
	loc, err := s.locationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		loc.Name = req.Name
	}
	if req.Address != "" {
		loc.Address = req.Address
	}

	if err := s.locationRepository.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *locationService) ToggleLocation(ctx context.Context, id string) (*entities.Location, error) {
	loc, err := s.locationRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLocationNotFound
		}
		return nil, err
	}

	loc.IsActive = !loc.IsActive
	if err := s.locationRepository.Update(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}
