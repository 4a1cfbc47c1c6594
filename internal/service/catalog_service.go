package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"go.uber.org/zap"
)

// CatalogService типизированные выборки справочника для воронки записи
type CatalogService struct {
	catalog Catalog
	logger  *zap.Logger
}

func NewCatalogService(catalog Catalog, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		catalog: catalog,
		logger:  logger,
	}
}

// Types получает все виды услуг
func (s *CatalogService) Types(ctx context.Context) ([]*model.ServiceType, error) {
	return s.catalog.Types(ctx)
}

// Cities получает все города
func (s *CatalogService) Cities(ctx context.Context) ([]*model.City, error) {
	return s.catalog.Cities(ctx)
}

// City получает город по id
func (s *CatalogService) City(ctx context.Context, id int64) (*model.City, error) {
	city, err := s.catalog.City(ctx, id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, fmt.Errorf("city %d: %w", id, ErrNotFound)
	}
	return city, nil
}

// CentersByTypeAndCity получает сети салонов вида typeID с салонами в городе
func (s *CatalogService) CentersByTypeAndCity(ctx context.Context, typeID, cityID int64) ([]*model.Center, error) {
	return s.catalog.CentersByTypeAndCity(ctx, typeID, cityID)
}

// Center получает сеть салонов по id
func (s *CatalogService) Center(ctx context.Context, id int64) (*model.Center, error) {
	center, err := s.catalog.Center(ctx, id)
	if err != nil {
		return nil, err
	}
	if center == nil {
		return nil, fmt.Errorf("center %d: %w", id, ErrNotFound)
	}
	return center, nil
}

// PlacesByCenterAndCity получает салоны сети в городе
func (s *CatalogService) PlacesByCenterAndCity(ctx context.Context, centerID, cityID int64) ([]*model.Place, error) {
	return s.catalog.PlacesByCenterAndCity(ctx, centerID, cityID)
}

// PlacesByServiceAndCity получает салоны города с услугой serviceID
func (s *CatalogService) PlacesByServiceAndCity(ctx context.Context, serviceID, cityID int64) ([]*model.Place, error) {
	return s.catalog.PlacesByServiceAndCity(ctx, serviceID, cityID)
}

// ServicesByTypeAndCity получает услуги вида, доступные в городе
func (s *CatalogService) ServicesByTypeAndCity(ctx context.Context, typeID, cityID int64) ([]*model.Service, error) {
	return s.catalog.ServicesByTypeAndCity(ctx, typeID, cityID)
}

// ServicesByPlace получает услуги салона
func (s *CatalogService) ServicesByPlace(ctx context.Context, placeID int64) ([]*model.Service, error) {
	return s.catalog.ServicesByPlace(ctx, placeID)
}

// Place получает салон по id
func (s *CatalogService) Place(ctx context.Context, id int64) (*model.Place, error) {
	place, err := s.catalog.Place(ctx, id)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, fmt.Errorf("place %d: %w", id, ErrNotFound)
	}
	return place, nil
}

// PlaceByLinkCode получает салон по коду из deep link /start <code>
func (s *CatalogService) PlaceByLinkCode(ctx context.Context, code string) (*model.Place, error) {
	parsed, err := uuid.Parse(code)
	if err != nil {
		return nil, fmt.Errorf("parse link code %q: %w", code, ErrNotFound)
	}

	place, err := s.catalog.PlaceByLinkCode(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if place == nil {
		s.logger.Warn("Unknown place link code", zap.String("code", code))
		return nil, fmt.Errorf("link code %q: %w", code, ErrNotFound)
	}

	return place, nil
}

// Service получает услугу по id
func (s *CatalogService) Service(ctx context.Context, id int64) (*model.Service, error) {
	svc, err := s.catalog.Service(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, fmt.Errorf("service %d: %w", id, ErrNotFound)
	}
	return svc, nil
}
