package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/tourbook/internal/model"
	"github.com/nurpe/tourbook/internal/pricing"
)

type ProductStore interface {
	GetProduct(ctx context.Context, id uuid.UUID) (*model.Product, error)
	SetDefaultOption(ctx context.Context, productID uuid.UUID, category model.OptionCategory, optionID string) error
}

type CatalogCache interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Product, bool)
	Set(ctx context.Context, product model.Product)
	Invalidate(ctx context.Context, id uuid.UUID)
}

type CatalogService struct {
	store ProductStore
	cache CatalogCache
}

type PriceRequest struct {
	People        int
	Accommodation string
	Vehicle       string
}

func NewCatalogService(store ProductStore, cache CatalogCache) *CatalogService {
	return &CatalogService{store: store, cache: cache}
}

func (s *CatalogService) Product(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if s.cache != nil {
		if product, ok := s.cache.Get(ctx, id); ok {
			return product, nil
		}
	}
	product, err := s.store.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, *product)
	}
	return product, nil
}

// Price computes the live price for a headcount and option selection.
func (s *CatalogService) Price(ctx context.Context, productID uuid.UUID, req PriceRequest) (*model.PriceBreakdown, error) {
	if req.People < 1 {
		return nil, fmt.Errorf("%w: people must be at least 1", ErrInvalidInput)
	}
	product, err := s.Product(ctx, productID)
	if err != nil {
		return nil, err
	}

	accommodation, err := pricing.SelectOption(product.Accommodations, req.Accommodation)
	if err != nil {
		return nil, fmt.Errorf("%w: accommodation: %v", ErrInvalidInput, err)
	}
	vehicle, err := pricing.SelectOption(product.Vehicles, req.Vehicle)
	if err != nil {
		return nil, fmt.Errorf("%w: vehicle: %v", ErrInvalidInput, err)
	}

	breakdown, err := pricing.Quote(product.Tiers, req.People, accommodation, vehicle)
	if err != nil {
		return nil, err
	}
	return &breakdown, nil
}

// SetDefaultOption makes optionID the only default within its category.
func (s *CatalogService) SetDefaultOption(ctx context.Context, productID uuid.UUID, optionID string, principal model.Principal) (*model.Product, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	for _, category := range []model.OptionCategory{model.OptionCategoryAccommodation, model.OptionCategoryVehicle} {
		updated, err := pricing.MarkDefault(product.Options(category), optionID)
		if errors.Is(err, pricing.ErrUnknownOption) {
			continue
		}
		if err := s.store.SetDefaultOption(ctx, productID, category, optionID); err != nil {
			return nil, err
		}
		if category == model.OptionCategoryAccommodation {
			product.Accommodations = updated
		} else {
			product.Vehicles = updated
		}
		if s.cache != nil {
			s.cache.Invalidate(ctx, productID)
		}
		return product, nil
	}
	return nil, fmt.Errorf("%w: option %s", ErrNotFound, optionID)
}
