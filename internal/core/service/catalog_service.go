package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/freshmart/grocery-api/internal/core/domain"
	"github.com/freshmart/grocery-api/internal/port"
)

type CatalogService struct {
	products port.ProductRepository
	logger   zerolog.Logger
}

func NewCatalogService(products port.ProductRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{
		products: products,
		logger:   logger.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListProducts(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, fmt.Errorf("%w: product name is required", domain.ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	if p.Inventory < 0 {
		return nil, fmt.Errorf("%w: inventory must not be negative", domain.ErrInvalidInput)
	}
	p.Price = p.Price.Round(2)

	if err := s.products.CreateProduct(ctx, &p); err != nil {
		return nil, err
	}
	s.logger.Info().Int64("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return &p, nil
}

// Update applies only the supplied fields.
func (s *CatalogService) Update(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	if patch.Price != nil {
		if patch.Price.IsNegative() {
			return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
		}
		rounded := patch.Price.Round(2)
		patch.Price = &rounded
	}
	if patch.Inventory != nil && *patch.Inventory < 0 {
		return nil, fmt.Errorf("%w: inventory must not be negative", domain.ErrInvalidInput)
	}

	p, err := s.products.UpdateProduct(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	s.logger.Info().Int64("product_id", id).Msg("product updated")
	return p, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.products.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

func (s *CatalogService) Inventory(ctx context.Context) ([]domain.StockLevel, error) {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	levels := make([]domain.StockLevel, 0, len(products))
	for _, p := range products {
		levels = append(levels, domain.StockLevel{ProductID: p.ID, Inventory: p.Inventory})
	}
	return levels, nil
}

// SetInventory overwrites a product's stock with an absolute count.
func (s *CatalogService) SetInventory(ctx context.Context, id int64, quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: inventory must not be negative", domain.ErrInvalidInput)
	}
	ok, err := s.products.SetInventory(ctx, id, quantity)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("product %d: %w", id, domain.ErrNotFound)
	}
	s.logger.Info().Int64("product_id", id).Int("inventory", quantity).Msg("inventory updated")
	return nil
}
