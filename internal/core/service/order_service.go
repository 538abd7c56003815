package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/freshmart/grocery-api/internal/core/domain"
	"github.com/freshmart/grocery-api/internal/port"
)

type OrderService struct {
	orders port.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(orders port.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		logger: logger.With().Str("component", "order_service").Logger(),
	}
}

// Place validates the requested lines and executes the placement as one
// atomic unit: every inventory decrement, the order row and its items
// commit together or not at all.
func (s *OrderService) Place(ctx context.Context, customerID int64, lines []domain.OrderLine) (*domain.Order, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: order has no items", domain.ErrInvalidInput)
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %d", domain.ErrInvalidInput, line.ProductID)
		}
	}

	order, err := s.orders.PlaceOrder(ctx, customerID, lines)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("order_id", order.ID).
		Int64("customer_id", customerID).
		Str("total", order.TotalPrice.String()).
		Msg("order placed")

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}
	return order, nil
}

// UpdateStatus overwrites the order status without touching inventory.
// Transitions to cancelled are rejected here; cancellation must go
// through Cancel so that stock is reconciled.
func (s *OrderService) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}
	if status == domain.OrderStatusCancelled {
		return nil, fmt.Errorf("%w: cancel orders via DELETE /api/v1/orders/{id}", domain.ErrInvalidInput)
	}

	order, err := s.orders.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}

	s.logger.Info().Int64("order_id", id).Str("status", string(status)).Msg("order status updated")
	return order, nil
}

// Cancel restores the quantities recorded on the order's items and
// removes the order with its items in one transaction.
func (s *OrderService) Cancel(ctx context.Context, id int64) error {
	existed, err := s.orders.CancelOrder(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return fmt.Errorf("order %d: %w", id, domain.ErrNotFound)
	}

	s.logger.Info().Int64("order_id", id).Msg("order cancelled")
	return nil
}
