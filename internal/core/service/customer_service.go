package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/freshmart/grocery-api/internal/core/domain"
	"github.com/freshmart/grocery-api/internal/port"
)

type CustomerService struct {
	customers port.CustomerRepository
	logger    zerolog.Logger
}

func NewCustomerService(customers port.CustomerRepository, logger zerolog.Logger) *CustomerService {
	return &CustomerService{
		customers: customers,
		logger:    logger.With().Str("component", "customer_service").Logger(),
	}
}

func (s *CustomerService) List(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.ListCustomers(ctx)
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.customers.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}
	return c, nil
}

// Update applies only the supplied fields. Only the owning customer may
// update its own profile.
func (s *CustomerService) Update(ctx context.Context, actorID, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	if actorID != id {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrForbidden)
	}
	if patch.Email != nil && !validEmail(*patch.Email) {
		return nil, fmt.Errorf("%w: malformed email", domain.ErrInvalidInput)
	}

	c, err := s.customers.UpdateCustomer(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}
	s.logger.Info().Int64("customer_id", id).Msg("customer updated")
	return c, nil
}

func (s *CustomerService) Delete(ctx context.Context, actorID, id int64) error {
	if actorID != id {
		return fmt.Errorf("customer %d: %w", id, domain.ErrForbidden)
	}
	deleted, err := s.customers.DeleteCustomer(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return fmt.Errorf("customer %d: %w", id, domain.ErrNotFound)
	}
	s.logger.Info().Int64("customer_id", id).Msg("customer deleted")
	return nil
}

func validEmail(email string) bool {
	at := strings.IndexByte(email, '@')
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}
