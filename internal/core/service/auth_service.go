package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/freshmart/grocery-api/internal/core/domain"
	"github.com/freshmart/grocery-api/internal/port"
)

type AuthService struct {
	customers  port.CustomerRepository
	tokenMaker port.TokenMaker
	logger     zerolog.Logger
}

func NewAuthService(customers port.CustomerRepository, tokenMaker port.TokenMaker, logger zerolog.Logger) *AuthService {
	return &AuthService{
		customers:  customers,
		tokenMaker: tokenMaker,
		logger:     logger.With().Str("component", "auth_service").Logger(),
	}
}

// Register creates a customer with a bcrypt hash of the password. The
// plaintext is never stored.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.Customer, error) {
	if strings.TrimSpace(name) == "" || password == "" {
		return nil, fmt.Errorf("%w: name and password are required", domain.ErrInvalidInput)
	}
	if !validEmail(email) {
		return nil, fmt.Errorf("%w: malformed email", domain.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	customer := domain.Customer{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.customers.CreateCustomer(ctx, &customer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Int64("customer_id", customer.ID).Msg("customer registered")
	return &customer, nil
}

// Login verifies the password against the stored hash and issues a
// signed, time-limited token with the customer id as subject.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.Customer, error) {
	customer, err := s.customers.GetCustomerByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	// Seeded accounts have no hash and can never log in.
	if customer == nil || customer.PasswordHash == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokenMaker.CreateToken(customer.ID)
	if err != nil {
		return "", nil, fmt.Errorf("create token: %w", err)
	}

	s.logger.Info().Str("email", email).Msg("customer logged in")
	return token, customer, nil
}

// Authenticate resolves a bearer token to a live customer.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Customer, error) {
	customerID, err := s.tokenMaker.VerifyToken(token)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrInvalidCredentials
	}
	return customer, nil
}
