package domain

import "errors"

var (
	// ErrNotFound reports a missing entity. Callers wrap it with the
	// entity name, e.g. fmt.Errorf("product 12: %w", ErrNotFound).
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken reports a duplicate unique email on registration.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInsufficientStock reports an order line exceeding available
	// inventory; wrappers name the product.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidCredentials covers bad email/password pairs and
	// missing, invalid or expired tokens.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden reports an authenticated actor acting on a resource
	// it does not own.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput reports a request that fails domain validation
	// before touching the store.
	ErrInvalidInput = errors.New("invalid input")
)
