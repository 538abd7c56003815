package port

import (
	"context"

	"github.com/freshmart/grocery-api/internal/core/domain"
)

type ProductRepository interface {
	// ListProducts returns all products ordered by id.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// GetProduct returns nil, nil when the product does not exist.
	GetProduct(ctx context.Context, id int64) (*domain.Product, error)

	// CreateProduct persists a new product and fills in its id.
	CreateProduct(ctx context.Context, p *domain.Product) error

	// UpdateProduct applies the non-nil patch fields and returns the
	// updated row, or nil, nil when the product does not exist.
	UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error)

	// DeleteProduct reports whether a row was deleted.
	DeleteProduct(ctx context.Context, id int64) (bool, error)

	// SetInventory overwrites a product's inventory count, reporting
	// whether the product exists.
	SetInventory(ctx context.Context, id int64, quantity int) (bool, error)
}

type CustomerRepository interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)

	// GetCustomer returns nil, nil when the customer does not exist.
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)

	// GetCustomerByEmail returns nil, nil when no customer has the email.
	GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error)

	// CreateCustomer persists a new customer and fills in its id. It
	// returns domain.ErrEmailTaken when the email is already registered.
	CreateCustomer(ctx context.Context, c *domain.Customer) error

	// UpdateCustomer applies the non-nil patch fields and returns the
	// updated row, or nil, nil when the customer does not exist. It
	// returns domain.ErrEmailTaken when the new email is already
	// registered to another customer.
	UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error)

	// DeleteCustomer reports whether a row was deleted. A customer with
	// orders on record yields domain.ErrInvalidInput.
	DeleteCustomer(ctx context.Context, id int64) (bool, error)
}

type OrderRepository interface {
	// PlaceOrder creates an order with its items and decrements product
	// inventory inside one transaction. Each line is processed in input
	// order: a missing product yields domain.ErrNotFound and a line
	// exceeding stock yields domain.ErrInsufficientStock (both wrapped
	// with the product), rolling back every prior decrement.
	PlaceOrder(ctx context.Context, customerID int64, lines []domain.OrderLine) (*domain.Order, error)

	// GetOrder returns the order with its items, or nil, nil when it
	// does not exist.
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)

	// UpdateOrderStatus overwrites the status, returning the updated
	// order or nil, nil when it does not exist. Inventory is untouched.
	UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error)

	// CancelOrder restores each item's quantity to product inventory
	// (skipping products that no longer exist) and deletes the order
	// with its items, all inside one transaction. It reports whether
	// the order existed.
	CancelOrder(ctx context.Context, id int64) (bool, error)
}

// StoreStats are the row counts reported by the health endpoint.
type StoreStats struct {
	Products  int
	Orders    int
	Customers int
}

type StatsRepository interface {
	Stats(ctx context.Context) (StoreStats, error)
}
