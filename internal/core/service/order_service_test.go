package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshmart/grocery-api/internal/core/domain"
)

// fakeOrderRepo emulates the storage contract in memory: placement and
// cancellation are all-or-nothing against the product table.
type fakeOrderRepo struct {
	mu       sync.Mutex
	products map[int64]*domain.Product
	orders   map[int64]*domain.Order
	nextID   int64
}

func newFakeOrderRepo(products ...domain.Product) *fakeOrderRepo {
	repo := &fakeOrderRepo{
		products: make(map[int64]*domain.Product),
		orders:   make(map[int64]*domain.Order),
		nextID:   1,
	}
	for i := range products {
		p := products[i]
		repo.products[p.ID] = &p
	}
	return repo
}

func (f *fakeOrderRepo) PlaceOrder(ctx context.Context, customerID int64, lines []domain.OrderLine) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// Validate every line before mutating anything.
	for _, line := range lines {
		p, ok := f.products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, domain.ErrNotFound)
		}
		if p.Inventory < line.Quantity {
			return nil, fmt.Errorf("%w for %s", domain.ErrInsufficientStock, p.Name)
		}
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		p := f.products[line.ProductID]
		p.Inventory -= line.Quantity
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, domain.OrderItem{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: p.Price,
		})
	}

	order := &domain.Order{
		ID:         f.nextID,
		CustomerID: customerID,
		Items:      items,
		TotalPrice: total.Round(2),
		Status:     domain.OrderStatusPending,
		CreatedAt:  time.Now().UTC(),
	}
	f.nextID++
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeOrderRepo) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orders[id], nil
}

func (f *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	order.Status = status
	return order, nil
}

func (f *fakeOrderRepo) CancelOrder(ctx context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[id]
	if !ok {
		return false, nil
	}
	for _, item := range order.Items {
		if p, exists := f.products[item.ProductID]; exists {
			p.Inventory += item.Quantity
		}
	}
	delete(f.orders, id)
	return true, nil
}

func (f *fakeOrderRepo) inventory(productID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.products[productID].Inventory
}

func apple() domain.Product {
	return domain.Product{ID: 1, Name: "Honeycrisp Apple", Price: decimal.RequireFromString("1.25"), Category: "Fruits", Inventory: 50}
}

func milk() domain.Product {
	return domain.Product{ID: 2, Name: "Whole Milk", Price: decimal.RequireFromString("3.99"), Category: "Dairy", Inventory: 30}
}

func TestPlace_ComputesTotalAndDecrementsStock(t *testing.T) {
	repo := newFakeOrderRepo(apple(), milk())
	svc := NewOrderService(repo, zerolog.Nop())

	order, err := svc.Place(context.Background(), 1, []domain.OrderLine{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 2},
	})
	require.NoError(t, err)

	// 3*1.25 + 2*3.99 = 11.73
	assert.Equal(t, "11.73", order.TotalPrice.String())
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "1.25", order.Items[0].PriceAtPurchase.String())
	assert.Equal(t, 47, repo.inventory(1))
	assert.Equal(t, 28, repo.inventory(2))
}

func TestPlace_InsufficientStockLeavesInventoryUntouched(t *testing.T) {
	a := apple()
	a.Inventory = 2
	repo := newFakeOrderRepo(a)
	svc := NewOrderService(repo, zerolog.Nop())

	_, err := svc.Place(context.Background(), 1, []domain.OrderLine{{ProductID: 1, Quantity: 5}})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Honeycrisp Apple")
	assert.Equal(t, 2, repo.inventory(1))
}

func TestPlace_UnknownProduct(t *testing.T) {
	repo := newFakeOrderRepo(apple())
	svc := NewOrderService(repo, zerolog.Nop())

	_, err := svc.Place(context.Background(), 1, []domain.OrderLine{{ProductID: 99, Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 50, repo.inventory(1))
}

func TestPlace_RejectsEmptyAndNonPositiveLines(t *testing.T) {
	repo := newFakeOrderRepo(apple())
	svc := NewOrderService(repo, zerolog.Nop())

	_, err := svc.Place(context.Background(), 1, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Place(context.Background(), 1, []domain.OrderLine{{ProductID: 1, Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Place(context.Background(), 1, []domain.OrderLine{{ProductID: 1, Quantity: -3}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 50, repo.inventory(1))
}

func TestCancel_RestoresExactQuantities(t *testing.T) {
	repo := newFakeOrderRepo(apple())
	svc := NewOrderService(repo, zerolog.Nop())

	order, err := svc.Place(context.Background(), 1, []domain.OrderLine{{ProductID: 1, Quantity: 3}})
	require.NoError(t, err)
	require.Equal(t, 47, repo.inventory(1))

	require.NoError(t, svc.Cancel(context.Background(), order.ID))
	assert.Equal(t, 50, repo.inventory(1))

	_, err = svc.Get(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_UnknownOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := NewOrderService(repo, zerolog.Nop())

	err := svc.Cancel(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	repo := newFakeOrderRepo(apple())
	svc := NewOrderService(repo, zerolog.Nop())

	order, err := svc.Place(context.Background(), 1, []domain.OrderLine{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCompleted, updated.Status)
	// Status changes never move stock.
	assert.Equal(t, 49, repo.inventory(1))

	_, err = svc.UpdateStatus(context.Background(), order.ID, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.UpdateStatus(context.Background(), 42, domain.OrderStatusCompleted)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus_RejectsDirectCancellation(t *testing.T) {
	repo := newFakeOrderRepo(apple())
	svc := NewOrderService(repo, zerolog.Nop())

	order, err := svc.Place(context.Background(), 1, []domain.OrderLine{{ProductID: 1, Quantity: 1}})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), order.ID, domain.OrderStatusCancelled)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 49, repo.inventory(1))
}
