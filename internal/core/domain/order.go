package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID         int64
	CustomerID int64
	Items      []OrderItem
	TotalPrice decimal.Decimal
	Status     OrderStatus
	CreatedAt  time.Time
}

type OrderItem struct {
	ProductID int64
	Quantity  int
	// PriceAtPurchase snapshots the product price at order time and does
	// not track later catalog changes.
	PriceAtPurchase decimal.Decimal
}

// OrderLine is one requested (product, quantity) pair of a new order.
type OrderLine struct {
	ProductID int64
	Quantity  int
}
