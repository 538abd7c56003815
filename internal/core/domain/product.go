package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	Category  string
	Inventory int
}

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name      *string
	Price     *decimal.Decimal
	Category  *string
	Inventory *int
}

// StockLevel is the inventory view of a product.
type StockLevel struct {
	ProductID int64
	Inventory int
}
