package storage

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/freshmart/grocery-api/internal/core/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id         BIGINT AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		price      DECIMAL(10,2) NOT NULL,
		category   VARCHAR(100) NOT NULL DEFAULT '',
		inventory  INT NOT NULL DEFAULT 0,
		INDEX idx_products_category (category)
	)`,
	`CREATE TABLE IF NOT EXISTS customers (
		id            BIGINT AUTO_INCREMENT PRIMARY KEY,
		name          VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NULL,
		UNIQUE KEY uq_customers_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id          BIGINT AUTO_INCREMENT PRIMARY KEY,
		customer_id BIGINT NOT NULL,
		total_price DECIMAL(10,2) NOT NULL,
		status      VARCHAR(50) NOT NULL DEFAULT 'pending',
		created_at  DATETIME NOT NULL,
		CONSTRAINT fk_orders_customer FOREIGN KEY (customer_id) REFERENCES customers (id)
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		id                BIGINT AUTO_INCREMENT PRIMARY KEY,
		order_id          BIGINT NOT NULL,
		product_id        BIGINT NOT NULL,
		quantity          INT NOT NULL,
		price_at_purchase DECIMAL(10,2) NOT NULL,
		INDEX idx_order_items_order (order_id),
		CONSTRAINT fk_order_items_order FOREIGN KEY (order_id) REFERENCES orders (id)
	)`,
}

// InitSchema creates the tables when they do not exist yet.
func (m *MySQLAdapter) InitSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Seed inserts the starter catalog and two credential-less customers the
// first time the store comes up empty.
func (m *MySQLAdapter) Seed(ctx context.Context) error {
	var count int
	if err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count == 0 {
		products := []domain.Product{
			{Name: "Honeycrisp Apple", Price: price("1.25"), Category: "Fruits", Inventory: 50},
			{Name: "Organic Banana", Price: price("0.35"), Category: "Fruits", Inventory: 120},
			{Name: "Whole Milk", Price: price("3.99"), Category: "Dairy", Inventory: 30},
			{Name: "Sourdough Bread", Price: price("5.50"), Category: "Bakery", Inventory: 15},
			{Name: "Eggs (Dozen)", Price: price("4.25"), Category: "Dairy", Inventory: 40},
			{Name: "Chicken Breast", Price: price("8.99"), Category: "Meat", Inventory: 25},
		}
		for i := range products {
			if err := m.CreateProduct(ctx, &products[i]); err != nil {
				return err
			}
		}
	}

	if err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return fmt.Errorf("count customers: %w", err)
	}
	if count == 0 {
		customers := []domain.Customer{
			{Name: "John Doe", Email: "john@example.com"},
			{Name: "Jane Smith", Email: "jane@example.com"},
		}
		for i := range customers {
			if err := m.CreateCustomer(ctx, &customers[i]); err != nil {
				return err
			}
		}
	}
	return nil
}
