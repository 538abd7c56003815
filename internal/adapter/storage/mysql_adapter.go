package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"

	"github.com/freshmart/grocery-api/internal/core/domain"
	"github.com/freshmart/grocery-api/internal/port"
)

const (
	mysqlErrDupEntry      = 1062
	mysqlErrRowReferenced = 1451
)

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

// --- products ---

func (m *MySQLAdapter) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, price, category, inventory
		FROM products ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Inventory); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (m *MySQLAdapter) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, price, category, inventory
		FROM products WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Inventory)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (m *MySQLAdapter) CreateProduct(ctx context.Context, p *domain.Product) error {
	result, err := m.db.ExecContext(ctx, `
		INSERT INTO products (name, price, category, inventory)
		VALUES (?, ?, ?, ?)`,
		p.Name, p.Price, p.Category, p.Inventory,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("product id: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) UpdateProduct(ctx context.Context, id int64, patch domain.ProductPatch) (*domain.Product, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Price != nil {
		sets = append(sets, "price = ?")
		args = append(args, *patch.Price)
	}
	if patch.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *patch.Category)
	}
	if patch.Inventory != nil {
		sets = append(sets, "inventory = ?")
		args = append(args, *patch.Inventory)
	}

	if len(sets) > 0 {
		args = append(args, id)
		_, err := m.db.ExecContext(ctx,
			"UPDATE products SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
	}
	return m.GetProduct(ctx, id)
}

func (m *MySQLAdapter) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	result, err := m.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

func (m *MySQLAdapter) SetInventory(ctx context.Context, id int64, quantity int) (bool, error) {
	result, err := m.db.ExecContext(ctx, `
		UPDATE products SET inventory = ? WHERE id = ?`, quantity, id)
	if err != nil {
		return false, fmt.Errorf("update inventory: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows > 0 {
		return true, nil
	}
	// RowsAffected is zero both for a missing row and for a no-op write.
	var exists int
	err = m.db.QueryRowContext(ctx, `SELECT 1 FROM products WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query product: %w", err)
	}
	return true, nil
}

// --- customers ---

func (m *MySQLAdapter) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(password_hash, '')
		FROM customers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query customers: %w", err)
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (m *MySQLAdapter) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	return m.getCustomer(ctx, `WHERE id = ?`, id)
}

func (m *MySQLAdapter) GetCustomerByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return m.getCustomer(ctx, `WHERE email = ?`, email)
}

func (m *MySQLAdapter) getCustomer(ctx context.Context, where string, arg any) (*domain.Customer, error) {
	var c domain.Customer
	err := m.db.QueryRowContext(ctx, `
		SELECT id, name, email, COALESCE(password_hash, '')
		FROM customers `+where, arg,
	).Scan(&c.ID, &c.Name, &c.Email, &c.PasswordHash)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}
	return &c, nil
}

func (m *MySQLAdapter) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	var hash any
	if c.PasswordHash != "" {
		hash = c.PasswordHash
	}
	result, err := m.db.ExecContext(ctx, `
		INSERT INTO customers (name, email, password_hash)
		VALUES (?, ?, ?)`,
		c.Name, c.Email, hash,
	)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrDupEntry {
			return fmt.Errorf("%s: %w", c.Email, domain.ErrEmailTaken)
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	c.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("customer id: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) UpdateCustomer(ctx context.Context, id int64, patch domain.CustomerPatch) (*domain.Customer, error) {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *patch.Email)
	}

	if len(sets) > 0 {
		args = append(args, id)
		_, err := m.db.ExecContext(ctx,
			"UPDATE customers SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if err != nil {
			var me *mysql.MySQLError
			if errors.As(err, &me) && me.Number == mysqlErrDupEntry {
				return nil, fmt.Errorf("%s: %w", *patch.Email, domain.ErrEmailTaken)
			}
			return nil, fmt.Errorf("update customer: %w", err)
		}
	}
	return m.GetCustomer(ctx, id)
}

// DeleteCustomer refuses to remove a customer who still has orders on
// record; the orders FK would otherwise reject the delete at the
// database level.
func (m *MySQLAdapter) DeleteCustomer(ctx context.Context, id int64) (bool, error) {
	result, err := m.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlErrRowReferenced {
			return false, fmt.Errorf("%w: customer %d has orders on record", domain.ErrInvalidInput, id)
		}
		return false, fmt.Errorf("delete customer: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// --- orders ---

// PlaceOrder stages every mutation in a single transaction: a failure on
// any line rolls back all prior inventory decrements. Stock is checked
// and decremented in one conditional UPDATE so concurrent orders cannot
// oversubscribe a product between check and write.
func (m *MySQLAdapter) PlaceOrder(ctx context.Context, customerID int64, lines []domain.OrderLine) (*domain.Order, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM customers WHERE id = ?`, customerID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("customer %d: %w", customerID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query customer: %w", err)
	}

	total := decimal.Zero
	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		var name string
		var price decimal.Decimal
		err := tx.QueryRowContext(ctx, `
			SELECT name, price FROM products WHERE id = ?`, line.ProductID,
		).Scan(&name, &price)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("product %d: %w", line.ProductID, domain.ErrNotFound)
		}
		if err != nil {
			return nil, fmt.Errorf("query product: %w", err)
		}

		result, err := tx.ExecContext(ctx, `
			UPDATE products SET inventory = inventory - ?
			WHERE id = ? AND inventory >= ?`,
			line.Quantity, line.ProductID, line.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("decrement inventory: %w", err)
		}
		if rows, _ := result.RowsAffected(); rows == 0 {
			return nil, fmt.Errorf("%w for %s", domain.ErrInsufficientStock, name)
		}

		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		items = append(items, domain.OrderItem{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: price,
		})
	}

	order := domain.Order{
		CustomerID: customerID,
		Items:      items,
		TotalPrice: total.Round(2),
		Status:     domain.OrderStatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO orders (customer_id, total_price, status, created_at)
		VALUES (?, ?, ?, ?)`,
		order.CustomerID, order.TotalPrice, order.Status, order.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	order.ID, err = result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("order id: %w", err)
	}

	for _, item := range order.Items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
			VALUES (?, ?, ?, ?)`,
			order.ID, item.ProductID, item.Quantity, item.PriceAtPurchase,
		)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &order, nil
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	err := m.db.QueryRowContext(ctx, `
		SELECT id, customer_id, total_price, status, created_at
		FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.CustomerID, &o.TotalPrice, &o.Status, &o.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT product_id, quantity, price_at_purchase
		FROM order_items WHERE order_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.PriceAtPurchase); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, item)
	}
	return &o, rows.Err()
}

func (m *MySQLAdapter) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	_, err := m.db.ExecContext(ctx, `
		UPDATE orders SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return m.GetOrder(ctx, id)
}

// CancelOrder restores stock for every item and removes the order and
// its items in one transaction. Items whose product has since been
// deleted are skipped.
func (m *MySQLAdapter) CancelOrder(ctx context.Context, id int64) (bool, error) {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT product_id, quantity FROM order_items WHERE order_id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("query order items: %w", err)
	}

	type restock struct {
		productID int64
		quantity  int
	}
	var restocks []restock
	for rows.Next() {
		var r restock
		if err := rows.Scan(&r.productID, &r.quantity); err != nil {
			rows.Close()
			return false, fmt.Errorf("scan order item: %w", err)
		}
		restocks = append(restocks, r)
	}
	if err := rows.Close(); err != nil {
		return false, fmt.Errorf("read order items: %w", err)
	}

	for _, r := range restocks {
		_, err := tx.ExecContext(ctx, `
			UPDATE products SET inventory = inventory + ?
			WHERE id = ?`, r.quantity, r.productID)
		if err != nil {
			return false, fmt.Errorf("restore inventory: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = ?`, id); err != nil {
		return false, fmt.Errorf("delete order items: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	deleted, _ := result.RowsAffected()
	if deleted == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// --- health ---

func (m *MySQLAdapter) Stats(ctx context.Context) (port.StoreStats, error) {
	var stats port.StoreStats
	err := m.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM customers)`,
	).Scan(&stats.Products, &stats.Orders, &stats.Customers)
	if err != nil {
		return port.StoreStats{}, fmt.Errorf("query stats: %w", err)
	}
	return stats, nil
}
