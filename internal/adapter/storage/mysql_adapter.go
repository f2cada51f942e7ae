package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rl1809/quantum-bookstore/internal/core/domain"
)

// OrdersSchema is the DDL the adapter expects.
const OrdersSchema = `
CREATE TABLE IF NOT EXISTS orders (
	id          CHAR(36)       NOT NULL PRIMARY KEY,
	request_id  VARCHAR(128)   NOT NULL DEFAULT '',
	isbn        VARCHAR(32)    NOT NULL,
	title       VARCHAR(255)   NOT NULL,
	kind        VARCHAR(16)    NOT NULL,
	quantity    INT            NOT NULL,
	unit_price  DECIMAL(12, 2) NOT NULL,
	total       DECIMAL(14, 2) NOT NULL,
	email       VARCHAR(255)   NOT NULL DEFAULT '',
	address     VARCHAR(512)   NOT NULL DEFAULT '',
	status      VARCHAR(16)    NOT NULL,
	created_at  DATETIME(6)    NOT NULL,
	INDEX idx_orders_isbn (isbn, created_at)
)`

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) Migrate(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, OrdersSchema); err != nil {
		return fmt.Errorf("create orders table: %w", err)
	}
	return nil
}

func (m *MySQLAdapter) SaveOrder(ctx context.Context, order domain.Order) error {
	_, err := m.db.ExecContext(ctx, `
		INSERT INTO orders (id, request_id, isbn, title, kind, quantity, unit_price, total, email, address, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.RequestID, order.ISBN, order.Title, order.Kind, order.Quantity,
		order.UnitPrice, order.Total, order.Email, order.Address, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	return nil
}

func (m *MySQLAdapter) ListOrders(ctx context.Context, isbn string) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, request_id, isbn, title, kind, quantity, unit_price, total, email, address, status, created_at
		FROM orders WHERE isbn = ? ORDER BY created_at, id`, isbn,
	)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.RequestID, &o.ISBN, &o.Title, &o.Kind, &o.Quantity,
			&o.UnitPrice, &o.Total, &o.Email, &o.Address, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}
