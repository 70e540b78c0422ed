package repository

import (
	"context"
	"database/sql"
	"fmt"

	"furniture-store/internal/domain"
)

// OrderRepository defines the interface for order data access. Orders are
// write-only in this system: created once, never updated or deleted.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create persists the order row and its item rows in a single transaction.
// The item list may be empty, in which case only the order row is written.
func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	orderQuery := `
		INSERT INTO orders (id, customer_name, customer_email, customer_phone, customer_address, payment_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.ExecContext(
		ctx,
		orderQuery,
		order.ID,
		order.Customer.Name,
		order.Customer.Email,
		order.Customer.Phone,
		order.Customer.Address,
		order.PaymentMethod,
		order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, position, product_id, title, price, quantity, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	for position, item := range order.Items {
		_, err = tx.ExecContext(
			ctx,
			itemQuery,
			order.ID,
			position,
			item.ProductID,
			item.Title,
			item.Price,
			item.Quantity,
			item.Image,
		)
		if err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	return nil
}
