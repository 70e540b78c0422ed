package domain

import (
	"time"

	"github.com/google/uuid"
)

// Customer is embedded in an order. There is no independent customer
// identity or deduplication in this system.
type Customer struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address" validate:"required"`
}

// OrderItem is a denormalized snapshot of a product at order time, not a
// live join against the catalog. ProductID is kept as an opaque string.
type OrderItem struct {
	ProductID string  `json:"product_id" validate:"required"`
	Title     string  `json:"title" validate:"required"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=1"`
	Image     string  `json:"image,omitempty"`
}

// Order is created once via order intake and never updated or deleted.
// The item list may be empty; only per-item constraints are validated.
// PaymentMethod is an open string (COD, Stripe and SSLCommerz are the
// documented values, but the set is not enforced).
type Order struct {
	ID            uuid.UUID   `json:"id"`
	Customer      Customer    `json:"customer"`
	Items         []OrderItem `json:"items" validate:"dive"`
	PaymentMethod string      `json:"payment_method" validate:"required"`
	CreatedAt     time.Time   `json:"created_at"`
}
