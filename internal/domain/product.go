package domain

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog entry. Products are immutable once created;
// the storefront only reads them after seeding.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price" validate:"gte=0"`
	Category    string    `json:"category" validate:"required"`
	Rating      float64   `json:"rating" validate:"gte=0,lte=5"`
	Materials   []string  `json:"materials"`
	Images      []string  `json:"images"`
	IsNew       bool      `json:"is_new"`
	IsTopSeller bool      `json:"is_top_seller"`
	CreatedAt   time.Time `json:"created_at"`
}

// Testimonial represents a customer review shown on the storefront.
// Read-only from the API's perspective.
type Testimonial struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Message   string    `json:"message" validate:"required"`
	Rating    int       `json:"rating" validate:"gte=1,lte=5"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
