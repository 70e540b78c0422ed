package repository

import (
	"context"
	"database/sql"
	"fmt"

	"furniture-store/internal/domain"
)

// TestimonialRepository defines the interface for testimonial data access
type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *domain.Testimonial) error
	List(ctx context.Context, limit int) ([]*domain.Testimonial, error)
	Count(ctx context.Context) (int, error)
}

type testimonialRepository struct {
	db *sql.DB
}

// NewTestimonialRepository creates a new instance of TestimonialRepository
func NewTestimonialRepository(db *sql.DB) TestimonialRepository {
	return &testimonialRepository{db: db}
}

// Create inserts a new testimonial using parameterized queries
func (r *testimonialRepository) Create(ctx context.Context, testimonial *domain.Testimonial) error {
	query := `
		INSERT INTO testimonials (id, name, message, rating, avatar, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		testimonial.ID,
		testimonial.Name,
		testimonial.Message,
		testimonial.Rating,
		testimonial.Avatar,
		testimonial.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}

	return nil
}

// List retrieves up to limit testimonials in insertion order.
func (r *testimonialRepository) List(ctx context.Context, limit int) ([]*domain.Testimonial, error) {
	query := `
		SELECT id, name, message, rating, avatar, created_at
		FROM testimonials
		ORDER BY created_at, id
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer rows.Close()

	testimonials := []*domain.Testimonial{}
	for rows.Next() {
		testimonial := &domain.Testimonial{}
		err := rows.Scan(
			&testimonial.ID,
			&testimonial.Name,
			&testimonial.Message,
			&testimonial.Rating,
			&testimonial.Avatar,
			&testimonial.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		testimonials = append(testimonials, testimonial)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating testimonials: %w", err)
	}

	return testimonials, nil
}

// Count returns the total number of testimonials.
func (r *testimonialRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM testimonials").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count testimonials: %w", err)
	}
	return count, nil
}
