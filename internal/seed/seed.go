package seed

import (
	"context"
	"fmt"
	"time"

	"furniture-store/internal/domain"
	"furniture-store/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Run populates empty collections with the showcase fixtures. Collections
// that already hold data are left untouched, so restarts are safe.
func Run(
	ctx context.Context,
	products repository.ProductRepository,
	testimonials repository.TestimonialRepository,
	logger *zap.Logger,
) error {
	productCount, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count products: %w", err)
	}

	if productCount == 0 {
		fixtures := fixtureProducts()
		for _, product := range fixtures {
			if err := products.Create(ctx, product); err != nil {
				return fmt.Errorf("failed to seed product %q: %w", product.Title, err)
			}
		}
		logger.Info("Seeded products", zap.Int("count", len(fixtures)))
	}

	testimonialCount, err := testimonials.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count testimonials: %w", err)
	}

	if testimonialCount == 0 {
		fixtures := fixtureTestimonials()
		for _, testimonial := range fixtures {
			if err := testimonials.Create(ctx, testimonial); err != nil {
				return fmt.Errorf("failed to seed testimonial from %q: %w", testimonial.Name, err)
			}
		}
		logger.Info("Seeded testimonials", zap.Int("count", len(fixtures)))
	}

	return nil
}

// fixtureProducts returns the showcase catalog. Creation timestamps are
// staggered so the documented insertion order matches the fixture order.
func fixtureProducts() []*domain.Product {
	base := time.Now().UTC()

	products := []*domain.Product{
		{
			Title:       "Aero Lounge Chair",
			Description: "Premium leather lounge chair with oak base.",
			Price:       499.0,
			Category:    "Chair",
			Rating:      4.6,
			Materials:   []string{"Leather", "Oak"},
			Images: []string{
				"https://images.unsplash.com/photo-1549187774-b4e9b0445b41?q=80&w=1200",
			},
			IsNew:       false,
			IsTopSeller: true,
		},
		{
			Title:       "Cloud XL Sofa",
			Description: "Deep, ultra-comfy 3-seater fabric sofa.",
			Price:       1299.0,
			Category:    "Sofa",
			Rating:      4.8,
			Materials:   []string{"Fabric", "Pine"},
			Images: []string{
				"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?q=80&w=1200",
			},
			IsNew:       true,
			IsTopSeller: true,
		},
		{
			Title:       "Nordic Queen Bed",
			Description: "Minimal solid wood queen bed frame.",
			Price:       899.0,
			Category:    "Bed",
			Rating:      4.5,
			Materials:   []string{"Walnut"},
			Images: []string{
				"https://images.unsplash.com/photo-1505691723518-36a5ac3be353?q=80&w=1200",
			},
			IsNew:       true,
			IsTopSeller: false,
		},
		{
			Title:       "Arc Dining Table",
			Description: "Round marble dining table with steel base.",
			Price:       999.0,
			Category:    "Table",
			Rating:      4.7,
			Materials:   []string{"Marble", "Steel"},
			Images: []string{
				"https://images.unsplash.com/photo-1600491030793-4bd19ae2c909?q=80&w=1200",
			},
			IsNew:       false,
			IsTopSeller: true,
		},
		{
			Title:       "Halo Pendant Light",
			Description: "Matte brass ring pendant lighting.",
			Price:       199.0,
			Category:    "Decor",
			Rating:      4.3,
			Materials:   []string{"Brass"},
			Images: []string{
				"https://images.unsplash.com/photo-1505691938895-1758d7feb511?q=80&w=1200",
			},
			IsNew:       true,
			IsTopSeller: false,
		},
	}

	for i, product := range products {
		product.ID = uuid.New()
		product.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
	}

	return products
}

func fixtureTestimonials() []*domain.Testimonial {
	base := time.Now().UTC()

	testimonials := []*domain.Testimonial{
		{
			Name:    "Amelia R.",
			Message: "Beautiful designs and outstanding quality. My living room feels brand new!",
			Rating:  5,
		},
		{
			Name:    "Noah P.",
			Message: "Fast delivery and great customer service. The sofa is insanely comfy.",
			Rating:  5,
		},
		{
			Name:    "Sophia L.",
			Message: "Minimal yet luxurious. Exactly the vibe I wanted.",
			Rating:  4,
		},
	}

	for i, testimonial := range testimonials {
		testimonial.ID = uuid.New()
		testimonial.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
	}

	return testimonials
}
