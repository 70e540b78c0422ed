package seed

import (
	"context"
	"testing"

	"furniture-store/internal/domain"
	"furniture-store/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type mockProductRepository struct {
	products []*domain.Product
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	m.products = append(m.products, product)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	return nil, repository.ErrProductNotFound
}

func (m *mockProductRepository) List(ctx context.Context, filter repository.ProductFilter, page, pageSize int) ([]*domain.Product, int, error) {
	return m.products, len(m.products), nil
}

func (m *mockProductRepository) FindRelated(ctx context.Context, category string, exclude uuid.UUID, limit int) ([]*domain.Product, error) {
	return nil, nil
}

func (m *mockProductRepository) FindByFlag(ctx context.Context, flag repository.ProductFlag, limit int) ([]*domain.Product, error) {
	return nil, nil
}

func (m *mockProductRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	return nil, nil
}

func (m *mockProductRepository) Count(ctx context.Context) (int, error) {
	return len(m.products), nil
}

type mockTestimonialRepository struct {
	testimonials []*domain.Testimonial
}

func (m *mockTestimonialRepository) Create(ctx context.Context, testimonial *domain.Testimonial) error {
	m.testimonials = append(m.testimonials, testimonial)
	return nil
}

func (m *mockTestimonialRepository) List(ctx context.Context, limit int) ([]*domain.Testimonial, error) {
	return m.testimonials, nil
}

func (m *mockTestimonialRepository) Count(ctx context.Context) (int, error) {
	return len(m.testimonials), nil
}

func TestRunSeedsEmptyCollections(t *testing.T) {
	products := &mockProductRepository{}
	testimonials := &mockTestimonialRepository{}

	if err := Run(context.Background(), products, testimonials, zap.NewNop()); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	if len(products.products) != 5 {
		t.Errorf("expected 5 fixture products, got %d", len(products.products))
	}
	if len(testimonials.testimonials) != 3 {
		t.Errorf("expected 3 fixture testimonials, got %d", len(testimonials.testimonials))
	}

	// Fixtures cover every featured category once.
	categories := map[string]bool{}
	for _, product := range products.products {
		if product.ID == uuid.Nil {
			t.Errorf("fixture %q missing identifier", product.Title)
		}
		if product.CreatedAt.IsZero() {
			t.Errorf("fixture %q missing creation timestamp", product.Title)
		}
		categories[product.Category] = true
	}
	for _, want := range []string{"Chair", "Sofa", "Bed", "Table", "Decor"} {
		if !categories[want] {
			t.Errorf("fixtures missing category %s", want)
		}
	}
}

func TestRunSkipsPopulatedCollections(t *testing.T) {
	products := &mockProductRepository{products: []*domain.Product{
		{ID: uuid.New(), Title: "Existing"},
	}}
	testimonials := &mockTestimonialRepository{testimonials: []*domain.Testimonial{
		{ID: uuid.New(), Name: "Existing"},
	}}

	if err := Run(context.Background(), products, testimonials, zap.NewNop()); err != nil {
		t.Fatalf("seeding failed: %v", err)
	}

	if len(products.products) != 1 {
		t.Errorf("populated products were reseeded: %d", len(products.products))
	}
	if len(testimonials.testimonials) != 1 {
		t.Errorf("populated testimonials were reseeded: %d", len(testimonials.testimonials))
	}
}

func TestSeedFixturesPreserveInsertionOrder(t *testing.T) {
	fixtures := fixtureProducts()

	for i := 1; i < len(fixtures); i++ {
		if !fixtures[i].CreatedAt.After(fixtures[i-1].CreatedAt) {
			t.Errorf("fixture %d does not sort after fixture %d", i, i-1)
		}
	}
}
