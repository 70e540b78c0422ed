package repository

import (
	"context"
	"testing"
	"time"

	"furniture-store/internal/domain"

	"github.com/google/uuid"
)

func resetTestimonials(t *testing.T) {
	t.Helper()
	if _, err := testDB.Exec("TRUNCATE testimonials"); err != nil {
		t.Fatalf("failed to reset testimonials: %v", err)
	}
}

func TestTestimonialListCapsAtLimitInInsertionOrder(t *testing.T) {
	resetTestimonials(t)
	repo := NewTestimonialRepository(testDB)

	base := time.Now().UTC()
	for i := 0; i < 10; i++ {
		testimonial := &domain.Testimonial{
			ID:        uuid.New(),
			Name:      "Customer",
			Message:   "Great furniture",
			Rating:    5,
			CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
		}
		if i == 0 {
			testimonial.Name = "Amelia R."
		}
		if err := repo.Create(context.Background(), testimonial); err != nil {
			t.Fatalf("failed to create testimonial: %v", err)
		}
	}

	items, err := repo.List(context.Background(), 8)
	if err != nil {
		t.Fatalf("listing failed: %v", err)
	}

	if len(items) != 8 {
		t.Fatalf("expected 8 testimonials, got %d", len(items))
	}
	if items[0].Name != "Amelia R." {
		t.Errorf("insertion order lost: first item %q", items[0].Name)
	}

	count, err := repo.Count(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 10 {
		t.Errorf("expected count 10, got %d", count)
	}
}
