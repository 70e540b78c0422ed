package service

import (
	"context"
	"errors"
	"fmt"

	"furniture-store/internal/domain"
	"furniture-store/internal/repository"

	"github.com/google/uuid"
)

const (
	// DefaultPage and DefaultPageSize apply when the caller supplies no
	// pagination parameters. Page size has no upper bound.
	DefaultPage     = 1
	DefaultPageSize = 12

	// FeedLimit caps the curated feeds (top-selling, new-arrivals,
	// testimonials).
	FeedLimit = 8

	// RelatedLimit caps the related-products lookup on the detail page.
	RelatedLimit = 4
)

var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrInvalidProductID = errors.New("invalid product id")
)

// FeaturedCategories are forced to the front of the category listing in
// this order, whether or not products exist in them.
var FeaturedCategories = []string{"Chair", "Sofa", "Bed", "Table", "Decor"}

// ProductPage is the envelope returned by catalog listing.
type ProductPage struct {
	Items    []*domain.Product `json:"items"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// CatalogService defines the read-side business logic for the storefront.
// Every read degrades to an empty result when no store is configured; only
// the detail lookup reports errors to the caller.
type CatalogService interface {
	ListProducts(ctx context.Context, filter repository.ProductFilter, page, pageSize int) (*ProductPage, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, []*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	TopSelling(ctx context.Context) ([]*domain.Product, error)
	NewArrivals(ctx context.Context) ([]*domain.Product, error)
	Testimonials(ctx context.Context) ([]*domain.Testimonial, error)
}

type catalogService struct {
	products     repository.ProductRepository
	testimonials repository.TestimonialRepository
}

// NewCatalogService creates a new instance of CatalogService. Either
// repository may be nil when no store is configured; the service then
// serves degraded-empty responses.
func NewCatalogService(
	products repository.ProductRepository,
	testimonials repository.TestimonialRepository,
) CatalogService {
	return &catalogService{
		products:     products,
		testimonials: testimonials,
	}
}

// ListProducts returns one page of matching products plus the total match
// count. Without a store it returns an empty envelope rather than failing,
// so the listing path never surfaces a server error.
func (s *catalogService) ListProducts(ctx context.Context, filter repository.ProductFilter, page, pageSize int) (*ProductPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	if s.products == nil {
		return &ProductPage{Items: []*domain.Product{}, Total: 0, Page: page, PageSize: pageSize}, nil
	}

	items, total, err := s.products.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ProductPage{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

// GetProduct fetches one product and, on success, up to RelatedLimit
// products from the same category excluding the requested one. The two
// queries are independent; a related-lookup failure is logged upstream as a
// failed request rather than reconciled.
func (s *catalogService) GetProduct(ctx context.Context, id string) (*domain.Product, []*domain.Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil, ErrInvalidProductID
	}

	if s.products == nil {
		return nil, nil, ErrStoreUnavailable
	}

	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		return nil, nil, err
	}

	related, err := s.products.FindRelated(ctx, product.Category, product.ID, RelatedLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find related products: %w", err)
	}

	return product, related, nil
}

// Categories returns the distinct categories with the featured five forced
// to the front in fixed order, followed by any other distinct values in the
// store's order.
func (s *catalogService) Categories(ctx context.Context) ([]string, error) {
	if s.products == nil {
		return []string{}, nil
	}

	distinct, err := s.products.DistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	return orderCategories(distinct), nil
}

// TopSelling returns up to FeedLimit products flagged as top sellers.
func (s *catalogService) TopSelling(ctx context.Context) ([]*domain.Product, error) {
	return s.feed(ctx, repository.FlagTopSeller)
}

// NewArrivals returns up to FeedLimit products flagged as new.
func (s *catalogService) NewArrivals(ctx context.Context) ([]*domain.Product, error) {
	return s.feed(ctx, repository.FlagNewArrival)
}

func (s *catalogService) feed(ctx context.Context, flag repository.ProductFlag) ([]*domain.Product, error) {
	if s.products == nil {
		return []*domain.Product{}, nil
	}

	items, err := s.products.FindByFlag(ctx, flag, FeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s feed: %w", flag, err)
	}

	return items, nil
}

// Testimonials returns up to FeedLimit testimonials.
func (s *catalogService) Testimonials(ctx context.Context) ([]*domain.Testimonial, error) {
	if s.testimonials == nil {
		return []*domain.Testimonial{}, nil
	}

	items, err := s.testimonials.List(ctx, FeedLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}

	return items, nil
}

func orderCategories(distinct []string) []string {
	featured := make(map[string]bool, len(FeaturedCategories))
	ordered := make([]string, 0, len(FeaturedCategories)+len(distinct))

	for _, category := range FeaturedCategories {
		featured[category] = true
		ordered = append(ordered, category)
	}

	for _, category := range distinct {
		if !featured[category] {
			ordered = append(ordered, category)
		}
	}

	return ordered
}
