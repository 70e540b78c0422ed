package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"furniture-store/internal/domain"
	"furniture-store/internal/middleware"
	"furniture-store/internal/repository"
	"furniture-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoriesResponse wraps the ordered category listing.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

// ProductListResponse wraps an unpaginated items list (feeds).
type ProductListResponse struct {
	Items []*domain.Product `json:"items"`
}

// ProductDetailResponse carries a product plus its related items.
type ProductDetailResponse struct {
	Item    *domain.Product   `json:"item"`
	Related []*domain.Product `json:"related"`
}

// TestimonialListResponse wraps the testimonial feed.
type TestimonialListResponse struct {
	Items []*domain.Testimonial `json:"items"`
}

// CatalogHandler handles HTTP requests for catalog reads
type CatalogHandler struct {
	catalog service.CatalogService
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// RegisterRoutes registers all catalog routes on the API subrouter
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.ListCategories)
	r.Get("/testimonials", h.ListTestimonials)
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/top-selling", h.TopSelling)
		r.Get("/new-arrivals", h.NewArrivals)
		r.Get("/{id}", h.GetProduct)
	})
}

// ListProducts handles the filtered, paginated catalog listing
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter, page, pageSize, err := parseListQuery(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.catalog.ListProducts(r.Context(), filter, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, result)
}

// GetProduct handles the product detail plus related lookup
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, related, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProductID):
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid id")
		case errors.Is(err, repository.ErrProductNotFound), errors.Is(err, service.ErrStoreUnavailable):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		default:
			h.logger.Error("Failed to get product", zap.String("id", id), zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductDetailResponse{Item: product, Related: related})
}

// ListCategories handles the ordered category listing
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalog.Categories(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}

// TopSelling handles the top-selling feed
func (h *CatalogHandler) TopSelling(w http.ResponseWriter, r *http.Request) {
	h.feed(w, r, h.catalog.TopSelling)
}

// NewArrivals handles the new-arrivals feed
func (h *CatalogHandler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	h.feed(w, r, h.catalog.NewArrivals)
}

func (h *CatalogHandler) feed(w http.ResponseWriter, r *http.Request, load func(context.Context) ([]*domain.Product, error)) {
	items, err := load(r.Context())
	if err != nil {
		h.logger.Error("Failed to load product feed", zap.String("path", r.URL.Path), zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{Items: items})
}

// ListTestimonials handles the testimonial feed
func (h *CatalogHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.Testimonials(r.Context())
	if err != nil {
		h.logger.Error("Failed to list testimonials", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list testimonials")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, TestimonialListResponse{Items: items})
}

// parseListQuery translates catalog query parameters into a filter plus
// pagination values. Unset numeric parameters stay nil; malformed numbers
// are a client error.
func parseListQuery(r *http.Request) (repository.ProductFilter, int, int, error) {
	query := r.URL.Query()

	filter := repository.ProductFilter{
		Search:    query.Get("search"),
		Category:  query.Get("category"),
		Materials: parseMaterials(query.Get("materials")),
	}

	var err error
	if filter.PriceMin, err = parseFloatParam(query.Get("price_min"), "price_min"); err != nil {
		return repository.ProductFilter{}, 0, 0, err
	}
	if filter.PriceMax, err = parseFloatParam(query.Get("price_max"), "price_max"); err != nil {
		return repository.ProductFilter{}, 0, 0, err
	}
	if filter.RatingMin, err = parseFloatParam(query.Get("rating_min"), "rating_min"); err != nil {
		return repository.ProductFilter{}, 0, 0, err
	}

	page, err := parseIntParam(query.Get("page"), "page", service.DefaultPage)
	if err != nil {
		return repository.ProductFilter{}, 0, 0, err
	}

	pageSize, err := parseIntParam(query.Get("page_size"), "page_size", service.DefaultPageSize)
	if err != nil {
		return repository.ProductFilter{}, 0, 0, err
	}

	return filter, page, pageSize, nil
}

// parseMaterials splits a comma-separated list, trimming whitespace and
// dropping empty tokens. An empty result means the filter is skipped.
func parseMaterials(raw string) []string {
	if raw == "" {
		return nil
	}

	materials := []string{}
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			materials = append(materials, token)
		}
	}

	if len(materials) == 0 {
		return nil
	}
	return materials
}

func parseFloatParam(raw, name string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameter", name)
	}
	return &value, nil
}

func parseIntParam(raw, name string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return value, nil
}
