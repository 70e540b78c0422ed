package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"furniture-store/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductFlag selects one of the curated-feed boolean columns. Keeping the
// set closed means the column name is never built from caller input.
type ProductFlag string

const (
	FlagTopSeller  ProductFlag = "is_top_seller"
	FlagNewArrival ProductFlag = "is_new"
)

// ProductFilter holds the optional catalog predicates. Zero values mean the
// predicate was not supplied; all supplied predicates combine with AND.
type ProductFilter struct {
	// Search matches case-insensitively as a substring of the title only,
	// not the description.
	Search string
	// Category is an exact match.
	Category string
	// Materials matches products whose materials intersect the requested
	// set (any-overlap, OR semantics). An empty slice skips the filter.
	Materials []string
	// PriceMin and PriceMax are inclusive bounds, each independently
	// optional.
	PriceMin *float64
	PriceMax *float64
	// RatingMin is an inclusive lower bound.
	RatingMin *float64
}

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter, page, pageSize int) ([]*domain.Product, int, error)
	FindRelated(ctx context.Context, category string, exclude uuid.UUID, limit int) ([]*domain.Product, error)
	FindByFlag(ctx context.Context, flag ProductFlag, limit int) ([]*domain.Product, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

const productColumns = "id, title, description, price, category, rating, materials, images, is_new, is_top_seller, created_at"

// Results are ordered by (created_at, id): insertion order, stable across
// pages. The API contract documents this as the catalog ordering.
const productOrder = "ORDER BY created_at, id"

// Create inserts a new product using parameterized queries. Materials and
// images are persisted as jsonb string arrays.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	materials, err := json.Marshal(stringsOrEmpty(product.Materials))
	if err != nil {
		return fmt.Errorf("failed to encode materials: %w", err)
	}
	images, err := json.Marshal(stringsOrEmpty(product.Images))
	if err != nil {
		return fmt.Errorf("failed to encode images: %w", err)
	}

	// The encoded arrays are bound as text and cast in SQL; the stdlib
	// driver would otherwise send []byte as bytea, which jsonb rejects.
	query := `
		INSERT INTO products (id, title, description, price, category, rating, materials, images, is_new, is_top_seller, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8::jsonb, $9, $10, $11)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		product.ID,
		product.Title,
		product.Description,
		product.Price,
		product.Category,
		product.Rating,
		string(materials),
		string(images),
		product.IsNew,
		product.IsTopSeller,
		product.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns)

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// List retrieves one page of products matching the filter, along with the
// total count of matches independent of pagination. The offset is
// (page - 1) * pageSize; pageSize is applied as given, with no upper bound.
func (r *productRepository) List(ctx context.Context, filter ProductFilter, page, pageSize int) ([]*domain.Product, int, error) {
	whereClause, args := buildProductWhere(filter)

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := (page - 1) * pageSize

	query := fmt.Sprintf(
		"SELECT %s FROM products %s %s LIMIT $%d OFFSET $%d",
		productColumns, whereClause, productOrder, len(args)+1, len(args)+2,
	)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products, err := scanProducts(rows)
	if err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// FindRelated retrieves up to limit products in the given category,
// excluding the product identified by exclude.
func (r *productRepository) FindRelated(ctx context.Context, category string, exclude uuid.UUID, limit int) ([]*domain.Product, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE category = $1 AND id <> $2 %s LIMIT $3",
		productColumns, productOrder,
	)

	rows, err := r.db.QueryContext(ctx, query, category, exclude, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find related products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// FindByFlag retrieves up to limit products with the given boolean flag set.
func (r *productRepository) FindByFlag(ctx context.Context, flag ProductFlag, limit int) ([]*domain.Product, error) {
	if flag != FlagTopSeller && flag != FlagNewArrival {
		return nil, fmt.Errorf("unknown product flag %q", flag)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM products WHERE %s %s LIMIT $1",
		productColumns, flag, productOrder,
	)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find products by flag: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

// DistinctCategories returns the distinct category values present in the
// product table, in the store's distinct-result order.
func (r *productRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT DISTINCT category FROM products")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// Count returns the total number of products.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// buildProductWhere translates a ProductFilter into a WHERE clause and its
// argument list. Every value is bound as a parameter; the materials test is
// an OR of jsonb containment checks so each material stays a plain string
// bind.
func buildProductWhere(filter ProductFilter) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	bind := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		pattern := "%" + escapeLikePattern(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("title ILIKE %s", bind(pattern)))
	}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = %s", bind(filter.Category)))
	}

	if len(filter.Materials) > 0 {
		checks := make([]string, 0, len(filter.Materials))
		for _, material := range filter.Materials {
			checks = append(checks, fmt.Sprintf("materials ? %s", bind(material)))
		}
		conditions = append(conditions, "("+strings.Join(checks, " OR ")+")")
	}

	if filter.PriceMin != nil {
		conditions = append(conditions, fmt.Sprintf("price >= %s", bind(*filter.PriceMin)))
	}

	if filter.PriceMax != nil {
		conditions = append(conditions, fmt.Sprintf("price <= %s", bind(*filter.PriceMax)))
	}

	if filter.RatingMin != nil {
		conditions = append(conditions, fmt.Sprintf("rating >= %s", bind(*filter.RatingMin)))
	}

	if len(conditions) == 0 {
		return "", nil
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// escapeLikePattern escapes ILIKE wildcards so user input matches literally.
func escapeLikePattern(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{}
	var materials, images []byte

	err := row.Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.Price,
		&product.Category,
		&product.Rating,
		&materials,
		&images,
		&product.IsNew,
		&product.IsTopSeller,
		&product.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(materials, &product.Materials); err != nil {
		return nil, fmt.Errorf("failed to decode materials: %w", err)
	}
	if err := json.Unmarshal(images, &product.Images); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}

	return product, nil
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// stringsOrEmpty keeps nil slices out of the store so columns always hold a
// jsonb array.
func stringsOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
