package service

import (
	"context"
	"fmt"
	"time"

	"furniture-store/internal/domain"
	"furniture-store/internal/repository"

	"github.com/google/uuid"
)

// StatusReceived is the fixed status token returned on successful intake.
const StatusReceived = "received"

// OrderService defines the order intake business logic. The payload is
// persisted verbatim once its shape validates: no stock decrement, no price
// verification against the live catalog, no duplicate detection.
type OrderService interface {
	PlaceOrder(ctx context.Context, order *domain.Order) (uuid.UUID, error)
}

type orderService struct {
	orders repository.OrderRepository
}

// NewOrderService creates a new instance of OrderService. The repository
// may be nil when no store is configured, in which case intake fails with
// ErrStoreUnavailable.
func NewOrderService(orders repository.OrderRepository) OrderService {
	return &orderService{orders: orders}
}

// PlaceOrder assigns the store identifier and persists the order.
func (s *orderService) PlaceOrder(ctx context.Context, order *domain.Order) (uuid.UUID, error) {
	if s.orders == nil {
		return uuid.Nil, ErrStoreUnavailable
	}

	order.ID = uuid.New()
	order.CreatedAt = time.Now().UTC()

	if err := s.orders.Create(ctx, order); err != nil {
		return uuid.Nil, fmt.Errorf("failed to place order: %w", err)
	}

	return order.ID, nil
}
