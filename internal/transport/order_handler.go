package transport

import (
	"errors"
	"net/http"

	"furniture-store/internal/domain"
	"furniture-store/internal/middleware"
	"furniture-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderRequest represents the order intake payload. Note that the item
// list carries no minimum length: an order with zero items is accepted.
type OrderRequest struct {
	Customer      domain.Customer    `json:"customer"`
	Items         []domain.OrderItem `json:"items" validate:"dive"`
	PaymentMethod string             `json:"payment_method" validate:"required"`
}

// OrderResponse represents a successful intake
type OrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// OrderHandler handles HTTP requests for order intake
type OrderHandler struct {
	orders service.OrderService
	logger *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// RegisterRoutes registers the order routes on the API subrouter. The
// rate limiter is optional and only applied when the Redis backend is
// configured.
func (h *OrderHandler) RegisterRoutes(r chi.Router, rateLimiter func(http.Handler) http.Handler) {
	r.Route("/orders", func(r chi.Router) {
		if rateLimiter != nil {
			r.Use(rateLimiter)
		}
		r.Post("/", h.CreateOrder)
	})
}

// CreateOrder validates the payload shape and persists the order verbatim
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order := &domain.Order{
		Customer:      req.Customer,
		Items:         req.Items,
		PaymentMethod: req.PaymentMethod,
	}

	id, err := h.orders.PlaceOrder(r.Context(), order)
	if err != nil {
		if errors.Is(err, service.ErrStoreUnavailable) {
			middleware.RespondWithError(w, http.StatusInternalServerError, "database not available")
			return
		}

		h.logger.Error("Failed to place order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	h.logger.Info("Order received",
		zap.String("order_id", id.String()),
		zap.Int("items", len(req.Items)),
		zap.String("payment_method", req.PaymentMethod),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, OrderResponse{
		ID:     id.String(),
		Status: service.StatusReceived,
	})
}
