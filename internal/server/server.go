package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"furniture-store/internal/config"
	custommiddleware "furniture-store/internal/middleware"
	"furniture-store/internal/repository"
	"furniture-store/internal/service"
	"furniture-store/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
}

// NewServer assembles the router and wires all components. db may be nil
// when no store is configured: repositories stay nil and the services
// serve their degraded-mode contracts. redisClient may be nil, which
// disables order rate limiting.
func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB, redisClient *redis.Client) *Server {
	router := chi.NewRouter()

	isDevelopment := cfg.Server.Env != "production"

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, isDevelopment))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Initialize repositories; all stay nil without a store
	var (
		productRepo     repository.ProductRepository
		testimonialRepo repository.TestimonialRepository
		orderRepo       repository.OrderRepository
	)
	if db != nil {
		productRepo = repository.NewProductRepository(db)
		testimonialRepo = repository.NewTestimonialRepository(db)
		orderRepo = repository.NewOrderRepository(db)
	}

	// Initialize services
	catalogService := service.NewCatalogService(productRepo, testimonialRepo)
	orderService := service.NewOrderService(orderRepo)

	// Initialize handlers
	systemHandler := transport.NewSystemHandler(db, cfg, logger)
	catalogHandler := transport.NewCatalogHandler(catalogService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)

	var rateLimiter func(http.Handler) http.Handler
	if redisClient != nil {
		rateLimiter = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.RequestsPerMinute,
			Window:            time.Minute,
			KeyPrefix:         "ratelimit:orders",
		}, logger)
	}

	// Register routes; catalog and order handlers share the /api subtree
	systemHandler.RegisterRoutes(router)
	router.Route("/api", func(api chi.Router) {
		catalogHandler.RegisterRoutes(api)
		orderHandler.RegisterRoutes(api, rateLimiter)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close store connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
