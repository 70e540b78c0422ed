package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"furniture-store/internal/config"
	"furniture-store/internal/database"
	"furniture-store/internal/logger"
	"furniture-store/internal/repository"
	"furniture-store/internal/seed"
	"furniture-store/internal/server"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func gracefulShutdown(apiServer *server.Server, logger *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context informs the server it has 30 seconds to finish the
	// requests it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := apiServer.Close(); err != nil {
		logger.Error("Error closing server resources", zap.Error(err))
	}

	logger.Info("Server exiting")

	done <- true
}

// openStore connects, migrates and seeds the store. A missing DATABASE_URL
// or a failed connection returns nil: the API keeps serving with its
// degraded-mode contracts instead of crashing.
func openStore(cfg *config.Config, log *zap.Logger) *sql.DB {
	if cfg.Database.URL == "" {
		log.Warn("DATABASE_URL not set, store-backed endpoints will serve degraded responses")
		return nil
	}

	db, err := database.Open(cfg.Database.URL)
	if err != nil {
		log.Warn("Could not connect to store, continuing without it", zap.Error(err))
		return nil
	}

	if err := database.RunMigrations(db, "migrations", log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err = seed.Run(ctx,
		repository.NewProductRepository(db),
		repository.NewTestimonialRepository(db),
		log,
	)
	if err != nil {
		log.Warn("Seeding failed", zap.Error(err))
	}

	return db
}

func main() {
	// Load .env if present; real environment variables win via viper
	godotenv.Load()

	cfg := config.Load()

	log, err := logger.New(cfg.Server.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting furniture store API",
		zap.String("env", cfg.Server.Env),
		zap.String("port", cfg.Server.Port),
		zap.String("database", cfg.Database.Name),
	)

	db := openStore(cfg, log)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	srv := server.NewServer(cfg, log, db, redisClient)

	done := make(chan bool, 1)

	go gracefulShutdown(srv, log, done)

	log.Info("Server listening", zap.String("addr", srv.Addr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		log.Fatal("HTTP server error", zap.Error(err))
	}

	<-done
	log.Info("Graceful shutdown complete")
}
