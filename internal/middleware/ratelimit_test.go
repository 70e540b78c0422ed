package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newLimitedHandler(t *testing.T, requestsPerWindow int) (http.Handler, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	limiter := RateLimitMiddleware(redisClient, RateLimitConfig{
		RequestsPerWindow: requestsPerWindow,
		Window:            time.Second,
		KeyPrefix:         "test_rate_limit",
	}, zap.NewNop())

	handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	cleanup := func() {
		redisClient.Close()
		mr.Close()
	}
	return handler, cleanup
}

func TestProperty_RateLimitBlocksExcessRequests(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("exactly the window allowance succeeds, the excess gets 429", prop.ForAll(
		func(requestsPerWindow, excessRequests int) bool {
			handler, cleanup := newLimitedHandler(t, requestsPerWindow)
			defer cleanup()

			successCount := 0
			blockedCount := 0

			for i := 0; i < requestsPerWindow+excessRequests; i++ {
				req := httptest.NewRequest("POST", "/api/orders", nil)
				req.RemoteAddr = "192.168.1.100:4000"
				w := httptest.NewRecorder()

				handler.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					blockedCount++
				}
			}

			return successCount == requestsPerWindow && blockedCount == excessRequests
		},
		gen.IntRange(5, 20),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRateLimitSeparatesClients(t *testing.T) {
	handler, cleanup := newLimitedHandler(t, 1)
	defer cleanup()

	for _, addr := range []string{"10.0.0.1:1111", "10.0.0.2:2222"} {
		req := httptest.NewRequest("POST", "/api/orders", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("first request from %s should pass, got %d", addr, w.Code)
		}
	}
}

func TestRateLimitHeadersAreSet(t *testing.T) {
	handler, cleanup := newLimitedHandler(t, 5)
	defer cleanup()

	req := httptest.NewRequest("POST", "/api/orders", nil)
	req.RemoteAddr = "10.0.0.3:3333"
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Header().Get("X-RateLimit-Limit") != "5" {
		t.Errorf("unexpected limit header %q", w.Header().Get("X-RateLimit-Limit"))
	}
	if w.Header().Get("X-RateLimit-Remaining") != "4" {
		t.Errorf("unexpected remaining header %q", w.Header().Get("X-RateLimit-Remaining"))
	}
}
