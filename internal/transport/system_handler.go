package transport

import (
	"database/sql"
	"net/http"

	"furniture-store/internal/config"
	"furniture-store/internal/database"
	"furniture-store/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const diagnosticTableLimit = 10

// DiagnosticsResponse reports store connectivity for the /test endpoint.
type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURLSet   bool     `json:"database_url_set"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// SystemHandler serves the liveness and diagnostic routes. db is nil when
// no store was configured.
type SystemHandler struct {
	db     *sql.DB
	cfg    *config.Config
	logger *zap.Logger
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *sql.DB, cfg *config.Config, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		db:     db,
		cfg:    cfg,
		logger: logger,
	}
}

// RegisterRoutes registers the system routes
func (h *SystemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/test", h.Diagnostics)
}

// Root serves the liveness message
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{
		"message": "Furniture Store API running",
	})
}

// Health serves a minimal liveness probe
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Diagnostics reports store connectivity and the first table names. It
// always answers 200; degraded states show up in the body.
func (h *SystemHandler) Diagnostics(w http.ResponseWriter, r *http.Request) {
	response := DiagnosticsResponse{
		Backend:          "running",
		Database:         "not available",
		DatabaseURLSet:   h.cfg.Database.URL != "",
		DatabaseName:     h.cfg.Database.Name,
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}

	if h.db == nil {
		middleware.RespondWithJSON(w, http.StatusOK, response)
		return
	}

	response.Database = "available"
	response.ConnectionStatus = "connected"

	tables, err := database.TableNames(r.Context(), h.db, diagnosticTableLimit)
	if err != nil {
		h.logger.Warn("Diagnostic table listing failed", zap.Error(err))
		response.Database = "connected but errored"
		middleware.RespondWithJSON(w, http.StatusOK, response)
		return
	}

	response.Database = "connected and working"
	response.Collections = tables

	middleware.RespondWithJSON(w, http.StatusOK, response)
}
