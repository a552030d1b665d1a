package http

import (
	"context"
	"net/http"
	"time"

	"procurement-service/pkg/api"
	"procurement-service/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// Pinger reports whether a backing service is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health check operations
type HealthHandler struct {
	// Logger is used for logging operations within the handler
	Logger logger.LoggerInterface
	// API provides standardized API response patterns
	API api.Api
	// Database is pinged on every check
	Database Pinger
}

// NewHealthHandler creates a new instance of HealthHandler
func NewHealthHandler(database Pinger, appLogger logger.LoggerInterface) *HealthHandler {
	return &HealthHandler{
		Logger:   appLogger,
		API:      api.NewWithLogger(appLogger),
		Database: database,
	}
}

// HealthCheckHandler handles HTTP requests to check the health of the service
// Returns a 200 status code when the database answers and a 503 otherwise
func (h *HealthHandler) HealthCheckHandler(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), healthCheckTimeout)
	defer cancel()

	if err := h.Database.Ping(ctx); err != nil {
		h.Logger.ErrorContext(ctx, "Health check failed", "error", err)
		h.API.Error(ctx, w, http.StatusServiceUnavailable, &api.Error{
			Code:    "UNHEALTHY",
			Message: "Database is unreachable",
		})
		return
	}

	h.API.Success(ctx, w, map[string]any{
		"status":   "healthy",
		"message":  "Service is running",
		"database": "up",
	})
}
