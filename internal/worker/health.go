package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HealthServer serves liveness and readiness checks for the render worker
type HealthServer struct {
	port         int
	redisClient  *redis.Client
	templateRoot string
	logger       *zap.Logger
	server       *http.Server
}

// NewHealthServer creates a new health server
func NewHealthServer(port int, redisClient *redis.Client, templateRoot string, logger *zap.Logger) *HealthServer {
	return &HealthServer{
		port:         port,
		redisClient:  redisClient,
		templateRoot: templateRoot,
		logger:       logger,
	}
}

// Handler returns the HTTP handler serving /health and /ready
func (hs *HealthServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", hs.handleHealth)
	mux.HandleFunc("/ready", hs.handleReady)
	return mux
}

// Start starts the health check server
func (hs *HealthServer) Start() error {
	hs.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", hs.port),
		Handler:           hs.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	hs.logger.Info("starting health server", zap.Int("port", hs.port))

	go func() {
		if err := hs.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			hs.logger.Error("health server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the health check server
func (hs *HealthServer) Stop() error {
	if hs.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	hs.logger.Info("stopping health server")
	return hs.server.Shutdown(ctx)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// runChecks reports the state of every dependency. ok is false when any check failed.
func (hs *HealthServer) runChecks(ctx context.Context) (checks map[string]string, ok bool) {
	checks = make(map[string]string, 2)
	ok = true

	if hs.redisClient != nil {
		if err := hs.redisClient.Ping(ctx).Err(); err != nil {
			checks["redis"] = fmt.Sprintf("unhealthy: %v", err)
			ok = false
		} else {
			checks["redis"] = "healthy"
		}
	}

	info, err := os.Stat(hs.templateRoot)
	switch {
	case err != nil:
		checks["templates"] = fmt.Sprintf("unhealthy: %v", err)
		ok = false
	case !info.IsDir():
		checks["templates"] = fmt.Sprintf("unhealthy: %s is not a directory", hs.templateRoot)
		ok = false
	default:
		checks["templates"] = "healthy"
	}

	return checks, ok
}

// handleHealth handles the /health endpoint
func (hs *HealthServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks, ok := hs.runChecks(ctx)
	if !ok {
		hs.respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "unhealthy",
			Checks: checks,
		})
		return
	}

	hs.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "healthy",
		Checks: checks,
	})
}

// handleReady handles the /ready endpoint
func (hs *HealthServer) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, ok := hs.runChecks(ctx); !ok {
		hs.respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status: "not ready",
		})
		return
	}

	hs.respondJSON(w, http.StatusOK, HealthResponse{
		Status: "ready",
	})
}

// respondJSON writes a JSON response
func (hs *HealthServer) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		hs.logger.Error("failed to encode response", zap.Error(err))
	}
}
