package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HealthHandler provides HTTP health check endpoints for the invoicing service.
type HealthHandler struct {
	logger *slog.Logger
	ready  func() error
}

// NewHealthHandler creates a new HealthHandler. The ready func is called
// on each readiness probe; a nil func means always ready.
func NewHealthHandler(logger *slog.Logger, ready func() error) *HealthHandler {
	return &HealthHandler{
		logger: logger,
		ready:  ready,
	}
}

// healthResponse represents the health check response body.
type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// RegisterRoutes registers the health check routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/readyz", h.Ready)
}

// Health is the liveness probe endpoint.
func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "UP",
		Service: "invoicing-service",
	})
}

// Ready is the readiness probe endpoint.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(); err != nil {
			h.logger.Warn("readiness check failed", slog.String("error", err.Error()))
			h.writeJSON(w, http.StatusServiceUnavailable, healthResponse{
				Status:  "DOWN",
				Service: "invoicing-service",
			})
			return
		}
	}

	h.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "READY",
		Service: "invoicing-service",
	})
}

func (h *HealthHandler) writeJSON(w http.ResponseWriter, code int, resp healthResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("failed to encode health response", slog.String("error", err.Error()))
	}
}
