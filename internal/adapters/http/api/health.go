// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/anonrev/placerank/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler serves /healthz. The endpoint doubles as liveness probe and
// metrics scrape target: it exposes the service's Prometheus registry, so a
// 200 with metric output means the process is up and serving.
type HealthHandler struct {
	scrape http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		scrape: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.scrape.ServeHTTP(w, r)
}
