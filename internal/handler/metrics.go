package handler

import (
	"net/http"

	"github.com/noteplane/noteplane/internal/metrics"
)

// MetricsHandler exposes the in-process counters as JSON.
// Intended for internal scraping, not for tenant-facing consumption.
type MetricsHandler struct {
	snap metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snap metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snap: snap}
}

// Metrics handles GET /metrics.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.snap.Snapshot())
}
