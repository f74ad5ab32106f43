package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type healthResponse struct {
	Status string `json:"status"`
	Loaded bool   `json:"loaded"`
}

// HandleHealth handles GET /healthz. It reports ok once a snapshot is loaded
// and 503 before that.
func (s *Server) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	if !s.deps.Loaded() {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "loading"})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Loaded: true})
}

// metricsHandler serves the given registry in the Prometheus exposition format.
func metricsHandler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
