package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	chain := Chain(
		Recovery(h.logger),
		RequestID(h.logger),
		Logging(),
		Metrics(),
	)

	// Catalog
	mux.Handle("GET /flows", chain(http.HandlerFunc(h.ListFlows)))
	mux.Handle("GET /flow/{flow_id}", chain(http.HandlerFunc(h.GetFlow)))
	mux.Handle("GET /resolve-flow", chain(http.HandlerFunc(h.ResolveFlow)))

	// Recommendation
	mux.Handle("POST /recommend-flow", chain(http.HandlerFunc(h.RecommendFlow)))
	mux.Handle("GET /eligibility", chain(http.HandlerFunc(h.GetEligibility)))

	// Progress
	mux.Handle("GET /progress/{flow_id}", chain(http.HandlerFunc(h.GetProgress)))
	mux.Handle("POST /progress/{flow_id}", chain(http.HandlerFunc(h.SaveProgress)))
	mux.Handle("DELETE /progress/{flow_id}", chain(http.HandlerFunc(h.DeleteProgress)))

	// System
	mux.Handle("GET /health", chain(http.HandlerFunc(h.Health)))
	mux.Handle("GET /metrics", promhttp.Handler())
}

// Routes возвращает готовый http.Handler: маршруты под CORS.
//
// CORS оборачивает весь mux, чтобы preflight OPTIONS не упирался в 405.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return CORS(h.allowedOrigins)(mux)
}
