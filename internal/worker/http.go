package worker

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Simplify/internal/domain"
	"github.com/shaiso/Simplify/internal/repo"
)

// NewHTTPHandler возвращает служебный HTTP API worker:
//
//	GET /healthz  — liveness
//	GET /metrics  — Prometheus
//	GET /events   — журнал событий
func NewHTTPHandler(events EventStore, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /events", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		filter := repo.EventFilter{
			FlowID: q.Get("flow_id"),
			Type:   q.Get("type"),
		}
		if s := q.Get("limit"); s != "" {
			limit, err := strconv.Atoi(s)
			if err != nil || limit < 0 {
				writeJSON(w, http.StatusBadRequest, map[string]any{
					"error": map[string]string{"code": "BAD_REQUEST", "message": "invalid limit"},
				})
				return
			}
			filter.Limit = limit
		}

		list, err := events.List(r.Context(), filter)
		if err != nil {
			logger.Error("list events failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"error": map[string]string{"code": "INTERNAL_ERROR", "message": "list events failed"},
			})
			return
		}
		if list == nil {
			list = []domain.Event{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"events": list})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
