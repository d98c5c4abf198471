package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики сервиса. Регистрируются в prometheus.DefaultRegisterer
// и отдаются на /metrics.
var (
	// HTTPRequests — количество HTTP запросов по маршруту и статусу.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simplify_api_http_requests_total",
		Help: "Total HTTP requests handled by simplify_api",
	}, []string{"method", "route", "status"})

	// HTTPDuration — длительность обработки HTTP запросов.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "simplify_api_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Recommendations — выданные рекомендации по правилу и уверенности.
	Recommendations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simplify_recommendations_total",
		Help: "Flow recommendations by matched rule and confidence",
	}, []string{"rule", "confidence"})

	// ProgressWrites — операции записи прогресса.
	ProgressWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simplify_progress_writes_total",
		Help: "Progress store writes by operation",
	}, []string{"op"})

	// CatalogBrokenRefs — битые ссылки flow → шаг по результатам последнего аудита.
	CatalogBrokenRefs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "simplify_catalog_broken_refs",
		Help: "Step references that point to missing step files (last audit)",
	})

	// CatalogPreconditionIssues — нарушения предусловий шагов (последний аудит).
	CatalogPreconditionIssues = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "simplify_catalog_precondition_issues",
		Help: "Step preconditions that are outside the flow, ordered late or cyclic (last audit)",
	})

	// CatalogAudits — запуски аудита каталога по результату.
	CatalogAudits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simplify_catalog_audits_total",
		Help: "Catalog audit runs by result",
	}, []string{"result"})

	// WorkerEvents — события, обработанные worker.
	WorkerEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "simplify_worker_events_total",
		Help: "Events consumed by simplify-worker",
	}, []string{"type", "result"})
)
