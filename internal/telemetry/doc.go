// Package telemetry — логирование и метрики Simplify.
//
// logging.go настраивает slog по LOG_LEVEL и LOG_FORMAT и передаёт логгер
// запроса через context (request_id, flow_id).
//
// metrics.go объявляет коллекторы Prometheus: HTTP API, рекомендации по
// правилам, записи прогресса, аудит каталога и события worker. Их отдают
// simplify-api и simplify-worker на /metrics.
package telemetry
