// Package api содержит HTTP API сервер.
//
// Структура:
//   - handler.go           — Handler с DI (каталог, рекомендации, прогресс, события)
//   - routes.go            — регистрация маршрутов
//   - middleware.go        — middleware (recovery, request id, logging, metrics, CORS)
//   - response.go          — JSON-ответы и перевод ошибок в HTTP статусы
//   - dto.go               — тела запросов и ответов
//   - flow_handler.go      — /flows, /flow/{flow_id}, /resolve-flow
//   - recommend_handler.go — /recommend-flow
//   - progress_handler.go  — /progress/{flow_id}
//   - system_handler.go    — /eligibility, /health
package api
