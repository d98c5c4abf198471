// Package mq публикует и потребляет доменные события через RabbitMQ.
//
// Структура:
//   - connection.go — соединение с RabbitMQ (reconnect, graceful shutdown)
//   - topology.go   — объявление exchanges, queues, bindings
//   - publisher.go  — публикация событий
//   - consumer.go   — потребление событий
//
// Типы событий (routing key совпадает с типом):
//   - flow.recommended — POST /recommend-flow вернул рекомендацию
//   - progress.saved   — сохранён прогресс по flow
//   - progress.deleted — прогресс по flow сброшен
//
// Exchanges:
//   - simplify.events  — все события (topic)
//   - simplify.dlq     — dead letter
package mq
