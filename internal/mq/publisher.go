package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/shaiso/Simplify/internal/domain"
)

// MessageType — тип события.
type MessageType string

// Типы событий.
const (
	MessageTypeFlowRecommended MessageType = "flow.recommended"
	MessageTypeProgressSaved   MessageType = "progress.saved"
	MessageTypeProgressDeleted MessageType = "progress.deleted"
)

// Message — конверт события.
type Message struct {
	ID        string      `json:"id"`
	Type      MessageType `json:"type"`
	Payload   any         `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// FlowRecommendedPayload — результат подбора flow.
type FlowRecommendedPayload struct {
	Answers    domain.IntakeAnswers `json:"answers"`
	FlowID     string               `json:"flow_id"`
	Confidence domain.Confidence    `json:"confidence"`
	Rule       string               `json:"rule"`
}

// ProgressSavedPayload — сохранённый прогресс.
type ProgressSavedPayload struct {
	FlowID         string   `json:"flow_id"`
	CompletedSteps []string `json:"completed_steps"`
}

// ProgressDeletedPayload — сброшенный прогресс.
type ProgressDeletedPayload struct {
	FlowID string `json:"flow_id"`
}

// Publisher публикует события в exchange simplify.events.
type Publisher struct {
	conn   *Connection
	logger *slog.Logger
}

// NewPublisher создаёт новый Publisher.
func NewPublisher(conn *Connection, logger *slog.Logger) *Publisher {
	return &Publisher{conn: conn, logger: logger}
}

// NewMessage оборачивает payload в конверт с новым ID.
func NewMessage(msgType MessageType, payload any) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// Publish публикует сообщение в указанный exchange с routing key.
func (p *Publisher) Publish(ctx context.Context, exchange Exchange, routingKey RoutingKey, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	return p.conn.WithChannel(ctx, func(ch *amqp.Channel) error {
		err := ch.PublishWithContext(
			ctx,
			string(exchange),
			string(routingKey),
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				MessageId:    msg.ID,
				Type:         string(msg.Type),
				Timestamp:    msg.Timestamp,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish to %s/%s: %w", exchange, routingKey, err)
		}

		p.logger.Debug("published message",
			"exchange", exchange,
			"routing_key", routingKey,
			"message_id", msg.ID,
			"type", msg.Type,
		)
		return nil
	})
}

// PublishFlowRecommended публикует событие flow.recommended.
func (p *Publisher) PublishFlowRecommended(ctx context.Context, payload FlowRecommendedPayload) error {
	return p.Publish(ctx, ExchangeEvents, RoutingKeyFlowRecommended,
		NewMessage(MessageTypeFlowRecommended, payload))
}

// PublishProgressSaved публикует событие progress.saved.
func (p *Publisher) PublishProgressSaved(ctx context.Context, payload ProgressSavedPayload) error {
	return p.Publish(ctx, ExchangeEvents, RoutingKeyProgressSaved,
		NewMessage(MessageTypeProgressSaved, payload))
}

// PublishProgressDeleted публикует событие progress.deleted.
func (p *Publisher) PublishProgressDeleted(ctx context.Context, flowID string) error {
	return p.Publish(ctx, ExchangeEvents, RoutingKeyProgressDeleted,
		NewMessage(MessageTypeProgressDeleted, ProgressDeletedPayload{FlowID: flowID}))
}
