package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/shaiso/Simplify/internal/domain"
	"github.com/shaiso/Simplify/internal/mq"
	"github.com/shaiso/Simplify/internal/repo"
	"github.com/shaiso/Simplify/internal/telemetry"
)

// ErrInvalidMessage — сообщение нельзя записать в журнал (битый ID или payload).
var ErrInvalidMessage = errors.New("invalid message")

// HandleMessage записывает событие в журнал.
//
// Невалидные сообщения и дубли подтверждаются (nil), чтобы не крутиться
// в очереди. Ошибка возвращается только при сбое хранилища.
func (w *Worker) HandleMessage(ctx context.Context, msg *mq.Message) error {
	ev, err := toEvent(msg)
	if err != nil {
		w.logger.Warn("dropping invalid message", "message_id", msg.ID, "type", msg.Type, "error", err)
		telemetry.WorkerEvents.WithLabelValues(string(msg.Type), "invalid").Inc()
		return nil
	}

	logger := w.logger.With("event_id", ev.ID, "type", ev.Type, "flow_id", ev.FlowID)

	if err := w.events.Insert(ctx, ev); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			logger.Debug("duplicate event skipped")
			telemetry.WorkerEvents.WithLabelValues(ev.Type, "duplicate").Inc()
			return nil
		}
		telemetry.WorkerEvents.WithLabelValues(ev.Type, "error").Inc()
		return fmt.Errorf("record event %s: %w", ev.ID, err)
	}

	logger.Info("event recorded")
	telemetry.WorkerEvents.WithLabelValues(ev.Type, "recorded").Inc()
	return nil
}

// toEvent превращает сообщение в запись журнала.
func toEvent(msg *mq.Message) (*domain.Event, error) {
	id, err := uuid.Parse(msg.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: id %q: %v", ErrInvalidMessage, msg.ID, err)
	}
	if msg.Type == "" {
		return nil, fmt.Errorf("%w: empty type", ErrInvalidMessage)
	}

	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrInvalidMessage, err)
	}

	// flow_id есть во всех payload; у flow.recommended без совпадения он пустой
	ref, err := mq.ParsePayload[struct {
		FlowID string `json:"flow_id"`
	}](msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	return &domain.Event{
		ID:         id,
		Type:       string(msg.Type),
		FlowID:     ref.FlowID,
		Payload:    payload,
		OccurredAt: msg.Timestamp,
	}, nil
}
