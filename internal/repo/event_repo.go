package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/Simplify/internal/domain"
)

// EventRepo — журнал доменных событий.
type EventRepo struct {
	pool *pgxpool.Pool
}

// NewEventRepo создаёт новый EventRepo.
func NewEventRepo(pool *pgxpool.Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// EnsureSchema создаёт таблицу events и индекс по flow_id.
func (r *EventRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS events (
			id          UUID PRIMARY KEY,
			type        TEXT NOT NULL,
			flow_id     TEXT,
			payload     JSONB NOT NULL,
			occurred_at TIMESTAMPTZ NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE INDEX IF NOT EXISTS events_flow_id_idx ON events (flow_id, occurred_at DESC);
	`)
	if err != nil {
		return fmt.Errorf("create events table: %w", err)
	}
	return nil
}

// Insert записывает событие. Повторная запись того же ID возвращает ErrAlreadyExists.
func (r *EventRepo) Insert(ctx context.Context, ev *domain.Event) error {
	query := `
		INSERT INTO events (id, type, flow_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
		RETURNING recorded_at
	`
	payload := []byte(ev.Payload)
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	err := r.pool.QueryRow(ctx, query,
		ev.ID,
		ev.Type,
		nullString(ev.FlowID),
		payload,
		ev.OccurredAt,
	).Scan(&ev.RecordedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// GetByID возвращает событие по ID.
func (r *EventRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	query := `
		SELECT id, type, flow_id, payload, occurred_at, recorded_at
		FROM events
		WHERE id = $1
	`
	return scanEvent(r.pool.QueryRow(ctx, query, id))
}

// EventFilter — параметры выборки событий.
type EventFilter struct {
	FlowID string
	Type   string
	Limit  int
}

// List возвращает события, новые первыми.
func (r *EventRepo) List(ctx context.Context, filter EventFilter) ([]domain.Event, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}

	query := `
		SELECT id, type, flow_id, payload, occurred_at, recorded_at
		FROM events
		WHERE ($1::text IS NULL OR flow_id = $1)
		  AND ($2::text IS NULL OR type = $2)
		ORDER BY occurred_at DESC
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query,
		nullString(filter.FlowID),
		nullString(filter.Type),
		filter.Limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *ev)
	}
	return events, rows.Err()
}

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var ev domain.Event
	var flowID *string
	var payload []byte

	err := row.Scan(&ev.ID, &ev.Type, &flowID, &payload, &ev.OccurredAt, &ev.RecordedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan event: %w", err)
	}

	if flowID != nil {
		ev.FlowID = *flowID
	}
	ev.Payload = payload
	return &ev, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
