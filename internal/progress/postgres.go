package progress

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shaiso/Simplify/internal/domain"
)

// PostgresStore — прогресс в PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

var _ Store = (*PostgresStore)(nil)

// NewPostgresStore создаёт таблицу progress, если её нет.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool) (*PostgresStore, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS progress (
			flow_id         TEXT PRIMARY KEY,
			completed_steps JSONB NOT NULL DEFAULT '[]',
			documents       JSONB,
			updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return nil, fmt.Errorf("create progress table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, flowID string) (domain.Progress, error) {
	if flowID == "" {
		return domain.Progress{}, ErrEmptyFlowID
	}

	var steps, docs []byte
	err := s.pool.QueryRow(ctx,
		`SELECT completed_steps, documents FROM progress WHERE flow_id = $1`, flowID,
	).Scan(&steps, &docs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.EmptyProgress(flowID), nil
		}
		return domain.Progress{}, fmt.Errorf("select progress: %w", err)
	}

	return decodeSteps(flowID, steps, docs)
}

func (s *PostgresStore) Save(ctx context.Context, p domain.Progress) error {
	if p.FlowID == "" {
		return ErrEmptyFlowID
	}

	steps, docs, err := encodeSteps(p)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO progress (flow_id, completed_steps, documents, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (flow_id) DO UPDATE SET
			completed_steps = EXCLUDED.completed_steps,
			documents = EXCLUDED.documents,
			updated_at = EXCLUDED.updated_at`,
		p.FlowID, steps, docs,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, flowID string) error {
	if flowID == "" {
		return ErrEmptyFlowID
	}
	if _, err := s.pool.Exec(ctx, `DELETE FROM progress WHERE flow_id = $1`, flowID); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
