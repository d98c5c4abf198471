package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shaiso/Simplify/internal/domain"
)

// SQLiteStore — прогресс в SQLite.
//
// Ожидает *sql.DB с драйвером "sqlite" (modernc.org/sqlite).
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore создаёт таблицу, если её нет, и возвращает хранилище.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS progress (
			flow_id TEXT PRIMARY KEY,
			completed_steps TEXT NOT NULL,
			documents TEXT,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,
	)
	if err != nil {
		return fmt.Errorf("create progress table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, flowID string) (domain.Progress, error) {
	if flowID == "" {
		return domain.Progress{}, ErrEmptyFlowID
	}

	var (
		steps string
		docs  sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT completed_steps, documents FROM progress WHERE flow_id = ?`, flowID,
	).Scan(&steps, &docs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.EmptyProgress(flowID), nil
		}
		return domain.Progress{}, fmt.Errorf("select progress: %w", err)
	}

	var docsJSON []byte
	if docs.Valid {
		docsJSON = []byte(docs.String)
	}
	return decodeSteps(flowID, []byte(steps), docsJSON)
}

func (s *SQLiteStore) Save(ctx context.Context, p domain.Progress) error {
	if p.FlowID == "" {
		return ErrEmptyFlowID
	}

	steps, docs, err := encodeSteps(p)
	if err != nil {
		return err
	}

	var docsArg any
	if docs != nil {
		docsArg = string(docs)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO progress (flow_id, completed_steps, documents, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(flow_id) DO UPDATE SET
			completed_steps = excluded.completed_steps,
			documents = excluded.documents,
			updated_at = excluded.updated_at`,
		p.FlowID, string(steps), docsArg,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, flowID string) error {
	if flowID == "" {
		return ErrEmptyFlowID
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM progress WHERE flow_id = ?`, flowID); err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
