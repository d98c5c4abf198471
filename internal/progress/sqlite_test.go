package progress

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	_ "modernc.org/sqlite"

	"github.com/shaiso/Simplify/internal/domain"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewSQLiteStore(context.Background(), db)
	require.NoError(t, err)
	return store
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) Store {
		return newTestSQLiteStore(t)
	}})
}

func TestSQLiteStore_SchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	require.NoError(t, store.Save(ctx, domain.Progress{FlowID: "f", CompletedSteps: []string{"a"}}))

	// повторная инициализация не трогает данные
	again, err := NewSQLiteStore(ctx, store.db)
	require.NoError(t, err)

	got, err := again.Get(ctx, "f")
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, got.CompletedSteps)
}
