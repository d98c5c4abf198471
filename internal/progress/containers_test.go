package progress

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/shaiso/Simplify/internal/repo"
)

// Интеграционные тесты бэкендов в контейнерах.
// Пропускаются с -short и без доступного Docker.

func startContainer(t *testing.T, image, port string, env map[string]string, strategy wait.Strategy) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	// Give generous timeout in CI environments
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := testcontainers.Run(
		ctx, image,
		testcontainers.WithExposedPorts(port),
		testcontainers.WithEnv(env),
		testcontainers.WithWaitStrategy(strategy),
	)
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)

	endpoint, err := c.Endpoint(ctx, "")
	require.NoError(t, err)
	return endpoint
}

var seq atomic.Int64

func TestRedisStoreSuite(t *testing.T) {
	endpoint := startContainer(t, "redis:7", "6379/tcp", nil,
		wait.ForAll(
			wait.ForListeningPort("6379/tcp"),
			wait.ForLog("Ready to accept connections"),
		),
	)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) Store {
		return NewRedisStore(client, fmt.Sprintf("simplify:test:%d:", seq.Add(1)))
	}})
}

func TestPostgresStoreSuite(t *testing.T) {
	endpoint := startContainer(t, "postgres:16", "5432/tcp",
		map[string]string{
			"POSTGRES_USER":     "simplify",
			"POSTGRES_PASSWORD": "simplify",
			"POSTGRES_DB":       "simplify_test",
		},
		wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(2*time.Minute),
	)

	ctx := context.Background()
	pool, err := repo.NewPool(ctx, fmt.Sprintf("postgres://simplify:simplify@%s/simplify_test?sslmode=disable", endpoint))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) Store {
		store, err := NewPostgresStore(ctx, pool)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, `TRUNCATE progress`)
		require.NoError(t, err)
		return store
	}})
}

func TestMongoStoreSuite(t *testing.T) {
	endpoint := startContainer(t, "mongo:7", "27017/tcp", nil,
		wait.ForAll(
			wait.ForListeningPort("27017/tcp"),
			wait.ForLog("Waiting for connections"),
		),
	)

	ctx := context.Background()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://"+endpoint))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) Store {
		return NewMongoStore(client, fmt.Sprintf("simplify_test_%d", seq.Add(1)))
	}})
}
