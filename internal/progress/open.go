package progress

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	_ "modernc.org/sqlite"

	"github.com/shaiso/Simplify/internal/config"
	"github.com/shaiso/Simplify/internal/repo"
)

// Open создаёт хранилище для выбранного бэкенда и проверяет подключение.
func Open(ctx context.Context, cfg config.Progress, logger *slog.Logger) (Store, error) {
	switch cfg.Backend {
	case "", config.BackendMemory:
		logger.Info("progress store: memory")
		return NewMemoryStore(), nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		logger.Info("progress store: redis", "addr", cfg.RedisAddr, "prefix", cfg.RedisPrefix)
		return NewRedisStore(client, cfg.RedisPrefix), nil

	case config.BackendPostgres:
		pool, err := repo.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return nil, err
		}
		store, err := NewPostgresStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info("progress store: postgres")
		return store, nil

	case config.BackendSQLite:
		db, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// один писатель, иначе SQLITE_BUSY под нагрузкой
		db.SetMaxOpenConns(1)
		store, err := NewSQLiteStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Info("progress store: sqlite", "path", cfg.SQLitePath)
		return store, nil

	case config.BackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("mongo connect: %w", err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("mongo ping: %w", err)
		}
		logger.Info("progress store: mongo", "database", cfg.MongoDatabase)
		return NewMongoStore(client, cfg.MongoDatabase), nil

	default:
		return nil, fmt.Errorf("unknown progress backend %q", cfg.Backend)
	}
}
