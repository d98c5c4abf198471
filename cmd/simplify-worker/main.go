// Simplify Worker — журнал доменных событий.
//
// Worker:
//   - Потребляет события из RabbitMQ (очередь events.audit)
//   - Записывает их в таблицу events (Postgres)
//   - Отдаёт журнал, /healthz и /metrics по HTTP
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shaiso/Simplify/internal/config"
	"github.com/shaiso/Simplify/internal/mq"
	"github.com/shaiso/Simplify/internal/repo"
	"github.com/shaiso/Simplify/internal/telemetry"
	"github.com/shaiso/Simplify/internal/worker"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting simplify-worker")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// DB pool
	pool, err := repo.NewPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	events := repo.NewEventRepo(pool)
	if err := events.EnsureSchema(ctx); err != nil {
		logger.Error("failed to prepare events table", "error", err)
		os.Exit(1)
	}

	// RabbitMQ
	mqURL := cfg.RabbitMQURL
	if mqURL == "" {
		mqURL = mq.DefaultURL()
	}
	mqConn, err := mq.NewConnection(mqURL, "simplify-worker", logger)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", "error", err)
		os.Exit(1)
	}
	defer mqConn.Close()

	if err := mq.SetupTopology(ctx, mqConn); err != nil {
		logger.Error("failed to setup topology", "error", err)
		os.Exit(1)
	}
	logger.Debug("topology ready", "topology", mq.TopologyInfo())

	w := worker.New(worker.Config{
		Conn:   mqConn,
		Events: events,
		Logger: logger,
	})
	if err := w.Start(ctx); err != nil {
		logger.Error("failed to start worker", "error", err)
		os.Exit(1)
	}

	addr := ":" + cfg.WorkerPort
	server := &http.Server{
		Addr:              addr,
		Handler:           worker.NewHTTPHandler(events, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	w.Stop()
	logger.Info("simplify-worker stopped")
}
