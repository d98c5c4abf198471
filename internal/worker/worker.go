package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shaiso/Simplify/internal/domain"
	"github.com/shaiso/Simplify/internal/mq"
	"github.com/shaiso/Simplify/internal/repo"
)

const defaultPrefetch = 10

// EventStore — хранилище журнала событий.
type EventStore interface {
	Insert(ctx context.Context, ev *domain.Event) error
	List(ctx context.Context, filter repo.EventFilter) ([]domain.Event, error)
}

var _ EventStore = (*repo.EventRepo)(nil)

// Worker записывает события из RabbitMQ в журнал.
type Worker struct {
	conn     *mq.Connection
	events   EventStore
	prefetch int
	logger   *slog.Logger

	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// Config — конфигурация Worker.
type Config struct {
	Conn   *mq.Connection
	Events EventStore

	// Prefetch — сколько сообщений брать из очереди за раз (default: 10).
	Prefetch int

	Logger *slog.Logger
}

// New создаёт новый Worker.
func New(cfg Config) *Worker {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	prefetch := cfg.Prefetch
	if prefetch <= 0 {
		prefetch = defaultPrefetch
	}

	return &Worker{
		conn:     cfg.Conn,
		events:   cfg.Events,
		prefetch: prefetch,
		logger:   logger,
	}
}

// Start запускает consumer очереди events.audit в отдельной горутине.
func (w *Worker) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel

	consumer := mq.NewConsumer(w.conn, w.logger, mq.ConsumerConfig{
		Queue:    mq.QueueEventsAudit,
		Handler:  w.HandleMessage,
		Prefetch: w.prefetch,
	})

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			w.logger.Error("event consumer error", "error", err)
		}
	}()

	w.logger.Info("worker started", "queue", mq.QueueEventsAudit, "prefetch", w.prefetch)
	return nil
}

// Stop останавливает consumer и ждёт завершения обработки.
func (w *Worker) Stop() {
	w.logger.Info("stopping worker...")
	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.wg.Wait()
	w.logger.Info("worker stopped")
}
