// Simplify API — HTTP-сервер каталога flows.
//
// API:
//   - Отдаёт каталог flows и собранные шаги из YAML (DATA_DIR)
//   - Подбирает flow по анкете (правила из RULES_DIR или встроенные)
//   - Хранит прогресс пользователя (PROGRESS_BACKEND)
//   - Публикует события в RabbitMQ, если задан RABBITMQ_URL
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shaiso/Simplify/internal/api"
	"github.com/shaiso/Simplify/internal/catalog"
	"github.com/shaiso/Simplify/internal/config"
	"github.com/shaiso/Simplify/internal/mq"
	"github.com/shaiso/Simplify/internal/progress"
	"github.com/shaiso/Simplify/internal/recommend"
	"github.com/shaiso/Simplify/internal/scheduler"
	"github.com/shaiso/Simplify/internal/telemetry"
)

func main() {
	// Инициализируем structured logging
	logger := telemetry.SetupLogger()
	logger.Info("starting simplify-api")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Каталог
	flowRepo := catalog.NewFlowRepo(cfg.FlowsDir(), logger)
	resolver := catalog.NewStepResolver(cfg.StepsDir(), logger)

	// Правила рекомендаций: документ eligibility, если он их объявляет
	rules := recommend.DefaultRules()
	doc, err := catalog.LoadEligibility(cfg.RulesDir)
	if err != nil {
		logger.Error("failed to load eligibility rules", "error", err)
		os.Exit(1)
	}
	if doc != nil && len(doc.Rules) > 0 {
		rules = recommend.RulesFromDocument(doc.Rules)
		logger.Info("recommendation rules loaded from document", "rules", len(rules), "version", doc.Version)
	} else {
		logger.Info("using built-in recommendation rules", "rules", len(rules))
	}
	recommender := recommend.NewService(recommend.NewEngine(rules), flowRepo, logger)

	// Прогресс
	store, err := progress.Open(ctx, cfg.Progress, logger)
	if err != nil {
		logger.Error("failed to open progress store", "backend", cfg.Progress.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	// События (опционально)
	var publisher api.EventPublisher
	if cfg.RabbitMQURL != "" {
		conn, err := mq.NewConnection(cfg.RabbitMQURL, "simplify-api", logger)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		if err := mq.SetupTopology(ctx, conn); err != nil {
			logger.Error("failed to setup topology", "error", err)
			os.Exit(1)
		}
		publisher = mq.NewPublisher(conn, logger)
		logger.Info("event publishing enabled")
	}

	// Аудит каталога по расписанию (опционально)
	if cfg.CatalogAuditCron != "" {
		auditor, err := scheduler.NewAuditor(scheduler.Config{
			Flows:  flowRepo,
			Steps:  resolver,
			Cron:   cfg.CatalogAuditCron,
			Logger: logger,
		})
		if err != nil {
			logger.Error("invalid CATALOG_AUDIT_CRON", "error", err)
			os.Exit(1)
		}
		go auditor.Run(ctx)
	}

	handler := api.NewHandler(api.Config{
		Flows:          flowRepo,
		Steps:          resolver,
		Recommender:    recommender,
		Progress:       store,
		RulesDir:       cfg.RulesDir,
		Publisher:      publisher,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         logger,
	})

	addr := ":" + cfg.APIPort
	server := &http.Server{
		Addr:              addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", addr, "data_dir", cfg.DataDir, "rules_dir", cfg.RulesDir)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Graceful shutdown с таймаутом 10 секунд
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("stopped")
}
