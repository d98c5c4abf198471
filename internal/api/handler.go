package api

import (
	"context"
	"log/slog"

	"github.com/shaiso/Simplify/internal/catalog"
	"github.com/shaiso/Simplify/internal/domain"
	"github.com/shaiso/Simplify/internal/mq"
	"github.com/shaiso/Simplify/internal/progress"
	"github.com/shaiso/Simplify/internal/recommend"
)

// FlowCatalog — источник flows.
type FlowCatalog interface {
	List(ctx context.Context) ([]domain.FlowSummary, error)
	Get(ctx context.Context, flowID string) (*domain.Flow, error)
}

// StepResolver собирает шаги flow.
type StepResolver interface {
	Resolve(ctx context.Context, flow *domain.Flow) ([]domain.Step, error)
}

// Recommender подбирает flow по анкете.
type Recommender interface {
	Evaluate(ctx context.Context, answers domain.IntakeAnswers) (recommend.Outcome, error)
}

// EventPublisher публикует доменные события. nil — события выключены.
type EventPublisher interface {
	PublishFlowRecommended(ctx context.Context, payload mq.FlowRecommendedPayload) error
	PublishProgressSaved(ctx context.Context, payload mq.ProgressSavedPayload) error
	PublishProgressDeleted(ctx context.Context, flowID string) error
}

var (
	_ FlowCatalog    = (*catalog.FlowRepo)(nil)
	_ StepResolver   = (*catalog.StepResolver)(nil)
	_ Recommender    = (*recommend.Service)(nil)
	_ EventPublisher = (*mq.Publisher)(nil)
)

// Handler — главный обработчик API с зависимостями.
type Handler struct {
	flows          FlowCatalog
	steps          StepResolver
	recommender    Recommender
	progress       progress.Store
	rulesDir       string
	publisher      EventPublisher
	allowedOrigins []string
	logger         *slog.Logger
}

// Config — конфигурация для создания Handler.
type Config struct {
	Flows       FlowCatalog
	Steps       StepResolver
	Recommender Recommender
	Progress    progress.Store

	// RulesDir — каталог документа eligibility (GET /eligibility).
	RulesDir string

	// Publisher — опционально.
	Publisher EventPublisher

	// AllowedOrigins — CORS; пусто или "*" — любой origin.
	AllowedOrigins []string

	Logger *slog.Logger
}

// NewHandler создаёт новый Handler.
func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		flows:          cfg.Flows,
		steps:          cfg.Steps,
		recommender:    cfg.Recommender,
		progress:       cfg.Progress,
		rulesDir:       cfg.RulesDir,
		publisher:      cfg.Publisher,
		allowedOrigins: cfg.AllowedOrigins,
		logger:         logger,
	}
}
