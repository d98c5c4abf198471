package recommend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shaiso/Simplify/internal/catalog"
	"github.com/shaiso/Simplify/internal/domain"
	"github.com/shaiso/Simplify/internal/telemetry"
)

// DefaultRuleName — имя результата, когда не сработало ни одно правило.
const DefaultRuleName = "default"

// Outcome — рекомендация и правило, которое её дало.
type Outcome struct {
	Recommendation domain.Recommendation
	Rule           string
}

// Engine — детерминированный движок правил.
//
// Engine не хранит состояния между вызовами: одинаковые ответы при
// одинаковом каталоге всегда дают одинаковый результат.
type Engine struct {
	rules []Rule
}

// NewEngine создаёт Engine. Пустая таблица заменяется DefaultRules.
func NewEngine(rules []Rule) *Engine {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Engine{rules: rules}
}

// Rules возвращает таблицу правил.
func (e *Engine) Rules() []Rule {
	return e.rules
}

// Evaluate применяет правила к ответам анкеты.
func (e *Engine) Evaluate(answers domain.IntakeAnswers, flows []domain.FlowSummary) Outcome {
	available := make(map[string]domain.FlowSummary, len(flows))
	for _, f := range flows {
		available[f.FlowID] = f
	}

	for _, rule := range e.rules {
		if rule.Match == nil || !rule.Match(answers) {
			continue
		}

		// Правило сработало: ищем первого кандидата из каталога
		for _, c := range rule.Candidates {
			flow, ok := available[c.FlowID]
			if !ok {
				continue
			}
			return Outcome{
				Rule: rule.Name,
				Recommendation: domain.Recommendation{
					FlowID:     flow.FlowID,
					Title:      flow.Title,
					StepCount:  flow.StepCount,
					Reason:     c.Reason,
					Confidence: c.Confidence,
				},
			}
		}

		return Outcome{Rule: rule.Name, Recommendation: noMatch(rule.NoMatchReason)}
	}

	return Outcome{Rule: DefaultRuleName, Recommendation: noMatch(reasonDefault)}
}

// Recommend — Evaluate без имени правила.
func (e *Engine) Recommend(answers domain.IntakeAnswers, flows []domain.FlowSummary) domain.Recommendation {
	return e.Evaluate(answers, flows).Recommendation
}

func noMatch(reason string) domain.Recommendation {
	return domain.Recommendation{
		FlowID:     "",
		Title:      NoMatchTitle,
		StepCount:  0,
		Reason:     reason,
		Confidence: domain.ConfidenceLow,
	}
}

// FlowLister — источник каталога flows.
type FlowLister interface {
	List(ctx context.Context) ([]domain.FlowSummary, error)
}

// Service связывает Engine с каталогом flows.
type Service struct {
	engine *Engine
	flows  FlowLister
	logger *slog.Logger
}

// NewService создаёт Service.
func NewService(engine *Engine, flows FlowLister, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{engine: engine, flows: flows, logger: logger}
}

// Evaluate перечисляет текущий каталог и подбирает flow.
//
// Пустой каталог (catalog.ErrNoData) не ошибка: правила просто не найдут
// кандидатов. Остальные ошибки каталога возвращаются вызывающему.
func (s *Service) Evaluate(ctx context.Context, answers domain.IntakeAnswers) (Outcome, error) {
	flows, err := s.flows.List(ctx)
	if err != nil && !errors.Is(err, catalog.ErrNoData) {
		return Outcome{}, fmt.Errorf("list flows: %w", err)
	}

	out := s.engine.Evaluate(answers, flows)
	rec := out.Recommendation

	telemetry.Recommendations.WithLabelValues(out.Rule, string(rec.Confidence)).Inc()
	s.logger.Info("flow recommended",
		"rule", out.Rule,
		"flow_id", rec.FlowID,
		"confidence", rec.Confidence,
		"nationality", answers.Nationality,
		"entry_context", answers.EntryContext,
		"purpose", answers.Purpose,
		"city", answers.City,
	)

	return out, nil
}

// Recommend — Evaluate без имени правила.
func (s *Service) Recommend(ctx context.Context, answers domain.IntakeAnswers) (domain.Recommendation, error) {
	out, err := s.Evaluate(ctx, answers)
	if err != nil {
		return domain.Recommendation{}, err
	}
	return out.Recommendation, nil
}
