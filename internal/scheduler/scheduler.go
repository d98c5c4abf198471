package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shaiso/Simplify/internal/catalog"
	"github.com/shaiso/Simplify/internal/telemetry"
)

// Auditor — периодический аудит каталога.
type Auditor struct {
	flows    *catalog.FlowRepo
	steps    *catalog.StepResolver
	schedule cron.Schedule
	logger   *slog.Logger

	now func() time.Time
}

// Config — конфигурация Auditor.
type Config struct {
	Flows  *catalog.FlowRepo
	Steps  *catalog.StepResolver
	Cron   string
	Logger *slog.Logger
}

// NewAuditor проверяет cron-выражение и создаёт Auditor.
func NewAuditor(cfg Config) (*Auditor, error) {
	sched, err := ParseSchedule(cfg.Cron)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Auditor{
		flows:    cfg.Flows,
		steps:    cfg.Steps,
		schedule: sched,
		logger:   logger.With("component", "catalog-audit"),
		now:      time.Now,
	}, nil
}

// Tick выполняет один аудит.
func (a *Auditor) Tick(ctx context.Context) (catalog.AuditReport, error) {
	start := a.now()

	report, err := catalog.Audit(ctx, a.flows, a.steps)
	if err != nil {
		telemetry.CatalogAudits.WithLabelValues("error").Inc()
		a.logger.Error("catalog audit failed", "error", err)
		return report, err
	}

	telemetry.CatalogBrokenRefs.Set(float64(len(report.Broken)))
	telemetry.CatalogPreconditionIssues.Set(float64(len(report.Preconditions)))

	for _, issue := range report.Preconditions {
		a.logger.Warn("step precondition issue",
			"flow_id", issue.FlowID,
			"step_id", issue.StepID,
			"precondition", issue.Precondition,
			"kind", issue.Kind,
		)
	}

	if report.OK() {
		telemetry.CatalogAudits.WithLabelValues("ok").Inc()
		a.logger.Info("catalog audit passed",
			"flows", report.Flows,
			"step_refs", report.Steps,
			"duration", time.Since(start),
		)
		return report, nil
	}

	telemetry.CatalogAudits.WithLabelValues("broken").Inc()
	for _, ref := range report.Broken {
		a.logger.Warn("broken step reference", "flow_id", ref.FlowID, "step_id", ref.StepID)
	}
	a.logger.Warn("catalog audit found broken references",
		"flows", report.Flows,
		"step_refs", report.Steps,
		"broken", len(report.Broken),
	)
	return report, nil
}

// Run выполняет аудит сразу и далее по расписанию до отмены ctx.
func (a *Auditor) Run(ctx context.Context) {
	_, _ = a.Tick(ctx)

	for {
		next := a.schedule.Next(a.now())
		a.logger.Debug("next catalog audit", "at", next)

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			_, _ = a.Tick(ctx)
		}
	}
}
