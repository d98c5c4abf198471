package catalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/shaiso/Simplify/internal/domain"
)

// StepResolver загружает документы шагов, на которые ссылается flow.
type StepResolver struct {
	dir    string
	logger *slog.Logger
}

// NewStepResolver создаёт StepResolver для каталога шагов dir.
func NewStepResolver(dir string, logger *slog.Logger) *StepResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &StepResolver{dir: dir, logger: logger}
}

// Resolve загружает шаги flow и проставляет каждому order из ссылки.
//
// Порядок результата совпадает с порядком ссылок в документе flow,
// а не с полем order. Если хотя бы одного файла шага нет, возвращается
// MissingStepError (errors.Is(err, ErrMissingStep)); частичный результат
// не возвращается.
func (r *StepResolver) Resolve(ctx context.Context, flow *domain.Flow) ([]domain.Step, error) {
	steps := make([]domain.Step, 0, len(flow.Steps))

	for _, ref := range flow.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		step, err := r.Load(ref.StepID)
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, ErrNotFound) {
			return nil, &MissingStepError{FlowID: flow.FlowID, StepID: ref.StepID}
		}
		if err != nil {
			return nil, fmt.Errorf("load step %s: %w", ref.StepID, err)
		}

		step.SetOrder(ref.Order)
		steps = append(steps, step)

		r.logger.Debug("loaded step", "flow_id", flow.FlowID, "step_id", ref.StepID)
	}

	return steps, nil
}

// Load загружает один документ шага.
func (r *StepResolver) Load(stepID string) (domain.Step, error) {
	if !validID(stepID) {
		return nil, ErrNotFound
	}

	var step domain.Step
	if err := LoadYAML(documentPath(r.dir, stepID), &step); err != nil {
		return nil, err
	}
	if step == nil {
		// пустой документ
		return domain.Step{}, nil
	}
	for k, v := range step {
		step[k] = normalizeKeys(v)
	}
	return step, nil
}

// Exists проверяет наличие документа шага без его разбора.
func (r *StepResolver) Exists(stepID string) bool {
	if !validID(stepID) {
		return false
	}
	_, err := os.Stat(documentPath(r.dir, stepID))
	return err == nil
}
