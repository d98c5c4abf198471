package catalog

import (
	"context"
	"fmt"

	"github.com/shaiso/Simplify/internal/domain"
)

// BrokenRef — ссылка flow на отсутствующий шаг.
type BrokenRef struct {
	FlowID string `json:"flow_id"`
	StepID string `json:"step_id"`
}

// String возвращает "flow_id → step_id".
func (b BrokenRef) String() string {
	return fmt.Sprintf("%s → %s", b.FlowID, b.StepID)
}

// AuditReport — результат проверки целостности каталога.
type AuditReport struct {
	// Flows — количество проверенных flows.
	Flows int `json:"flows"`

	// Steps — количество проверенных ссылок.
	Steps int `json:"steps"`

	// Broken — ссылки на отсутствующие шаги.
	Broken []BrokenRef `json:"broken,omitempty"`

	// Preconditions — нарушения порядка предусловий. На OK не влияют:
	// такой flow всё ещё собирается.
	Preconditions []PreconditionIssue `json:"preconditions,omitempty"`
}

// OK возвращает true, если битых ссылок нет.
func (r AuditReport) OK() bool {
	return len(r.Broken) == 0
}

// Audit проверяет, что все ссылки flows на шаги разрешаются, и
// проверяет предусловия шагов.
//
// В отличие от StepResolver.Resolve не останавливается на первой ошибке,
// а собирает все битые ссылки. Нечитаемый документ шага считается битой ссылкой.
func Audit(ctx context.Context, flows *FlowRepo, steps *StepResolver) (AuditReport, error) {
	all, err := flows.loadAll(ctx)
	if err != nil {
		return AuditReport{}, err
	}

	report := AuditReport{Flows: len(all)}
	for _, flow := range all {
		if err := ctx.Err(); err != nil {
			return AuditReport{}, err
		}

		loaded := make(map[string]domain.Step, len(flow.Steps))
		for _, ref := range flow.Steps {
			report.Steps++
			if !steps.Exists(ref.StepID) {
				report.Broken = append(report.Broken, BrokenRef{FlowID: flow.FlowID, StepID: ref.StepID})
				continue
			}
			step, err := steps.Load(ref.StepID)
			if err != nil {
				report.Broken = append(report.Broken, BrokenRef{FlowID: flow.FlowID, StepID: ref.StepID})
				continue
			}
			loaded[ref.StepID] = step
		}

		report.Preconditions = append(report.Preconditions, CheckPreconditions(&flow, loaded, steps.Exists)...)
	}
	return report, nil
}
