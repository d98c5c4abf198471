package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shaiso/Simplify/internal/domain"
)

// ErrEmptyFlowID — попытка сохранить или прочитать прогресс без flow_id.
var ErrEmptyFlowID = errors.New("flow_id is required")

// Store — хранилище прогресса.
type Store interface {
	// Get возвращает прогресс flow или пустой прогресс, если ничего не сохранено.
	Get(ctx context.Context, flowID string) (domain.Progress, error)

	// Save заменяет прогресс flow целиком.
	Save(ctx context.Context, p domain.Progress) error

	// Delete удаляет прогресс flow. Удаление несуществующего не ошибка.
	Delete(ctx context.Context, flowID string) error

	// Close освобождает ресурсы бэкенда.
	Close() error
}

// Общий формат хранения списков для SQL и Redis бэкендов.

type payload struct {
	CompletedSteps []string        `json:"completed_steps"`
	Documents      map[string]bool `json:"documents,omitempty"`
}

func encodeSteps(p domain.Progress) ([]byte, []byte, error) {
	steps := p.CompletedSteps
	if steps == nil {
		steps = []string{}
	}
	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal completed_steps: %w", err)
	}

	var docsJSON []byte
	if len(p.Documents) > 0 {
		docsJSON, err = json.Marshal(p.Documents)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal documents: %w", err)
		}
	}
	return stepsJSON, docsJSON, nil
}

func decodeSteps(flowID string, stepsJSON, docsJSON []byte) (domain.Progress, error) {
	p := domain.EmptyProgress(flowID)
	if len(stepsJSON) > 0 {
		if err := json.Unmarshal(stepsJSON, &p.CompletedSteps); err != nil {
			return domain.Progress{}, fmt.Errorf("unmarshal completed_steps: %w", err)
		}
	}
	if len(docsJSON) > 0 {
		if err := json.Unmarshal(docsJSON, &p.Documents); err != nil {
			return domain.Progress{}, fmt.Errorf("unmarshal documents: %w", err)
		}
	}
	p.Normalize()
	return p, nil
}

func clone(p domain.Progress) domain.Progress {
	out := domain.Progress{FlowID: p.FlowID}
	out.CompletedSteps = append([]string{}, p.CompletedSteps...)
	if len(p.Documents) > 0 {
		out.Documents = make(map[string]bool, len(p.Documents))
		for k, v := range p.Documents {
			out.Documents[k] = v
		}
	}
	return out
}
