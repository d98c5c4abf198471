package catalog

import (
	"fmt"

	"github.com/shaiso/Simplify/internal/domain"
)

// Validate проверяет обязательные поля документа flow.
//
// Проверяет:
// - Наличие flow_id
// - Наличие step_id в каждой ссылке на шаг
//
// Уникальность step_id внутри flow не проверяется.
func Validate(flow *domain.Flow) error {
	if flow == nil {
		return NewValidationError("", "", "empty flow document", ErrInvalidFlow)
	}

	if flow.FlowID == "" {
		return NewValidationError("", "flow_id", "flow has empty flow_id", ErrInvalidFlow)
	}

	for i, ref := range flow.Steps {
		if ref.StepID == "" {
			return NewValidationError(flow.FlowID, "steps",
				fmt.Sprintf("step reference %d has empty step_id", i), ErrInvalidFlow)
		}
	}

	return nil
}
