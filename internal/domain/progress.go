package domain

// Progress — прогресс пользователя по одному flow.
//
// Ключ — только flow_id: пользователь в системе один.
type Progress struct {
	// FlowID — flow, к которому относится прогресс.
	FlowID string `json:"flow_id"`

	// CompletedSteps — step_id выполненных шагов, порядок не важен.
	CompletedSteps []string `json:"completed_steps"`

	// Documents — чек-лист собранных документов (название → собран).
	Documents map[string]bool `json:"documents,omitempty"`
}

// EmptyProgress возвращает прогресс по умолчанию для flow без сохранённых данных.
func EmptyProgress(flowID string) Progress {
	return Progress{FlowID: flowID, CompletedSteps: []string{}}
}

// Normalize заменяет nil-список пустым, чтобы в JSON всегда был массив.
func (p *Progress) Normalize() {
	if p.CompletedSteps == nil {
		p.CompletedSteps = []string{}
	}
}
