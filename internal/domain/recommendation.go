package domain

// Confidence — уверенность рекомендации.
type Confidence string

const (
	// ConfidenceHigh — правило сработало, целевой flow есть в каталоге.
	ConfidenceHigh Confidence = "high"

	// ConfidenceMedium — предпочтительного flow нет, предложена замена.
	ConfidenceMedium Confidence = "medium"

	// ConfidenceLow — подходящего flow нет, нужен ручной выбор.
	ConfidenceLow Confidence = "low"
)

// ParseConfidence парсит строку в Confidence.
// Неизвестные значения считаются low.
func ParseConfidence(s string) Confidence {
	switch s {
	case "high":
		return ConfidenceHigh
	case "medium":
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Recommendation — результат подбора flow по анкете.
type Recommendation struct {
	// FlowID — рекомендованный flow; пустая строка означает "нет совпадения".
	FlowID string `json:"flow_id"`

	// Title — заголовок flow (из persona_id).
	Title string `json:"title"`

	// StepCount — количество шагов flow.
	StepCount int `json:"step_count"`

	// Reason — объяснение для пользователя.
	Reason string `json:"reason"`

	// Confidence — high, medium или low.
	Confidence Confidence `json:"confidence"`
}

// IsMatch возвращает true, если flow подобран.
func (r Recommendation) IsMatch() bool {
	return r.FlowID != ""
}
