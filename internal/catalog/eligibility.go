package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/shaiso/Simplify/internal/domain"
)

// EligibilityFile — путь документа правил относительно каталога rules.
const EligibilityFile = "immigration/eligibility.yaml"

// Eligibility — документ правил подбора flow.
type Eligibility struct {
	// Version — версия документа.
	Version string `yaml:"version" json:"version,omitempty"`

	// Dimensions — вопросы анкеты и допустимые ответы.
	Dimensions []Dimension `yaml:"dimensions" json:"dimensions"`

	// Rules — упорядоченная таблица правил рекомендации.
	// Если пусто, используется встроенная таблица.
	Rules []RuleDef `yaml:"recommendation_rules" json:"recommendation_rules,omitempty"`
}

// Dimension — один вопрос анкеты.
type Dimension struct {
	ID       string        `yaml:"id" json:"id"`
	Question string        `yaml:"question" json:"question,omitempty"`
	Options  []DimensionOp `yaml:"options" json:"options"`
}

// DimensionOp — вариант ответа.
type DimensionOp struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label,omitempty"`
}

// RuleDef — описание правила рекомендации в документе.
type RuleDef struct {
	// Name — имя правила (для логов и метрик).
	Name string `yaml:"name"`

	// When — условия: все указанные поля анкеты должны совпасть.
	// Пустые поля не проверяются.
	When domain.IntakeAnswers `yaml:"when"`

	// Candidates — flows в порядке предпочтения.
	Candidates []CandidateDef `yaml:"candidates"`

	// NoMatchReason — объяснение, если ни одного кандидата нет в каталоге.
	NoMatchReason string `yaml:"no_match_reason"`
}

// CandidateDef — кандидат правила.
type CandidateDef struct {
	FlowID     string `yaml:"flow_id"`
	Confidence string `yaml:"confidence"`
	Reason     string `yaml:"reason"`
}

// LoadEligibility читает документ правил из каталога rulesDir.
//
// Отсутствие документа не является ошибкой: возвращается (nil, nil).
// Документ разбирается строго: неизвестный ключ, правило без условий
// или неизвестная confidence — ошибка.
func LoadEligibility(rulesDir string) (*Eligibility, error) {
	var doc Eligibility
	err := LoadYAMLStrict(filepath.Join(rulesDir, EligibilityFile), &doc)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load eligibility rules: %w", err)
	}

	for i, rule := range doc.Rules {
		if err := validateRule(rule); err != nil {
			return nil, fmt.Errorf("eligibility rule %d (%s): %w", i, rule.Name, err)
		}
	}

	return &doc, nil
}

func validateRule(rule RuleDef) error {
	if rule.When == (domain.IntakeAnswers{}) {
		return errors.New("rule has empty when")
	}
	if len(rule.Candidates) == 0 && rule.NoMatchReason == "" {
		return errors.New("rule has neither candidates nor no_match_reason")
	}
	for _, c := range rule.Candidates {
		if c.FlowID == "" {
			return errors.New("candidate has empty flow_id")
		}
		switch domain.Confidence(c.Confidence) {
		case domain.ConfidenceHigh, domain.ConfidenceMedium, domain.ConfidenceLow:
		default:
			return fmt.Errorf("candidate %s has unknown confidence %q", c.FlowID, c.Confidence)
		}
	}
	return nil
}
