package recommend

import (
	"github.com/shaiso/Simplify/internal/catalog"
	"github.com/shaiso/Simplify/internal/domain"
)

// Идентификаторы flows, на которые ссылается встроенная таблица.
const (
	FlowNonEUEmployee = "sk_non_eu_employee_first_entry_bratislava_v1"
	FlowEUEmployee    = "sk_eu_employee_first_entry_bratislava_v1"
	FlowNonEUBusiness = "sk_non_eu_freelancer_setup_v1"
	FlowFamily        = "sk_family_reunification_v1"
)

// Predicate — условие правила.
type Predicate func(a domain.IntakeAnswers) bool

// Candidate — flow, который правило предлагает, и обоснование.
type Candidate struct {
	FlowID     string
	Confidence domain.Confidence
	Reason     string
}

// Rule — правило рекомендации.
type Rule struct {
	// Name — имя правила (для логов и метрик).
	Name string

	// Match — условие срабатывания.
	Match Predicate

	// Candidates — flows в порядке предпочтения.
	Candidates []Candidate

	// NoMatchReason — объяснение, если ни одного кандидата нет в каталоге.
	NoMatchReason string
}

// Тексты объяснений.
const (
	reasonNonEUEmployee = "As a non-EU citizen coming to Slovakia for employment, you need a national visa " +
		"to enter and a temporary residence permit for the purpose of employment."
	reasonEUEmployee = "As an EU/EEA/Swiss citizen you do not need a visa or a work permit. " +
		"You only have to register your residence, so the requirements are simplified."
	reasonNonEUBusiness = "As a non-EU citizen starting a business or freelancing, you need a temporary " +
		"residence permit for the purpose of business."
	reasonBusinessFallback = "The business setup flow is not available yet. The employee flow covers the same " +
		"residence permit procedure, so we suggest it instead; some steps will differ for a trade license."
	reasonFamily = "Joining a family member who lives in Slovakia requires a temporary residence permit " +
		"for the purpose of family reunification."
	reasonFamilyUnavailable = "A family reunification flow is not available yet. " +
		"Please select the flow that best matches your situation manually."
	reasonUnavailable = "The flow for your situation is not available yet. " +
		"Please select a flow manually."
	reasonDefault = "We could not find a flow that matches your answers. " +
		"Please review all available flows and select one manually."
)

// NoMatchTitle — заголовок результата без совпадения.
const NoMatchTitle = "Select a flow manually"

// DefaultRules возвращает встроенную таблицу правил.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "non_eu_employee_first_entry",
			Match: func(a domain.IntakeAnswers) bool {
				return a.Nationality == domain.NationalityNonEU &&
					a.Purpose == domain.PurposeEmployment &&
					a.EntryContext == domain.EntryFirst
			},
			Candidates: []Candidate{
				{FlowID: FlowNonEUEmployee, Confidence: domain.ConfidenceHigh, Reason: reasonNonEUEmployee},
			},
			NoMatchReason: reasonUnavailable,
		},
		{
			Name: "eu_employee",
			Match: func(a domain.IntakeAnswers) bool {
				return a.Nationality == domain.NationalityEU &&
					a.Purpose == domain.PurposeEmployment
			},
			Candidates: []Candidate{
				{FlowID: FlowEUEmployee, Confidence: domain.ConfidenceHigh, Reason: reasonEUEmployee},
			},
			NoMatchReason: reasonUnavailable,
		},
		{
			Name: "non_eu_business",
			Match: func(a domain.IntakeAnswers) bool {
				return a.Nationality == domain.NationalityNonEU &&
					a.Purpose == domain.PurposeBusiness
			},
			Candidates: []Candidate{
				{FlowID: FlowNonEUBusiness, Confidence: domain.ConfidenceHigh, Reason: reasonNonEUBusiness},
				{FlowID: FlowNonEUEmployee, Confidence: domain.ConfidenceMedium, Reason: reasonBusinessFallback},
			},
			NoMatchReason: reasonUnavailable,
		},
		{
			Name: "family",
			Match: func(a domain.IntakeAnswers) bool {
				return a.Purpose == domain.PurposeFamily
			},
			Candidates: []Candidate{
				{FlowID: FlowFamily, Confidence: domain.ConfidenceHigh, Reason: reasonFamily},
			},
			NoMatchReason: reasonFamilyUnavailable,
		},
	}
}

// RulesFromDocument строит таблицу правил из документа eligibility.
func RulesFromDocument(defs []catalog.RuleDef) []Rule {
	rules := make([]Rule, 0, len(defs))
	for _, def := range defs {
		rule := Rule{
			Name:          def.Name,
			Match:         matchFields(def.When),
			NoMatchReason: def.NoMatchReason,
		}
		if rule.NoMatchReason == "" {
			rule.NoMatchReason = reasonUnavailable
		}
		for _, c := range def.Candidates {
			rule.Candidates = append(rule.Candidates, Candidate{
				FlowID:     c.FlowID,
				Confidence: domain.ParseConfidence(c.Confidence),
				Reason:     c.Reason,
			})
		}
		rules = append(rules, rule)
	}
	return rules
}

// matchFields возвращает условие "все непустые поля when совпадают".
func matchFields(when domain.IntakeAnswers) Predicate {
	return func(a domain.IntakeAnswers) bool {
		if when.Nationality != "" && when.Nationality != a.Nationality {
			return false
		}
		if when.EntryContext != "" && when.EntryContext != a.EntryContext {
			return false
		}
		if when.Purpose != "" && when.Purpose != a.Purpose {
			return false
		}
		if when.City != "" && when.City != a.City {
			return false
		}
		return true
	}
}
