package domain

import "strings"

// Flow — определение процедуры (например, получение ВНЖ в Словакии).
//
// Flow хранится в YAML-файле <flows>/<flow_id>.yaml и только ссылается
// на шаги: сами шаги лежат в отдельных документах.
type Flow struct {
	// FlowID — идентификатор flow, совпадает с именем файла без расширения.
	FlowID string `yaml:"flow_id" json:"flow_id"`

	// PersonaID — категория пользователя (например, "non_eu_employee").
	PersonaID string `yaml:"persona_id" json:"persona_id"`

	// Country — код страны ("SK").
	Country string `yaml:"country" json:"country"`

	// Version — версия документа в формате автора ("1.0").
	Version string `yaml:"version" json:"version"`

	// Steps — ссылки на шаги в порядке их перечисления в документе.
	Steps []StepRef `yaml:"steps" json:"steps"`
}

// StepRef — ссылка flow на документ шага.
type StepRef struct {
	// StepID — идентификатор шага (имя файла в каталоге steps).
	StepID string `yaml:"step_id" json:"step_id"`

	// Order — порядковый номер шага для отображения.
	Order int `yaml:"order" json:"order"`
}

// Header — заголовок flow без шагов (то, что отдаёт GET /flow/{id}).
type Header struct {
	FlowID    string `json:"flow_id"`
	PersonaID string `json:"persona_id"`
	Country   string `json:"country"`
	Version   string `json:"version"`
}

// Header возвращает заголовок flow.
func (f *Flow) Header() Header {
	return Header{
		FlowID:    f.FlowID,
		PersonaID: f.PersonaID,
		Country:   f.Country,
		Version:   f.Version,
	}
}

// Summary строит краткую запись для каталога.
func (f *Flow) Summary() FlowSummary {
	return FlowSummary{
		FlowID:    f.FlowID,
		PersonaID: f.PersonaID,
		Country:   f.Country,
		Version:   f.Version,
		StepCount: len(f.Steps),
		Title:     PersonaTitle(f.PersonaID),
	}
}

// FlowSummary — запись каталога flows (GET /flows).
type FlowSummary struct {
	FlowID    string `json:"flow_id"`
	PersonaID string `json:"persona_id"`
	Country   string `json:"country"`
	Version   string `json:"version"`
	StepCount int    `json:"step_count"`
	Title     string `json:"title"`
}

// Step — документ шага.
//
// Поля шага (title, description, official_links, ...) произвольны и
// отдаются клиенту как есть. Единственные поля, о которых знает сервер, —
// step_id и проставляемый при сборке order.
type Step map[string]any

// ID возвращает step_id документа.
func (s Step) ID() string {
	id, _ := s["step_id"].(string)
	return id
}

// SetOrder проставляет порядковый номер из ссылки flow.
func (s Step) SetOrder(order int) {
	s["order"] = order
}

// PersonaTitle строит заголовок из persona_id:
// "non_eu_employee" → "Non Eu Employee".
//
// Без учёта локали и аббревиатур: первая буква каждого слова заглавная,
// остальные строчные.
func PersonaTitle(personaID string) string {
	words := strings.Split(personaID, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(strings.ToLower(w))
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
