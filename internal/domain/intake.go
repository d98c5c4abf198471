package domain

// Nationality — гражданство пользователя.
type Nationality string

const (
	NationalityEU    Nationality = "EU"
	NationalityNonEU Nationality = "NON_EU"
)

// EntryContext — где пользователь находится сейчас.
type EntryContext string

const (
	// EntryFirst — ещё не въехал в страну.
	EntryFirst EntryContext = "FIRST_ENTRY"

	// EntryInCountry — уже находится в стране.
	EntryInCountry EntryContext = "IN_COUNTRY"
)

// Purpose — цель переезда.
type Purpose string

const (
	PurposeEmployment Purpose = "EMPLOYMENT"
	PurposeBusiness   Purpose = "BUSINESS"
	PurposeStudy      Purpose = "STUDY"
	PurposeFamily     Purpose = "FAMILY"
)

// City — город проживания.
type City string

const (
	CityBratislava City = "BRATISLAVA"
	CityOther      City = "OTHER"
)

// IntakeAnswers — ответы анкеты (POST /recommend-flow).
//
// Значения не валидируются: неизвестное значение просто не совпадёт
// ни с одним правилом.
type IntakeAnswers struct {
	Nationality  Nationality  `json:"nationality" yaml:"nationality,omitempty"`
	EntryContext EntryContext `json:"entry_context" yaml:"entry_context,omitempty"`
	Purpose      Purpose      `json:"purpose" yaml:"purpose,omitempty"`
	City         City         `json:"city" yaml:"city,omitempty"`
}
