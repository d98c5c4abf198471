package catalog

import "errors"

// Ошибки каталога.
var (
	// ErrNotFound — файл flow не найден.
	ErrNotFound = errors.New("not found")

	// ErrNoData — ни один файл flow не удалось загрузить.
	ErrNoData = errors.New("no flows available")

	// ErrMissingStep — flow ссылается на несуществующий файл шага.
	// Это дефект данных, а не ошибка клиента.
	ErrMissingStep = errors.New("missing step file")

	// ErrInvalidFlow — документ flow не содержит обязательных полей.
	ErrInvalidFlow = errors.New("invalid flow document")
)

// ValidationError — ошибка валидации документа с контекстом.
type ValidationError struct {
	FlowID  string // flow, где произошла ошибка
	Field   string // поле, вызвавшее ошибку
	Message string // описание ошибки
	Err     error  // базовая ошибка
}

// Error реализует интерфейс error.
func (e *ValidationError) Error() string {
	if e.FlowID != "" {
		return "flow " + e.FlowID + ": " + e.Message
	}
	return e.Message
}

// Unwrap возвращает базовую ошибку.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError создаёт новую ошибку валидации.
func NewValidationError(flowID, field, message string, err error) *ValidationError {
	return &ValidationError{
		FlowID:  flowID,
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// MissingStepError — ссылка на отсутствующий шаг.
type MissingStepError struct {
	FlowID string
	StepID string
}

// Error реализует интерфейс error.
func (e *MissingStepError) Error() string {
	return "flow " + e.FlowID + " references missing step " + e.StepID
}

// Unwrap позволяет проверять errors.Is(err, ErrMissingStep).
func (e *MissingStepError) Unwrap() error {
	return ErrMissingStep
}
