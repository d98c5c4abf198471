package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shaiso/Simplify/internal/catalog"
)

// ErrorCode — код ошибки API.
type ErrorCode string

const (
	ErrCodeBadRequest    ErrorCode = "BAD_REQUEST"
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeMissingStep   ErrorCode = "MISSING_STEP"
	ErrCodeNoData        ErrorCode = "NO_DATA"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse — структура ответа с ошибкой.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail — детали ошибки.
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// JSON отправляет JSON ответ.
//
// Тело кодируется до записи статуса: если data не кодируется,
// клиент получает 500 INTERNAL_ERROR, а не 200 с пустым телом.
func JSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Default().Error("failed to encode response", "error", err)
		status = http.StatusInternalServerError
		body, _ = json.Marshal(ErrorResponse{
			Error: ErrorDetail{
				Code:    ErrCodeInternalError,
				Message: "encode response: " + err.Error(),
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// Error отправляет ответ с ошибкой.
func Error(w http.ResponseWriter, status int, code ErrorCode, message string) {
	JSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// BadRequest отправляет ошибку 400.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// NotFound отправляет ошибку 404.
func NotFound(w http.ResponseWriter, message string) {
	Error(w, http.StatusNotFound, ErrCodeNotFound, message)
}

// InternalError отправляет ошибку 500 с текстом ошибки.
func InternalError(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, ErrCodeInternalError, err.Error())
}

// HandleCatalogError преобразует ошибку каталога в HTTP ответ.
// Возвращает false, если err == nil.
func HandleCatalogError(w http.ResponseWriter, logger *slog.Logger, err error, notFoundMsg string) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, catalog.ErrNotFound):
		NotFound(w, notFoundMsg)
	case errors.Is(err, catalog.ErrMissingStep):
		logger.Error("catalog references missing step", "error", err)
		Error(w, http.StatusInternalServerError, ErrCodeMissingStep, err.Error())
	case errors.Is(err, catalog.ErrNoData):
		logger.Error("catalog is empty", "error", err)
		Error(w, http.StatusInternalServerError, ErrCodeNoData, err.Error())
	default:
		InternalError(w, logger, err)
	}
	return true
}
