package repo

import "errors"

// Ошибки журнала событий.
var (
	// ErrNotFound — события с таким ID нет.
	ErrNotFound = errors.New("event not found")

	// ErrAlreadyExists — событие с таким ID уже записано (повторная доставка).
	ErrAlreadyExists = errors.New("event already recorded")
)
