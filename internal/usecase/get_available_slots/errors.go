package get_available_slots

import "errors"

var (
	// ErrCompanionNotFound возвращается, когда компаньон не найден или не одобрен
	ErrCompanionNotFound = errors.New("companion not found")

	// ErrInvalidDate возвращается, когда дата уже прошла
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
