package catalog

import "errors"

var (
	// ErrCompanionNotFound компаньон не найден или не одобрен
	ErrCompanionNotFound = errors.New("companion not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
