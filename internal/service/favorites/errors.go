package favorites

import "errors"

var (
	// ErrFavoriteNotFound компаньона нет в избранном
	ErrFavoriteNotFound = errors.New("favorite not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
