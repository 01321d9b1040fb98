package accounts

import "errors"

var (
	// ErrAccountNotFound возвращается, когда аккаунт не найден или удален
	ErrAccountNotFound = errors.New("account not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
