package access

import "errors"

var (
	// ErrAccountNotFound аккаунт из токена не существует или удален
	ErrAccountNotFound = errors.New("access: account not found")

	ErrInternal = errors.New("access: internal error")
)
