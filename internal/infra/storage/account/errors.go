package account

import "errors"

var (
	// ErrAccountNotFound возвращается, когда аккаунт не найден или удален
	ErrAccountNotFound = errors.New("account.repository: account not found")

	ErrBuildQuery = errors.New("account.repository: failed to build query")
	ErrExecQuery  = errors.New("account.repository: failed to execute query")
	ErrScanRow    = errors.New("account.repository: failed to scan row")
)
