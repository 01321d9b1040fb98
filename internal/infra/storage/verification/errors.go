package verification

import "errors"

var (
	// ErrVerificationNotFound возвращается, если клиент еще ничего не отправлял
	ErrVerificationNotFound = errors.New("verification.repository: verification not found")

	ErrBuildQuery = errors.New("verification.repository: failed to build query")
	ErrExecQuery  = errors.New("verification.repository: failed to execute query")
	ErrScanRow    = errors.New("verification.repository: failed to scan row")
)
