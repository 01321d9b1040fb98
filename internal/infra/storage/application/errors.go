package application

import "errors"

var (
	ErrApplicationNotFound = errors.New("application.repository: application not found")

	ErrBuildQuery = errors.New("application.repository: failed to build query")
	ErrExecQuery  = errors.New("application.repository: failed to execute query")
	ErrScanRow    = errors.New("application.repository: failed to scan row")
)
