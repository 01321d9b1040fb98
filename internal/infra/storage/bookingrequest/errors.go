package bookingrequest

import "errors"

var (
	ErrRequestNotFound = errors.New("bookingrequest.repository: booking request not found")

	ErrBuildQuery = errors.New("bookingrequest.repository: failed to build query")
	ErrExecQuery  = errors.New("bookingrequest.repository: failed to execute query")
	ErrScanRow    = errors.New("bookingrequest.repository: failed to scan row")
)
