package favorite

import "errors"

var (
	ErrFavoriteNotFound = errors.New("favorite.repository: favorite not found")

	ErrBuildQuery = errors.New("favorite.repository: failed to build query")
	ErrExecQuery  = errors.New("favorite.repository: failed to execute query")
	ErrScanRow    = errors.New("favorite.repository: failed to scan row")
)
