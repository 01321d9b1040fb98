package accept_booking_request

import "errors"

var (
	// ErrRequestNotFound запрос не найден или адресован другому компаньону
	ErrRequestNotFound = errors.New("accept_booking_request: booking request not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("accept_booking_request: internal error")
)
