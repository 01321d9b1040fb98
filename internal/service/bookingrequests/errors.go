package bookingrequests

import "errors"

var (
	// ErrRequestNotFound запрос не найден или аккаунт не является его участником
	ErrRequestNotFound = errors.New("booking request not found")

	// ErrInvalidDate дата в прошлом или в неверном формате
	ErrInvalidDate = errors.New("invalid requested date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
