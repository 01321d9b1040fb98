package verification

import "errors"

var (
	// ErrVerificationNotFound клиент еще не отправлял данные на верификацию
	ErrVerificationNotFound = errors.New("verification not found")

	// ErrApplicationNotFound заявка не найдена
	ErrApplicationNotFound = errors.New("application not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
