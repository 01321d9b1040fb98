package availability

import "errors"

var (
	// ErrSlotNotFound слот не найден или принадлежит другому компаньону
	ErrSlotNotFound = errors.New("slot not found")

	// ErrTooManySlots превышен лимит слотов на один день недели
	ErrTooManySlots = errors.New("too many slots for one day")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
