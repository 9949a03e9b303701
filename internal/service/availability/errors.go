package availability

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("availability slot not found")

	// ErrOwnershipViolation возвращается при попытке удалить чужой слот
	ErrOwnershipViolation = errors.New("you can only delete your own availability slots")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
