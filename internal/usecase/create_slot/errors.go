package create_slot

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_slot: invalid input data")

	// ErrInvalidRange возвращается, когда время начала не раньше времени окончания
	ErrInvalidRange = errors.New("create_slot: startTime must be before endTime")

	// ErrOverlapConflict возвращается, когда слот пересекается с существующим слотом пользователя
	ErrOverlapConflict = errors.New("create_slot: slot overlaps with an existing availability slot")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_slot: internal error")
)
