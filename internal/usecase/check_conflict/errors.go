package check_conflict

import "errors"

var (
	// ErrInvalidIdentifier возвращается, когда ID пользователя не является UUID
	ErrInvalidIdentifier = errors.New("check_conflict: invalid user identifier")

	// ErrInvalidInput возвращается, когда не передан интервал времени
	ErrInvalidInput = errors.New("check_conflict: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_conflict: internal error")
)
