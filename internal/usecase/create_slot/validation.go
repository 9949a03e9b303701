package create_slot

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if _, err := uuid.Parse(req.UserID); err != nil {
		return fmt.Errorf("%w: userID must be a UUID", ErrInvalidInput)
	}

	if !req.DayOfWeek.IsValid() {
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	// Слот не может переходить через полночь и не может быть пустым
	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: %s >= %s", ErrInvalidRange, req.StartTime, req.EndTime)
	}

	return nil
}
