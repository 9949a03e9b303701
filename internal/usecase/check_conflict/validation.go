package check_conflict

import (
	"fmt"

	"github.com/google/uuid"
)

// validateRequest валидирует входные данные запроса
// Конец раньше начала не считается ошибкой, проверяется только вхождение обеих границ в слот
func validateRequest(req *Request) error {
	if _, err := uuid.Parse(req.TargetUserID); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidIdentifier, req.TargetUserID)
	}

	if req.Start.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if req.End.IsZero() {
		return fmt.Errorf("%w: endTime is required", ErrInvalidInput)
	}

	return nil
}
