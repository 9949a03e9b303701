package check_conflict

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	// GetByUserAndDay возвращает слоты пользователя на день недели, отсортированные по времени начала
	GetByUserAndDay(ctx context.Context, userID string, day domain.Weekday) ([]*domain.AvailabilitySlot, error)
}

// Metrics счётчик проверок доступности
type Metrics interface {
	IncConflictCheck(available bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
