package availability

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
)

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	GetByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error)
	GetByUserID(ctx context.Context, userID string) ([]*domain.AvailabilitySlot, error)
	Delete(ctx context.Context, id string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс шины событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics счётчики операций со слотами
type Metrics interface {
	IncSlotOperation(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
