package create_slot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
)

// SlotRepository интерфейс репозитория слотов доступности
type SlotRepository interface {
	Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error)
	GetByUserAndDay(ctx context.Context, userID string, day domain.Weekday) ([]*domain.AvailabilitySlot, error)
	LockUserDay(ctx context.Context, userID string, day domain.Weekday) error
}

// TransactionManager интерфейс для управления транзакциями
// Создание идёт в READ COMMITTED: под advisory lock каждый запрос видит уже закоммиченные слоты
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher интерфейс шины событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Metrics счётчики операций со слотами
type Metrics interface {
	IncSlotOperation(operation, result string)
}

// IDGenerator генератор идентификаторов слотов
type IDGenerator interface {
	NewID() string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// UUIDGenerator генерирует UUID v4
type UUIDGenerator struct{}

// NewID возвращает новый UUID
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
