package create_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
)

const metricsOperation = "create"

// UseCase use case для создания слота доступности
type UseCase struct {
	slotRepo     SlotRepository
	txManager    TransactionManager
	publisher    EventPublisher
	metrics      Metrics
	idGenerator  IDGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		txManager:    txManager,
		publisher:    publisher,
		metrics:      metrics,
		idGenerator:  &UUIDGenerator{},
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания слота
// Проверка пересечений и вставка выполняются в одной транзакции под advisory lock
// на пару (пользователь, день недели). Уровень READ COMMITTED: снимок берётся на каждый запрос,
// поэтому после получения блокировки видны слоты, закоммиченные предыдущим владельцем блокировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSlot: user=%s, day=%d, time=%s-%s",
		req.UserID, req.DayOfWeek, req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSlot: validation failed: %v", err)
		uc.metrics.IncSlotOperation(metricsOperation, resultLabel(err))
		return nil, err
	}

	var result *domain.AvailabilitySlot

	// 2. Проверяем пересечения и создаем слот в транзакции
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 2.1. Блокируем пару (пользователь, день), чтобы параллельные создания не прошли проверку одновременно
		if err := uc.slotRepo.LockUserDay(txCtx, req.UserID, req.DayOfWeek); err != nil {
			uc.logger.Error("CreateSlot: failed to lock user=%s day=%d: %v", req.UserID, req.DayOfWeek, err)
			return fmt.Errorf("%w: failed to lock user day: %v", ErrInternal, err)
		}

		// 2.2. Получаем существующие слоты пользователя на этот день
		existing, err := uc.slotRepo.GetByUserAndDay(txCtx, req.UserID, req.DayOfWeek)
		if err != nil {
			uc.logger.Error("CreateSlot: failed to get slots: %v", err)
			return fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
		}

		// 2.3. Проверяем пересечение (граничные случаи не считаются)
		if overlapping := domain.FindOverlappingSlot(existing, req.DayOfWeek, req.StartTime, req.EndTime); overlapping != nil {
			uc.logger.Warn("CreateSlot: %s-%s overlaps slot id=%s (%s-%s) of user=%s",
				req.StartTime, req.EndTime, overlapping.ID, overlapping.StartTime, overlapping.EndTime, req.UserID)
			return ErrOverlapConflict
		}

		// 2.4. Сохраняем слот
		slot := &domain.AvailabilitySlot{
			ID:        uc.idGenerator.NewID(),
			UserID:    req.UserID,
			DayOfWeek: req.DayOfWeek,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
		}

		created, err := uc.slotRepo.Create(txCtx, slot)
		if err != nil {
			uc.logger.Error("CreateSlot: failed to create slot: %v", err)
			return fmt.Errorf("%w: failed to create slot: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		uc.metrics.IncSlotOperation(metricsOperation, resultLabel(err))
		if errors.Is(err, ErrOverlapConflict) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		// Ошибки commit/begin от менеджера транзакций
		uc.logger.Error("CreateSlot: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.IncSlotOperation(metricsOperation, "ok")
	uc.logger.Info("CreateSlot: successfully created slot id=%s for user=%s", result.ID, result.UserID)

	// 3. Уведомление отправляется асинхронно и не влияет на результат
	event := events.NewSlotEvent(domain.EventSlotCreated, result, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateSlot: failed to publish event for slot id=%s: %v", result.ID, err)
	}

	return fromDomainSlot(result), nil
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, ErrOverlapConflict):
		return "overlap_conflict"
	default:
		return "error"
	}
}
