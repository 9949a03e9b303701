package check_conflict

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// UseCase use case проверки, доступен ли пользователь в заданный интервал
type UseCase struct {
	slotRepo SlotRepository
	location *time.Location
	metrics  Metrics
	logger   Logger
}

// NewUseCase создает новый экземпляр use case
// location - часовой пояс, в котором абсолютное время переводится в день недели и время суток
func NewUseCase(slotRepo SlotRepository, location *time.Location, metrics Metrics, logger Logger) *UseCase {
	if location == nil {
		location = time.Local
	}
	return &UseCase{
		slotRepo: slotRepo,
		location: location,
		metrics:  metrics,
		logger:   logger,
	}
}

// Execute выполняет проверку доступности
//
// Интервал проецируется на неделю: день недели берётся по началу интервала,
// а начало и конец переводятся во время суток независимо друг от друга.
// Пользователь доступен, если один его слот целиком покрывает интервал
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckConflict: target=%s, range=%s..%s",
		req.TargetUserID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckConflict: validation failed: %v", err)
		return nil, err
	}

	// 2. Проецируем интервал на день недели и время суток
	day, start, end := domain.ProjectRange(req.Start, req.End, uc.location)

	// 3. Получаем слоты пользователя на этот день
	slots, err := uc.slotRepo.GetByUserAndDay(ctx, req.TargetUserID, day)
	if err != nil {
		uc.logger.Error("CheckConflict: failed to get slots for user=%s day=%d: %v", req.TargetUserID, day, err)
		return nil, fmt.Errorf("%w: failed to get slots: %v", ErrInternal, err)
	}

	// 4. Ищем первый слот, который целиком содержит интервал
	slot := domain.FindContainingSlot(slots, day, start, end)

	resp := &Response{
		IsAvailable: slot != nil,
		Slot:        slot,
		DayOfWeek:   day,
		StartTime:   start,
		EndTime:     end,
	}

	uc.metrics.IncConflictCheck(resp.IsAvailable)
	if resp.IsAvailable {
		uc.logger.Info("CheckConflict: user=%s available on %s %s-%s (slot id=%s)",
			req.TargetUserID, day, start, end, slot.ID)
	} else {
		uc.logger.Info("CheckConflict: user=%s not available on %s %s-%s (checked %d slots)",
			req.TargetUserID, day, start, end, len(slots))
	}

	return resp, nil
}
