package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
)

const metricsOperationDelete = "delete"

// Service сервис для чтения и удаления слотов доступности
type Service struct {
	slotRepo  SlotRepository
	txManager TransactionManager
	publisher EventPublisher
	metrics   Metrics
	logger    Logger
	now       func() time.Time
}

// NewService создает новый экземпляр сервиса
func NewService(
	slotRepo SlotRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		slotRepo:  slotRepo,
		txManager: txManager,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// FindMySlots получает все слоты пользователя, отсортированные по дню недели и времени начала
func (s *Service) FindMySlots(ctx context.Context, userID string) ([]models.SlotResponse, error) {
	s.logger.Info("FindMySlots: fetching slots for user=%s", userID)

	var slots []*domain.AvailabilitySlot
	err := s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		slots, err = s.slotRepo.GetByUserID(txCtx, userID)
		return err
	})
	if err != nil {
		s.logger.Error("FindMySlots: repository error for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: FindMySlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("FindMySlots: successfully fetched %d slots for user=%s", len(slots), userID)
	return models.FromDomainSlotList(slots), nil
}

// Remove удаляет слот пользователя
// Чужой слот не удаляется и не выдаётся за отсутствующий: возвращается ErrOwnershipViolation
func (s *Service) Remove(ctx context.Context, userID, slotID string) (*models.DeleteResponse, error) {
	s.logger.Info("Remove: deleting slot id=%s by user=%s", slotID, userID)

	if _, err := uuid.Parse(slotID); err != nil {
		s.logger.Warn("Remove: invalid slot id=%q", slotID)
		return nil, fmt.Errorf("%w: slot id must be a UUID", ErrInvalidInput)
	}

	var deleted *domain.AvailabilitySlot

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// Получаем слот
		slot, err := s.slotRepo.GetByID(txCtx, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("Remove: slot id=%s not found", slotID)
				return ErrSlotNotFound
			}
			s.logger.Error("Remove: repository error for slot id=%s: %v", slotID, err)
			return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
		}

		// Проверяем владельца
		if !slot.IsOwnedBy(userID) {
			s.logger.Warn("Remove: user=%s is not the owner of slot id=%s", userID, slotID)
			return ErrOwnershipViolation
		}

		// Удаляем слот
		if err := s.slotRepo.Delete(txCtx, slotID); err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				s.logger.Warn("Remove: slot id=%s not found during deletion", slotID)
				return ErrSlotNotFound
			}
			s.logger.Error("Remove: repository error for slot id=%s: %v", slotID, err)
			return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
		}

		deleted = slot
		return nil
	})
	if err != nil {
		s.metrics.IncSlotOperation(metricsOperationDelete, deleteResultLabel(err))
		if errors.Is(err, ErrSlotNotFound) || errors.Is(err, ErrOwnershipViolation) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		s.logger.Error("Remove: transaction failed for slot id=%s: %v", slotID, err)
		return nil, fmt.Errorf("%w: Remove - transaction failed: %v", ErrInternal, err)
	}

	s.metrics.IncSlotOperation(metricsOperationDelete, "ok")
	s.logger.Info("Remove: successfully deleted slot id=%s", slotID)

	event := events.NewSlotEvent(domain.EventSlotDeleted, deleted, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Remove: failed to publish event for slot id=%s: %v", slotID, err)
	}

	return &models.DeleteResponse{Message: models.DeleteSuccessMessage}, nil
}

func deleteResultLabel(err error) string {
	switch {
	case errors.Is(err, ErrSlotNotFound):
		return "not_found"
	case errors.Is(err, ErrOwnershipViolation):
		return "forbidden"
	default:
		return "error"
	}
}
