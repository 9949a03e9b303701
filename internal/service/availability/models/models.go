package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// DeleteSuccessMessage сообщение об успешном удалении слота
const DeleteSuccessMessage = "Availability slot deleted successfully"

// SlotResponse ответ с данными слота доступности
type SlotResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	DayOfWeek int       `json:"dayOfWeek"` // 0 = воскресенье
	StartTime string    `json:"startTime"` // "09:00"
	EndTime   string    `json:"endTime"`   // "17:00"
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DeleteResponse ответ на удаление слота
type DeleteResponse struct {
	Message string `json:"message"`
}

// FromDomainSlot конвертирует доменный слот в ответ
func FromDomainSlot(slot *domain.AvailabilitySlot) *SlotResponse {
	if slot == nil {
		return nil
	}
	return &SlotResponse{
		ID:        slot.ID,
		UserID:    slot.UserID,
		DayOfWeek: int(slot.DayOfWeek),
		StartTime: slot.StartTime.String(),
		EndTime:   slot.EndTime.String(),
		CreatedAt: slot.CreatedAt,
		UpdatedAt: slot.UpdatedAt,
	}
}

// FromDomainSlotList конвертирует список слотов, пустой список сериализуется как []
func FromDomainSlotList(slots []*domain.AvailabilitySlot) []SlotResponse {
	result := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, *FromDomainSlot(slot))
	}
	return result
}
