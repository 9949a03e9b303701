package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Event доменное событие сервиса доступности
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	UserID     string    `json:"userId"`
	SlotID     string    `json:"slotId"`
	DayOfWeek  int       `json:"dayOfWeek"`
	StartTime  string    `json:"startTime"`
	EndTime    string    `json:"endTime"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewSlotEvent создает событие по слоту
func NewSlotEvent(eventType string, slot *domain.AvailabilitySlot, occurredAt time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		UserID:     slot.UserID,
		SlotID:     slot.ID,
		DayOfWeek:  int(slot.DayOfWeek),
		StartTime:  slot.StartTime.String(),
		EndTime:    slot.EndTime.String(),
		OccurredAt: occurredAt.UTC(),
	}
}
