package create_slot

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на создание слота
type Request struct {
	UserID    string          // ID владельца (из аутентификации)
	DayOfWeek domain.Weekday  // День недели, 0 = воскресенье
	StartTime types.TimeOfDay // Время начала (например, "09:00")
	EndTime   types.TimeOfDay // Время окончания (например, "17:00")
}

// Response модель ответа с созданным слотом
type Response struct {
	ID        string
	UserID    string
	DayOfWeek domain.Weekday
	StartTime types.TimeOfDay
	EndTime   types.TimeOfDay
	CreatedAt time.Time
	UpdatedAt time.Time
}

func fromDomainSlot(slot *domain.AvailabilitySlot) *Response {
	return &Response{
		ID:        slot.ID,
		UserID:    slot.UserID,
		DayOfWeek: slot.DayOfWeek,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		CreatedAt: slot.CreatedAt,
		UpdatedAt: slot.UpdatedAt,
	}
}
