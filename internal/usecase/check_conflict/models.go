package check_conflict

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на проверку доступности
type Request struct {
	TargetUserID string    // Пользователь, чью доступность проверяем
	Start        time.Time // Начало интервала (абсолютное время)
	End          time.Time // Конец интервала (абсолютное время)
}

// Response результат проверки
type Response struct {
	IsAvailable bool
	Slot        *domain.AvailabilitySlot // Слот, целиком покрывающий интервал, nil если такого нет

	// Проекция интервала на неделю, для логов и отладки
	DayOfWeek domain.Weekday
	StartTime types.TimeOfDay
	EndTime   types.TimeOfDay
}
