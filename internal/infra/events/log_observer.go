package events

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// LogObserver пишет уведомления о событиях в лог
type LogObserver struct {
	logger Logger
}

// NewLogObserver создает наблюдателя, логирующего события
func NewLogObserver(logger Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) Name() string {
	return "log"
}

// Handle логирует событие
func (o *LogObserver) Handle(_ context.Context, event Event) error {
	day := domain.Weekday(event.DayOfWeek)

	switch event.Type {
	case domain.EventSlotCreated:
		o.logger.Info("[NOTIFY] user=%s added availability slot id=%s: %s %s-%s",
			event.UserID, event.SlotID, day, event.StartTime, event.EndTime)
	case domain.EventSlotDeleted:
		o.logger.Info("[NOTIFY] user=%s removed availability slot id=%s: %s %s-%s",
			event.UserID, event.SlotID, day, event.StartTime, event.EndTime)
	default:
		o.logger.Info("[NOTIFY] event type=%s id=%s user=%s", event.Type, event.ID, event.UserID)
	}

	return nil
}
