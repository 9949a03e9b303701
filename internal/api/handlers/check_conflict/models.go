package check_conflict

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
	checkConflict "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_conflict"
)

var errInvalidInstant = errors.New("invalid instant")

// Форматы без смещения трактуются как локальное время сервиса
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
}

// parseInstant разбирает RFC 3339 или ISO 8601 без смещения (в часовом поясе loc)
func parseInstant(raw string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t, nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errInvalidInstant
}

// ConflictResponse HTTP response model
type ConflictResponse struct {
	IsAvailable bool                 `json:"isAvailable"`
	Slot        *models.SlotResponse `json:"slot"` // null, если пользователь недоступен
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkConflict.Response) *ConflictResponse {
	return &ConflictResponse{
		IsAvailable: resp.IsAvailable,
		Slot:        models.FromDomainSlot(resp.Slot),
	}
}
