package create_slot

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	createSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_slot"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var errMissingField = errors.New("missing required field")

// CreateSlotRequest HTTP request model
type CreateSlotRequest struct {
	DayOfWeek *int   `json:"dayOfWeek"` // 0 = воскресенье
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "17:00"
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с парсингом времени)
func (r *CreateSlotRequest) ToUseCaseRequest(userID string) (*createSlot.Request, error) {
	if r.DayOfWeek == nil {
		return nil, errMissingField
	}

	startTime, err := types.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createSlot.Request{
		UserID:    userID,
		DayOfWeek: domain.Weekday(*r.DayOfWeek),
		StartTime: startTime,
		EndTime:   endTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSlot.Response) *SlotResponse {
	return &SlotResponse{
		ID:        resp.ID,
		UserID:    resp.UserID,
		DayOfWeek: int(resp.DayOfWeek),
		StartTime: resp.StartTime.String(),
		EndTime:   resp.EndTime.String(),
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
