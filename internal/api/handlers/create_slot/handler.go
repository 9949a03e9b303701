package create_slot

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	createSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_slot"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	msgUnauthorized       = "пользователь не аутентифицирован"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingDayOfWeek   = "не указан день недели (dayOfWeek)"
	msgInvalidTime        = "некорректный формат времени, ожидается HH:MM"
	msgInvalidInput       = "некорректные данные слота, dayOfWeek должен быть от 0 до 6"
	msgInvalidRange       = "время начала должно быть раньше времени окончания"
	msgOverlapConflict    = "слот пересекается с существующим слотом доступности"
)

type Handler struct {
	useCase CreateSlotUseCase
	logger  Logger
}

func NewHandler(useCase CreateSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req CreateSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /availability - Failed to parse request: user_id=%s, error=%v", userID, err)
		if errors.Is(err, types.ErrInvalidTimeOfDay) || errors.Is(err, types.ErrTimeOfDayOutOfRange) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgMissingDayOfWeek)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createSlot.ErrOverlapConflict):
			h.logger.Warn("POST /availability - Overlap conflict: user_id=%s, day=%d, %s-%s",
				userID, useCaseReq.DayOfWeek, useCaseReq.StartTime, useCaseReq.EndTime)
			handlers.RespondConflict(w, msgOverlapConflict)

		case errors.Is(err, createSlot.ErrInvalidRange):
			h.logger.Warn("POST /availability - Invalid range: user_id=%s, %s-%s",
				userID, useCaseReq.StartTime, useCaseReq.EndTime)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, createSlot.ErrInvalidInput):
			h.logger.Warn("POST /availability - Invalid input: user_id=%s, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /availability - Failed to create slot: user_id=%s, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availability - Slot created successfully: slot_id=%s, user_id=%s", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
