package check_conflict

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	checkConflict "github.com/m04kA/SMC-AvailabilityService/internal/usecase/check_conflict"
)

const (
	msgInvalidUserID    = "некорректный ID пользователя"
	msgMissingTimeRange = "необходимо указать startTime и endTime"
	msgInvalidStartTime = "некорректный startTime, ожидается дата и время в формате ISO 8601"
	msgInvalidEndTime   = "некорректный endTime, ожидается дата и время в формате ISO 8601"
)

type Handler struct {
	useCase  CheckConflictUseCase
	location *time.Location
	logger   Logger
}

// NewHandler создает handler, время без смещения разбирается в часовом поясе location
func NewHandler(useCase CheckConflictUseCase, location *time.Location, logger Logger) *Handler {
	if location == nil {
		location = time.Local
	}
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/availability/check/{userId}?startTime=...&endTime=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	targetUserID := mux.Vars(r)["userId"]

	query := r.URL.Query()
	startRaw := query.Get("startTime")
	endRaw := query.Get("endTime")

	if startRaw == "" || endRaw == "" {
		h.logger.Warn("GET /availability/check/{userId} - Missing time range: target=%s", targetUserID)
		handlers.RespondBadRequest(w, msgMissingTimeRange)
		return
	}

	start, err := parseInstant(startRaw, h.location)
	if err != nil {
		h.logger.Warn("GET /availability/check/{userId} - Invalid startTime %q: %v", startRaw, err)
		handlers.RespondBadRequest(w, msgInvalidStartTime)
		return
	}

	end, err := parseInstant(endRaw, h.location)
	if err != nil {
		h.logger.Warn("GET /availability/check/{userId} - Invalid endTime %q: %v", endRaw, err)
		handlers.RespondBadRequest(w, msgInvalidEndTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkConflict.Request{
		TargetUserID: targetUserID,
		Start:        start,
		End:          end,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkConflict.ErrInvalidIdentifier):
			h.logger.Warn("GET /availability/check/{userId} - Invalid user ID: %q", targetUserID)
			handlers.RespondBadRequest(w, msgInvalidUserID)

		case errors.Is(err, checkConflict.ErrInvalidInput):
			h.logger.Warn("GET /availability/check/{userId} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingTimeRange)

		default:
			h.logger.Error("GET /availability/check/{userId} - Failed to check availability: target=%s, error=%v",
				targetUserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /availability/check/{userId} - Checked: target=%s, available=%t", targetUserID, result.IsAvailable)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
