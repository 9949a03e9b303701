package list_my_slots

import (
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
)

const (
	msgUnauthorized = "пользователь не аутентифицирован"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	slots, err := h.service.FindMySlots(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /availability/me - Failed to get slots: user_id=%s, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availability/me - Slots retrieved successfully: user_id=%s, count=%d", userID, len(slots))
	handlers.RespondJSON(w, http.StatusOK, slots)
}
