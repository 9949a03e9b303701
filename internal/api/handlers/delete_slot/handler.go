package delete_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability"
)

const (
	msgUnauthorized  = "пользователь не аутентифицирован"
	msgInvalidSlotID = "некорректный ID слота"
	msgNotFound      = "слот доступности не найден"
	msgForbidden     = "можно удалять только свои слоты доступности"
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

// Handle DELETE /api/v1/availability/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	slotID := mux.Vars(r)["id"]

	result, err := h.service.Remove(r.Context(), userID, slotID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("DELETE /availability/{id} - Invalid slot ID: %q", slotID)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, availability.ErrSlotNotFound):
			h.logger.Warn("DELETE /availability/{id} - Slot not found: slot_id=%s", slotID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrOwnershipViolation):
			h.logger.Warn("DELETE /availability/{id} - Ownership violation: slot_id=%s, user_id=%s", slotID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete slot: slot_id=%s, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Slot deleted successfully: slot_id=%s, user_id=%s", slotID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
