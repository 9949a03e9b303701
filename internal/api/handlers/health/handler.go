package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
)

const pingTimeout = 2 * time.Second

// Response тело ответа health check
type Response struct {
	Status   string  `json:"status"`   // ok | error
	Database string  `json:"database"` // connected | disconnected
	Uptime   float64 `json:"uptime"`   // секунды с запуска процесса
}

type Handler struct {
	db        Pinger
	startedAt time.Time
	now       func() time.Time
	logger    Logger
}

func NewHandler(db Pinger, startedAt time.Time, logger Logger) *Handler {
	return &Handler{
		db:        db,
		startedAt: startedAt,
		now:       time.Now,
		logger:    logger,
	}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	uptime := h.now().Sub(h.startedAt).Seconds()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Warn("GET /health - Database ping failed: %v", err)
		handlers.RespondJSON(w, http.StatusServiceUnavailable, Response{
			Status:   "error",
			Database: "disconnected",
			Uptime:   uptime,
		})
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Status:   "ok",
		Database: "connected",
		Uptime:   uptime,
	})
}
