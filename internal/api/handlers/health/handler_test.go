package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type stubPinger struct{ err error }

func (p stubPinger) PingContext(context.Context) error { return p.err }

func newTestHandler(db Pinger) *Handler {
	startedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	h := NewHandler(db, startedAt, logger.NewNop())
	h.now = func() time.Time { return startedAt.Add(90 * time.Second) }
	return h
}

func TestHandle_DatabaseConnected(t *testing.T) {
	rec := httptest.NewRecorder()

	newTestHandler(stubPinger{}).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","database":"connected","uptime":90}`, rec.Body.String())
}

func TestHandle_DatabaseDisconnected(t *testing.T) {
	rec := httptest.NewRecorder()

	newTestHandler(stubPinger{err: errors.New("refused")}).Handle(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"error","database":"disconnected","uptime":90}`, rec.Body.String())
}
