package create_slot

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	createSlot "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_slot"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

const userID = "5d7f3c2a-1111-4e2b-9d1c-2f7b7d6b9e01"

type stubUseCase struct {
	got  *createSlot.Request
	resp *createSlot.Response
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *createSlot.Request) (*createSlot.Response, error) {
	s.got = req
	return s.resp, s.err
}

func doRequest(h *Handler, body string, authenticated bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability", strings.NewReader(body))
	if authenticated {
		req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc := &stubUseCase{}
	uc.resp = &createSlot.Response{
		ID:        "0b7e4a8e-54f4-4a34-9bd4-6c4a2a0f7a11",
		UserID:    userID,
		DayOfWeek: 1,
		CreatedAt: created,
		UpdatedAt: created,
	}
	uc.resp.StartTime = 9 * 60
	uc.resp.EndTime = 17 * 60
	h := NewHandler(uc, logger.NewNop())

	rec := doRequest(h, `{"dayOfWeek":1,"startTime":"09:00","endTime":"17:00"}`, true)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"id":"0b7e4a8e-54f4-4a34-9bd4-6c4a2a0f7a11",
		"userId":"5d7f3c2a-1111-4e2b-9d1c-2f7b7d6b9e01",
		"dayOfWeek":1,
		"startTime":"09:00",
		"endTime":"17:00",
		"createdAt":"2026-03-01T12:00:00Z",
		"updatedAt":"2026-03-01T12:00:00Z"
	}`, rec.Body.String())

	require.NotNil(t, uc.got)
	assert.Equal(t, userID, uc.got.UserID)
	assert.Equal(t, "09:00", uc.got.StartTime.String())
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "overlap", err: fmt.Errorf("wrapped: %w", createSlot.ErrOverlapConflict), wantStatus: http.StatusConflict},
		{name: "invalid range", err: createSlot.ErrInvalidRange, wantStatus: http.StatusBadRequest},
		{name: "invalid input", err: createSlot.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", err: createSlot.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())

			rec := doRequest(h, `{"dayOfWeek":1,"startTime":"16:00","endTime":"18:00"}`, true)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestHandle_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `{`},
		{name: "empty body", body: ``},
		{name: "missing day", body: `{"startTime":"09:00","endTime":"17:00"}`},
		{name: "short time", body: `{"dayOfWeek":1,"startTime":"9:00","endTime":"17:00"}`},
		{name: "hour 24", body: `{"dayOfWeek":1,"startTime":"09:00","endTime":"24:00"}`},
		{name: "string day", body: `{"dayOfWeek":"1","startTime":"09:00","endTime":"17:00"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			h := NewHandler(uc, logger.NewNop())

			rec := doRequest(h, tt.body, true)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Nil(t, uc.got)
		})
	}
}

func TestHandle_Unauthenticated(t *testing.T) {
	h := NewHandler(&stubUseCase{}, logger.NewNop())

	rec := doRequest(h, `{"dayOfWeek":1,"startTime":"09:00","endTime":"17:00"}`, false)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
