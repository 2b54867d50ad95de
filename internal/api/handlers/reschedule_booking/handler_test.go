package reschedule_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/api/middleware"
	"github.com/m04kA/barberflow/internal/domain"
	rescheduleBooking "github.com/m04kA/barberflow/internal/usecase/reschedule_booking"
	"github.com/m04kA/barberflow/pkg/logger"
)

var loc = time.FixedZone("MSK", 3*60*60)

type stubUseCase struct {
	last *rescheduleBooking.Request
	err  error
}

func (s *stubUseCase) Execute(_ context.Context, req *rescheduleBooking.Request) (*rescheduleBooking.Response, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &rescheduleBooking.Response{
		ID:        req.BookingID,
		StartTime: req.Start,
		EndTime:   req.End,
	}, nil
}

func patch(h *Handler, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+id+"/datetime", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	req = req.WithContext(middleware.WithUser(req.Context(), &domain.User{ID: 1, Role: domain.RoleAdmin}))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_LocalDateTime(t *testing.T) {
	uc := &stubUseCase{}
	h := NewHandler(uc, loc, logger.NewNop())

	rec := patch(h, "7", `{"startTime":"2025-03-10T15:00:00","endTime":"2025-03-10T15:30:00"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.True(t, uc.last.Start.Equal(time.Date(2025, 3, 10, 15, 0, 0, 0, loc)))
	assert.True(t, uc.last.End.Equal(time.Date(2025, 3, 10, 15, 30, 0, 0, loc)))
	assert.Equal(t, int64(7), uc.last.BookingID)
}

func TestHandle_ConflictNamesBooking(t *testing.T) {
	h := NewHandler(&stubUseCase{err: &rescheduleBooking.SlotConflictError{BookingID: 12}}, loc, logger.NewNop())

	rec := patch(h, "7", `{"startTime":"2025-03-10T15:00:00+03:00","endTime":"2025-03-10T15:30:00+03:00"}`)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "время занято (бронирование #12)", body.Message)
}

func TestHandle_Errors(t *testing.T) {
	const okBody = `{"startTime":"2025-03-10T15:00:00","endTime":"2025-03-10T15:30:00"}`

	tests := []struct {
		name string
		id   string
		body string
		err  error
		want int
	}{
		{"bad id", "x", okBody, nil, http.StatusBadRequest},
		{"bad time", "7", `{"startTime":"15:00","endTime":"15:30"}`, nil, http.StatusBadRequest},
		{"not found", "7", okBody, rescheduleBooking.ErrBookingNotFound, http.StatusNotFound},
		{"forbidden", "7", okBody, rescheduleBooking.ErrAccessDenied, http.StatusForbidden},
		{"terminal status", "7", okBody, rescheduleBooking.ErrCannotReschedule, http.StatusConflict},
		{"end before start", "7", okBody, rescheduleBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "7", okBody, rescheduleBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.err}, loc, logger.NewNop())
			assert.Equal(t, tt.want, patch(h, tt.id, tt.body).Code)
		})
	}
}
