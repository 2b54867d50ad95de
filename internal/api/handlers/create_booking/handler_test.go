package create_booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/api/middleware"
	"github.com/m04kA/barberflow/internal/domain"
	createBooking "github.com/m04kA/barberflow/internal/usecase/create_booking"
	"github.com/m04kA/barberflow/pkg/logger"
)

type stubUseCase struct {
	last      *createBooking.Request
	lastStaff *createBooking.StaffRequest
	actor     *domain.User
	resp      *createBooking.Response
	err       error
}

func (s *stubUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	s.last = req
	return s.resp, s.err
}

func (s *stubUseCase) ExecuteByStaff(_ context.Context, actor *domain.User, req *createBooking.StaffRequest) (*createBooking.Response, error) {
	s.actor = actor
	s.lastStaff = req
	return s.resp, s.err
}

const validBody = `{"serviceId":1,"barberId":2,"date":"2025-03-10","time":"14:30","customerName":"Иван","customerPhone":"+79990000000"}`

func post(h *Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	start := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:               42,
		ConfirmationCode: "MAD-ABC123",
		Status:           "pending",
		StartTime:        start,
		EndTime:          start.Add(30 * time.Minute),
		DurationMinutes:  30,
	}}
	h := NewHandler(uc, logger.NewNop())

	rec := post(h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body BookingResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, int64(42), body.ID)
	assert.Equal(t, "MAD-ABC123", body.ConfirmationCode)
	assert.Equal(t, "14:30", body.Time)
	assert.Equal(t, "2025-03-10", body.Date)

	assert.Equal(t, "14:30", uc.last.StartTime.String())
	assert.Equal(t, int64(2), uc.last.BarberID)
}

func TestHandle_Conflict(t *testing.T) {
	h := NewHandler(&stubUseCase{err: &createBooking.SlotConflictError{BookingID: 7}}, logger.NewNop())

	rec := post(h, validBody)
	require.Equal(t, http.StatusConflict, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Message, "#7")
}

func TestHandle_NotWorking(t *testing.T) {
	msg := "Барбер не работает в этот день (Sunday)"
	h := NewHandler(&stubUseCase{err: &createBooking.NotWorkingError{Message: msg}}, logger.NewNop())

	rec := post(h, validBody)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, msg, body.Message)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		ucErr error
		want  int
	}{
		{"malformed json", `{`, nil, http.StatusBadRequest},
		{"unknown field", `{"foo":1}`, nil, http.StatusBadRequest},
		{"bad time", `{"serviceId":1,"barberId":2,"date":"2025-03-10","time":"25:99"}`, nil, http.StatusBadRequest},
		{"service not found", validBody, createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"barber not found", validBody, createBooking.ErrBarberNotFound, http.StatusNotFound},
		{"in past", validBody, createBooking.ErrBookingInPast, http.StatusBadRequest},
		{"outside hours", validBody, createBooking.ErrOutsideWorkingHours, http.StatusBadRequest},
		{"db conflict", validBody, &createBooking.SlotConflictError{}, http.StatusConflict},
		{"invalid input", validBody, createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"internal", validBody, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.ucErr}, logger.NewNop())
			assert.Equal(t, tt.want, post(h, tt.body).Code)
		})
	}
}

func postStaff(h *Handler, body string, actor *domain.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/bookings", strings.NewReader(body))
	if actor != nil {
		req = req.WithContext(middleware.WithUser(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	h.HandleStaff(rec, req)
	return rec
}

func TestHandleStaff_Created(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	uc := &stubUseCase{resp: &createBooking.Response{
		ID:        43,
		Status:    "confirmed",
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
	}}
	h := NewHandler(uc, logger.NewNop())
	actor := &domain.User{ID: 2, Role: domain.RoleReceptionist}

	body := `{"serviceId":1,"barberId":2,"date":"2025-03-10","time":"09:00","customerName":"Иван","customerPhone":"+79990000000","status":"confirmed"}`
	rec := postStaff(h, body, actor)
	require.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, actor, uc.actor)
	assert.Equal(t, "confirmed", uc.lastStaff.Status)
	assert.Equal(t, "09:00", uc.lastStaff.StartTime.String())
	assert.Nil(t, uc.last)
}

func TestHandleStaff_Errors(t *testing.T) {
	actor := &domain.User{ID: 1, Role: domain.RoleAdmin}

	tests := []struct {
		name  string
		body  string
		actor *domain.User
		ucErr error
		want  int
	}{
		{"no user", validBody, nil, nil, http.StatusUnauthorized},
		{"trailing data", validBody + `{}`, actor, nil, http.StatusBadRequest},
		{"forbidden", validBody, actor, createBooking.ErrAccessDenied, http.StatusForbidden},
		{"bad status", validBody, actor, createBooking.ErrInvalidStatus, http.StatusBadRequest},
		{"conflict", validBody, actor, &createBooking.SlotConflictError{BookingID: 5}, http.StatusConflict},
		{"service not found", validBody, actor, createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"internal", validBody, actor, createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubUseCase{err: tt.ucErr}, logger.NewNop())
			assert.Equal(t, tt.want, postStaff(h, tt.body, tt.actor).Code)
		})
	}
}
