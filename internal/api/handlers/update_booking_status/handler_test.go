package update_booking_status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barberflow/internal/api/middleware"
	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/service/bookings"
	"github.com/m04kA/barberflow/internal/service/bookings/models"
	"github.com/m04kA/barberflow/pkg/logger"
)

type stubService struct {
	last *models.UpdateStatusRequest
	err  error
}

func (s *stubService) UpdateStatus(_ context.Context, _ *domain.User, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: req.BookingID, Status: req.Status}, nil
}

func patch(h *Handler, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/bookings/"+id+"/status", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"bookingId": id})
	req = req.WithContext(middleware.WithUser(req.Context(), &domain.User{ID: 1, Role: domain.RoleReceptionist}))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.NewNop())

	rec := patch(h, "3", `{"status":"confirmed"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), svc.last.BookingID)
	assert.Equal(t, "confirmed", svc.last.Status)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		id   string
		body string
		err  error
		want int
	}{
		{"bad id", "x", `{"status":"confirmed"}`, nil, http.StatusBadRequest},
		{"bad body", "3", `{}{`, nil, http.StatusBadRequest},
		{"forbidden", "3", `{"status":"confirmed"}`, bookings.ErrAccessDenied, http.StatusForbidden},
		{"not found", "3", `{"status":"confirmed"}`, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"unknown status", "3", `{"status":"done"}`, bookings.ErrInvalidStatus, http.StatusBadRequest},
		{"bad transition", "3", `{"status":"pending"}`, bookings.ErrInvalidTransition, http.StatusConflict},
		{"internal", "3", `{"status":"confirmed"}`, bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, logger.NewNop())
			assert.Equal(t, tt.want, patch(h, tt.id, tt.body).Code)
		})
	}
}
