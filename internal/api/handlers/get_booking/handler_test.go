package get_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/barberflow/internal/api/middleware"
	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/internal/service/bookings"
	"github.com/m04kA/barberflow/internal/service/bookings/models"
	"github.com/m04kA/barberflow/pkg/logger"
)

type stubService struct {
	err error
}

func (s *stubService) GetByID(_ context.Context, _ *domain.User, id int64) (*models.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.BookingResponse{ID: id}, nil
}

func TestHandle(t *testing.T) {
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}

	tests := []struct {
		name string
		id   string
		user *domain.User
		err  error
		want int
	}{
		{"ok", "10", admin, nil, http.StatusOK},
		{"no user", "10", nil, nil, http.StatusUnauthorized},
		{"bad id", "abc", admin, nil, http.StatusBadRequest},
		{"not found", "10", admin, bookings.ErrBookingNotFound, http.StatusNotFound},
		{"foreign barber", "10", &domain.User{ID: 2, Role: domain.RoleBarber}, bookings.ErrAccessDenied, http.StatusForbidden},
		{"internal", "10", admin, bookings.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&stubService{err: tt.err}, logger.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/bookings/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"bookingId": tt.id})
			if tt.user != nil {
				req = req.WithContext(middleware.WithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
