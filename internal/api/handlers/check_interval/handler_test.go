package check_interval

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barberflow/internal/service/availability"
	"github.com/m04kA/barberflow/internal/service/availability/models"
	"github.com/m04kA/barberflow/pkg/logger"
)

var loc = time.FixedZone("MSK", 3*60*60)

// bookedEngine: у барбера одно бронирование #7 на 10:00-10:30
type bookedEngine struct{}

func (bookedEngine) IsIntervalAvailable(_ context.Context, req *models.IntervalRequest) (*models.IntervalAvailability, error) {
	if !req.End.After(req.Start) {
		return nil, fmt.Errorf("%w: end must be after start", availability.ErrInvalidRequest)
	}
	bStart := time.Date(2025, 3, 10, 10, 0, 0, 0, loc)
	bEnd := bStart.Add(30 * time.Minute)
	excluded := req.ExcludeBookingID != nil && *req.ExcludeBookingID == 7
	if !excluded && bStart.Before(req.End) && bEnd.After(req.Start) {
		id := int64(7)
		return &models.IntervalAvailability{ConflictingBookingID: &id}, nil
	}
	return &models.IntervalAvailability{Available: true}, nil
}

func check(t *testing.T, query string) (*httptest.ResponseRecorder, IntervalAvailabilityResponse) {
	t.Helper()
	h := NewHandler(bookedEngine{}, loc, logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/barbers/3/interval-availability?"+query, nil)
	req = mux.SetURLVars(req, map[string]string{"barberId": "3"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	var body IntervalAvailabilityResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	}
	return rec, body
}

func TestHandle_Conflict(t *testing.T) {
	rec, body := check(t, "start=2025-03-10T10:00:00&end=2025-03-10T10:30:00")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, body.Available)
	require.NotNil(t, body.ConflictingBookingID)
	assert.Equal(t, int64(7), *body.ConflictingBookingID)
}

func TestHandle_ExcludeOwnBooking(t *testing.T) {
	rec, body := check(t, "start=2025-03-10T10:00:00&end=2025-03-10T10:30:00&excludeBookingId=7")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, body.Available)
	assert.Nil(t, body.ConflictingBookingID)
}

func TestHandle_Invalid(t *testing.T) {
	rec, _ := check(t, "start=2025-03-10T10:30:00&end=2025-03-10T10:00:00")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = check(t, "start=now&end=later")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = check(t, "start=2025-03-10T10:00:00&end=2025-03-10T10:30:00&excludeBookingId=x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
