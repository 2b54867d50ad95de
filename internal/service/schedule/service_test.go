package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barberflow/internal/domain"
	scheduleRepo "github.com/m04kA/barberflow/internal/infra/storage/schedule"
	"github.com/m04kA/barberflow/internal/service/catalog"
	"github.com/m04kA/barberflow/internal/service/schedule/models"
	"github.com/m04kA/barberflow/pkg/logger"
	"github.com/m04kA/barberflow/pkg/types"
)

type memRepo struct {
	hours    map[int]*domain.WorkingHours
	vacation *domain.Vacation
}

func newMemRepo() *memRepo {
	return &memRepo{hours: map[int]*domain.WorkingHours{}}
}

func (r *memRepo) GetWeek(context.Context, int64) ([]*domain.WorkingHours, error) {
	week := make([]*domain.WorkingHours, 0)
	for d := 0; d < 7; d++ {
		if h, ok := r.hours[d]; ok {
			week = append(week, h)
		}
	}
	return week, nil
}

func (r *memRepo) UpsertWorkingHours(_ context.Context, h *domain.WorkingHours) (*domain.WorkingHours, error) {
	h.ID = int64(h.DayOfWeek + 1)
	r.hours[h.DayOfWeek] = h
	return h, nil
}

func (r *memRepo) GetVacation(context.Context, int64) (*domain.Vacation, error) {
	if r.vacation == nil {
		return nil, scheduleRepo.ErrVacationNotFound
	}
	return r.vacation, nil
}

func (r *memRepo) SetVacation(_ context.Context, v *domain.Vacation) error {
	r.vacation = v
	return nil
}

func (r *memRepo) DeleteVacation(context.Context, int64) error {
	if r.vacation == nil {
		return scheduleRepo.ErrVacationNotFound
	}
	r.vacation = nil
	return nil
}

type stubBarbers struct{}

func (stubBarbers) GetBarber(_ context.Context, id int64) (*domain.User, error) {
	if id != 1 {
		return nil, catalog.ErrBarberNotFound
	}
	return &domain.User{ID: 1, Role: domain.RoleBarber, IsActive: true}, nil
}

func TestGetBarberSchedule_FillsWholeWeek(t *testing.T) {
	repo := newMemRepo()
	repo.hours[0] = &domain.WorkingHours{BarberID: 1, DayOfWeek: 0, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("19:00"), IsWorking: true}
	svc := NewService(repo, stubBarbers{}, logger.NewNop())

	resp, err := svc.GetBarberSchedule(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, resp.Week, 7)
	assert.True(t, resp.Week[0].IsWorking)
	assert.Equal(t, "10:00", *resp.Week[0].StartTime)
	assert.False(t, resp.Week[6].IsWorking)
	assert.Equal(t, "Sunday", resp.Week[6].DayName)
	assert.Nil(t, resp.Vacation)
}

func TestSetWorkingHours_Validation(t *testing.T) {
	svc := NewService(newMemRepo(), stubBarbers{}, logger.NewNop())

	tests := []struct {
		name string
		req  models.SetWorkingHoursRequest
	}{
		{"start after end", models.SetWorkingHoursRequest{BarberID: 1, DayOfWeek: 1, StartTime: "19:00", EndTime: "10:00", IsWorking: true}},
		{"equal times", models.SetWorkingHoursRequest{BarberID: 1, DayOfWeek: 1, StartTime: "10:00", EndTime: "10:00", IsWorking: true}},
		{"bad day", models.SetWorkingHoursRequest{BarberID: 1, DayOfWeek: 7, StartTime: "10:00", EndTime: "19:00", IsWorking: true}},
		{"bad format", models.SetWorkingHoursRequest{BarberID: 1, DayOfWeek: 1, StartTime: "ten", EndTime: "19:00", IsWorking: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.SetWorkingHours(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSetWorkingHours_DayOffWithoutTimes(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, stubBarbers{}, logger.NewNop())

	resp, err := svc.SetWorkingHours(context.Background(), &models.SetWorkingHoursRequest{BarberID: 1, DayOfWeek: 6})
	require.NoError(t, err)
	assert.False(t, resp.IsWorking)
	assert.Nil(t, resp.StartTime)
	assert.False(t, repo.hours[6].IsWorking)
}

func TestSetWorkingHours_UnknownBarber(t *testing.T) {
	svc := NewService(newMemRepo(), stubBarbers{}, logger.NewNop())

	_, err := svc.SetWorkingHours(context.Background(), &models.SetWorkingHoursRequest{
		BarberID: 2, DayOfWeek: 1, StartTime: "10:00", EndTime: "19:00", IsWorking: true,
	})
	assert.ErrorIs(t, err, ErrBarberNotFound)
}

func TestVacationLifecycle(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo, stubBarbers{}, logger.NewNop())
	ctx := context.Background()

	_, err := svc.SetVacation(ctx, &models.SetVacationRequest{
		BarberID:  1,
		StartDate: time.Date(2025, 8, 10, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	resp, err := svc.SetVacation(ctx, &models.SetVacationRequest{
		BarberID:  1,
		StartDate: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-08-16", resp.ReturnDate)

	schedule, err := svc.GetBarberSchedule(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, schedule.Vacation)
	assert.Equal(t, "2025-08-01", schedule.Vacation.StartDate)

	require.NoError(t, svc.ClearVacation(ctx, 1))
	assert.ErrorIs(t, svc.ClearVacation(ctx, 1), ErrVacationNotFound)
}
