package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/pkg/dbmetrics"
	"github.com/m04kA/barberflow/pkg/psqlbuilder"
)

// Repository репозиторий рабочих часов и отпусков барберов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var workingHoursColumns = []string{
	"id",
	"barber_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_working",
}

// GetWorkingHours получает расписание барбера на день недели (0 = понедельник)
func (r *Repository) GetWorkingHours(ctx context.Context, barberID int64, dayOfWeek int) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("barber_schedules").
		Where(squirrel.Eq{"barber_id": barberID, "day_of_week": dayOfWeek}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	var hours domain.WorkingHours
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&hours.ID,
		&hours.BarberID,
		&hours.DayOfWeek,
		&hours.StartTime,
		&hours.EndTime,
		&hours.IsWorking,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkingHoursNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetWorkingHours - scan: %w", ErrScanRow, err)
	}

	return &hours, nil
}

// GetWeek получает расписание барбера на всю неделю, отсортированное по дню недели
func (r *Repository) GetWeek(ctx context.Context, barberID int64) ([]*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workingHoursColumns...).
		From("barber_schedules").
		Where(squirrel.Eq{"barber_id": barberID}).
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	week := make([]*domain.WorkingHours, 0, 7)
	for rows.Next() {
		var hours domain.WorkingHours
		if err := rows.Scan(
			&hours.ID,
			&hours.BarberID,
			&hours.DayOfWeek,
			&hours.StartTime,
			&hours.EndTime,
			&hours.IsWorking,
		); err != nil {
			return nil, fmt.Errorf("%w: GetWeek - scan row: %w", ErrScanRow, err)
		}
		week = append(week, &hours)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetWeek - rows error: %w", ErrScanRow, err)
	}

	return week, nil
}

// UpsertWorkingHours создает или обновляет строку расписания (barber_id, day_of_week)
func (r *Repository) UpsertWorkingHours(ctx context.Context, hours *domain.WorkingHours) (*domain.WorkingHours, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("barber_schedules").
		Columns("barber_id", "day_of_week", "start_time", "end_time", "is_working").
		Values(hours.BarberID, hours.DayOfWeek, hours.StartTime, hours.EndTime, hours.IsWorking).
		Suffix("ON CONFLICT (barber_id, day_of_week) DO UPDATE SET " +
			"start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time, is_working = EXCLUDED.is_working " +
			"RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: UpsertWorkingHours - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&hours.ID); err != nil {
		return nil, fmt.Errorf("%w: UpsertWorkingHours - execute insert: %w", ErrExecQuery, err)
	}

	return hours, nil
}

// GetVacation получает отпуск барбера (не более одного на барбера)
func (r *Repository) GetVacation(ctx context.Context, barberID int64) (*domain.Vacation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("barber_id", "start_date", "end_date").
		From("barber_vacations").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetVacation - build select query: %v", ErrBuildQuery, err)
	}

	var vacation domain.Vacation
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&vacation.BarberID,
		&vacation.StartDate,
		&vacation.EndDate,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrVacationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetVacation - scan: %w", ErrScanRow, err)
	}

	// DATE приходит как полночь UTC, переносим календарную дату без сдвига
	vacation.StartDate = calendarDate(vacation.StartDate)
	vacation.EndDate = calendarDate(vacation.EndDate)

	return &vacation, nil
}

// SetVacation заменяет отпуск барбера
func (r *Repository) SetVacation(ctx context.Context, vacation *domain.Vacation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("barber_vacations").
		Columns("barber_id", "start_date", "end_date").
		Values(
			vacation.BarberID,
			vacation.StartDate.Format(domain.DateFormat),
			vacation.EndDate.Format(domain.DateFormat),
		).
		Suffix("ON CONFLICT (barber_id) DO UPDATE SET start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetVacation - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetVacation - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// DeleteVacation удаляет отпуск барбера
func (r *Repository) DeleteVacation(ctx context.Context, barberID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("barber_vacations").
		Where(squirrel.Eq{"barber_id": barberID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteVacation - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteVacation - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteVacation - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrVacationNotFound
	}

	return nil
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
