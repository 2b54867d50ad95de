package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/pkg/dbmetrics"
	"github.com/m04kA/barberflow/pkg/psqlbuilder"
)

const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

// bookingColumns колонки для scanBookings (порядок важен)
var bookingColumns = []string{
	"b.id",
	"b.service_id",
	"b.barber_id",
	"b.start_time",
	"b.end_time",
	"b.status",
	"b.customer_name",
	"b.customer_phone",
	"b.customer_email",
	"b.notes",
	"b.confirmation_code",
	"COALESCE(s.name, '')",
	"COALESCE(u.full_name, '')",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("services s ON s.id = b.service_id").
		LeftJoin("users u ON u.id = b.barber_id")
}

// lockIfInTx добавляет блокировку строк бронирований, если запрос идёт внутри транзакции
func lockIfInTx(ctx context.Context, sb squirrel.SelectBuilder) squirrel.SelectBuilder {
	if dbmetrics.IsInTransaction(ctx) {
		return sb.Suffix("FOR UPDATE OF b")
	}
	return sb
}

// Create создает новое бронирование.
// Пересечение с другим бронированием барбера ловит exclusion constraint и возвращается как ErrSlotNotAvailable.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"service_id",
			"barber_id",
			"start_time",
			"end_time",
			"status",
			"customer_name",
			"customer_phone",
			"customer_email",
			"notes",
			"confirmation_code",
		).
		Values(
			booking.ServiceID,
			booking.BarberID,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.CustomerName,
			booking.CustomerPhone,
			booking.CustomerEmail,
			booking.Notes,
			booking.ConfirmationCode,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID (внутри транзакции строка блокируется)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := lockIfInTx(ctx, selectBookings().Where(squirrel.Eq{"b.id": id})).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// ListActiveByBarber получает неотменённые бронирования барбера, пересекающие [from, to).
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка и вставка были атомарны.
func (r *Repository) ListActiveByBarber(ctx context.Context, barberID int64, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().
		Where(squirrel.Eq{"b.barber_id": barberID}).
		Where(squirrel.NotEq{"b.status": string(domain.StatusCancelled)}).
		Where(squirrel.Lt{"b.start_time": to}).
		Where(squirrel.Gt{"b.end_time": from}).
		OrderBy("b.start_time ASC")

	query, args, err := lockIfInTx(ctx, selectBuilder).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByBarber - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByBarber - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// List получает бронирования по фильтру (календарь, месяц, последние бронирования)
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(selectBookings(), filter)

	if filter.NewestFirst {
		selectBuilder = selectBuilder.OrderBy("b.created_at DESC")
	} else {
		selectBuilder = selectBuilder.OrderBy("b.start_time ASC")
	}

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// Count считает бронирования по фильтру (дашборд)
func (r *Repository) Count(ctx context.Context, filter domain.BookingsFilter) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("bookings b"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan: %w", ErrScanRow, err)
	}

	return count, nil
}

func applyFilter(sb squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.BarberID != nil {
		sb = sb.Where(squirrel.Eq{"b.barber_id": *filter.BarberID})
	}
	if filter.From != nil {
		sb = sb.Where(squirrel.GtOrEq{"b.start_time": *filter.From})
	}
	if filter.To != nil {
		sb = sb.Where(squirrel.Lt{"b.start_time": *filter.To})
	}
	if filter.CreatedFrom != nil {
		sb = sb.Where(squirrel.GtOrEq{"b.created_at": *filter.CreatedFrom})
	}

	if filter.Status != nil {
		sb = sb.Where(squirrel.Eq{"b.status": string(*filter.Status)})
	} else if !filter.IncludeCancelled {
		sb = sb.Where(squirrel.NotEq{"b.status": string(domain.StatusCancelled)})
	}

	return sb
}

// UpdateStatus обновляет статус бронирования
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateStatus", query, args)
}

// UpdateTime переносит бронирование на новый интервал
func (r *Repository) UpdateTime(ctx context.Context, id int64, start, end time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("start_time", start).
		Set("end_time", end).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateTime - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "UpdateTime", query, args)
}

// Update сохраняет отредактированное бронирование целиком (кроме кода подтверждения)
func (r *Repository) Update(ctx context.Context, booking *domain.Booking) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("service_id", booking.ServiceID).
		Set("barber_id", booking.BarberID).
		Set("start_time", booking.StartTime).
		Set("end_time", booking.EndTime).
		Set("status", booking.Status).
		Set("customer_name", booking.CustomerName).
		Set("customer_phone", booking.CustomerPhone).
		Set("customer_email", booking.CustomerEmail).
		Set("notes", booking.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": booking.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Update", query, args)
}

// Delete удаляет бронирование (физическое удаление)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func barberRankingQuery() squirrel.SelectBuilder {
	return psqlbuilder.Select("u.id", "u.full_name", "COUNT(b.id) AS bookings").
		From("users u").
		Join("bookings b ON b.barber_id = u.id").
		Where(squirrel.Eq{"u.role": string(domain.RoleBarber)}).
		GroupBy("u.id", "u.full_name").
		OrderBy("bookings DESC", "u.full_name ASC")
}

func topServicesQuery(limit uint64) squirrel.SelectBuilder {
	return psqlbuilder.Select("s.id", "s.name", "COUNT(b.id) AS bookings").
		From("services s").
		Join("bookings b ON b.service_id = s.id").
		GroupBy("s.id", "s.name").
		OrderBy("bookings DESC", "s.name ASC").
		Limit(limit)
}

// CountByBarber рейтинг барберов по числу бронирований за всё время.
// Барберы без бронирований в рейтинг не попадают.
func (r *Repository) CountByBarber(ctx context.Context) ([]domain.RankedCount, error) {
	query, args, err := barberRankingQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CountByBarber - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryRanking(ctx, "CountByBarber", query, args)
}

// TopServices самые популярные услуги
func (r *Repository) TopServices(ctx context.Context, limit int) ([]domain.RankedCount, error) {
	if limit <= 0 {
		limit = domain.TopServicesLimit
	}

	query, args, err := topServicesQuery(uint64(limit)).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: TopServices - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryRanking(ctx, "TopServices", query, args)
}

func (r *Repository) queryRanking(ctx context.Context, op, query string, args []interface{}) ([]domain.RankedCount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	ranking := make([]domain.RankedCount, 0)
	for rows.Next() {
		var item domain.RankedCount
		if err := rows.Scan(&item.ID, &item.Name, &item.Bookings); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		ranking = append(ranking, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return ranking, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.ServiceID,
			&booking.BarberID,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.CustomerName,
			&booking.CustomerPhone,
			&booking.CustomerEmail,
			&booking.Notes,
			&booking.ConfirmationCode,
			&booking.ServiceName,
			&booking.BarberName,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// mapConstraintError переводит нарушения ограничений PostgreSQL в ошибки репозитория
func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return nil
	}

	switch string(pqErr.Code) {
	case pgExclusionViolation:
		return fmt.Errorf("%w: %s", ErrSlotNotAvailable, pqErr.Constraint)
	case pgUniqueViolation:
		if pqErr.Constraint == "bookings_confirmation_code_key" {
			return ErrDuplicateCode
		}
	}
	return nil
}
