package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/barberflow/internal/domain"
	"github.com/m04kA/barberflow/pkg/dbmetrics"
	"github.com/m04kA/barberflow/pkg/psqlbuilder"
	"github.com/m04kA/barberflow/pkg/ptr"
)

func TestMapConstraintError(t *testing.T) {
	overlap := &pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"}
	assert.ErrorIs(t, mapConstraintError(overlap), ErrSlotNotAvailable)

	dup := &pq.Error{Code: "23505", Constraint: "bookings_confirmation_code_key"}
	assert.ErrorIs(t, mapConstraintError(dup), ErrDuplicateCode)

	otherUnique := &pq.Error{Code: "23505", Constraint: "something_else"}
	assert.Nil(t, mapConstraintError(otherUnique))

	assert.Nil(t, mapConstraintError(errors.New("plain")))
}

func TestApplyFilter(t *testing.T) {
	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	query, args, err := applyFilter(selectBookings(), domain.BookingsFilter{
		BarberID: ptr.Ptr(int64(3)),
		From:     &from,
		To:       &to,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "b.barber_id = $1")
	assert.Contains(t, query, "b.start_time >= $2")
	assert.Contains(t, query, "b.start_time < $3")
	assert.Contains(t, query, "b.status <> $4")
	assert.Equal(t, []interface{}{int64(3), from, to, "cancelled"}, args)

	status := domain.StatusPending
	query, args, err = applyFilter(selectBookings(), domain.BookingsFilter{Status: &status}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "b.status = $1")
	assert.Equal(t, []interface{}{"pending"}, args)
}

func TestApplyFilter_CreatedFrom(t *testing.T) {
	yearStart := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	query, args, err := applyFilter(psqlbuilder.Select("COUNT(*)").From("bookings b"), domain.BookingsFilter{
		CreatedFrom:      &yearStart,
		IncludeCancelled: true,
	}).ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "b.created_at >= $1")
	assert.NotContains(t, query, "b.status")
	assert.Equal(t, []interface{}{yearStart}, args)
}

func TestRankingQueries(t *testing.T) {
	query, args, err := barberRankingQuery().ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "JOIN bookings b ON b.barber_id = u.id")
	assert.Contains(t, query, "u.role = $1")
	assert.Contains(t, query, "GROUP BY u.id, u.full_name")
	assert.Contains(t, query, "ORDER BY bookings DESC")
	assert.Equal(t, []interface{}{"barber"}, args)

	query, _, err = topServicesQuery(5).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "JOIN bookings b ON b.service_id = s.id")
	assert.Contains(t, query, "LIMIT 5")
}

type noopTx struct {
	dbmetrics.DBExecutor
}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

func TestLockIfInTx(t *testing.T) {
	plain, _, err := lockIfInTx(context.Background(), selectBookings()).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, plain, "FOR UPDATE")

	txCtx := dbmetrics.WithTx(context.Background(), noopTx{})
	locked, _, err := lockIfInTx(txCtx, selectBookings()).ToSql()
	require.NoError(t, err)
	assert.Contains(t, locked, "FOR UPDATE OF b")
}
