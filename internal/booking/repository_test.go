package booking

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

var bookingColumns = []string{"id", "user_id", "hall_id", "date", "start_time", "end_time", "status", "created_at"}

func TestRepository_Insert(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := day(t, "2026-09-10")
	now := time.Now()

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(3, 1, date, mustTime(t, "10:00"), mustTime(t, "12:00"), StatusPending).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(10, 3, 1, date, "10:00:00", "12:00:00", "pending", now))

	b, err := repo.Insert(context.Background(), &Booking{
		UserID:    3,
		HallID:    1,
		Date:      date,
		StartTime: mustTime(t, "10:00"),
		EndTime:   mustTime(t, "12:00"),
		Status:    StatusPending,
	})
	require.NoError(t, err)
	require.Equal(t, 10, b.ID)
	require.Equal(t, "2026-09-10", b.DateStr)
	require.Equal(t, "10:00", b.StartTime.String())
}

func TestRepository_Insert_Conflict(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := day(t, "2026-09-10")

	// the guarded insert matched no rows: the slot is taken
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(3, 1, date, mustTime(t, "10:00"), mustTime(t, "12:00"), StatusPending).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Insert(context.Background(), &Booking{
		UserID:    3,
		HallID:    1,
		Date:      date,
		StartTime: mustTime(t, "10:00"),
		EndTime:   mustTime(t, "12:00"),
		Status:    StatusPending,
	})
	require.ErrorIs(t, err, ErrSlotConflict)
}

func TestRepository_Insert_ExclusionViolation(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := day(t, "2026-09-10")

	// a concurrent transaction won the slot; the constraint fires at commit
	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(3, 1, date, mustTime(t, "10:00"), mustTime(t, "12:00"), StatusPending).
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "bookings_no_overlap"})

	_, err := repo.Insert(context.Background(), &Booking{
		UserID:    3,
		HallID:    1,
		Date:      date,
		StartTime: mustTime(t, "10:00"),
		EndTime:   mustTime(t, "12:00"),
		Status:    StatusPending,
	})
	require.ErrorIs(t, err, ErrSlotConflict)
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := day(t, "2026-09-10")
	now := time.Now()

	mock.ExpectQuery("SELECT id, user_id, hall_id, date, start_time, end_time, status, created_at").
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(10, 3, 1, date, "10:00:00", "12:00:00", "confirmed", now))

	b, err := repo.FindByID(context.Background(), 10)
	require.NoError(t, err)
	require.Equal(t, StatusConfirmed, b.Status)

	mock.ExpectQuery("SELECT id, user_id, hall_id, date, start_time, end_time, status, created_at").
		WithArgs(404).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.FindByID(context.Background(), 404)
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_FindActiveByHallAndDate(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := day(t, "2026-09-10")
	now := time.Now()

	mock.ExpectQuery("SELECT id, user_id, hall_id, date, start_time, end_time, status, created_at").
		WithArgs(1, date).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(10, 3, 1, date, "08:00:00", "09:00:00", "pending", now).
			AddRow(11, 4, 1, date, "10:00:00", "12:00:00", "confirmed", now))

	active, err := repo.FindActiveByHallAndDate(context.Background(), 1, date)
	require.NoError(t, err)
	require.Len(t, active, 2)
	require.Equal(t, "08:00", active[0].StartTime.String())
	require.Equal(t, "2026-09-10", active[1].DateStr)
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := day(t, "2026-09-10")
	now := time.Now()

	mock.ExpectQuery("UPDATE bookings").
		WithArgs(10, StatusCancelled).
		WillReturnRows(sqlmock.NewRows(bookingColumns).
			AddRow(10, 3, 1, date, "10:00:00", "12:00:00", "cancelled", now))

	b, err := repo.UpdateStatus(context.Background(), 10, StatusCancelled)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, b.Status)
}

func TestRepository_Reschedule_Conflict(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := day(t, "2026-09-10")

	mock.ExpectQuery("UPDATE bookings").
		WithArgs(10, date, mustTime(t, "14:00"), mustTime(t, "16:00"), StatusPending).
		WillReturnError(sql.ErrNoRows)

	rng := NewTimeRange(mustTime(t, "14:00"), mustTime(t, "16:00"))
	_, err := repo.Reschedule(context.Background(), 10, date, rng, StatusPending)
	require.ErrorIs(t, err, ErrSlotConflict)
}

func TestRepository_FindByUser(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	date := day(t, "2026-09-10")
	now := time.Now()
	columns := append(append([]string{}, bookingColumns...),
		"hall_name", "sport", "price_per_hour", "user_name")

	mock.ExpectQuery("FROM bookings b").
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(10, 3, 1, date, "10:00:00", "12:00:00", "confirmed", now, "North Arena", "basketball", 200, "sam"))

	history, err := repo.FindByUser(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "North Arena", history[0].HallName)
	require.Equal(t, 2.0, history[0].DurationHrs)
	require.Equal(t, 400, history[0].Price)
	require.Equal(t, "2026-09-10", history[0].DateStr)
}
