package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// exclusionViolation is the Postgres error code raised when the
// bookings_no_overlap constraint rejects a write at commit time.
const exclusionViolation = "23P01"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, b *Booking) (*Booking, error) {
	// The WHERE NOT EXISTS clause and the exclusion constraint in the schema
	// together make this an atomic insert-if-no-overlap: either guard firing
	// surfaces as ErrSlotConflict.
	query := `
		INSERT INTO bookings (user_id, hall_id, date, start_time, end_time, status)
		SELECT $1, $2, $3, $4, $5, $6
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE hall_id = $2
			  AND date = $3
			  AND status IN ('pending', 'confirmed')
			  AND start_time < $5
			  AND end_time > $4
		)
		RETURNING id, user_id, hall_id, date, start_time, end_time, status, created_at
	`

	var created Booking
	err := r.db.GetContext(ctx, &created, query,
		b.UserID, b.HallID, b.Date, b.StartTime, b.EndTime, b.Status)
	if err != nil {
		return nil, translateConflict(err)
	}

	created.DateStr = created.Date.Format(DateFormat)
	return &created, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, user_id, hall_id, date, start_time, end_time, status, created_at
		FROM bookings
		WHERE id = $1
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	b.DateStr = b.Date.Format(DateFormat)
	return &b, nil
}

func (r *repository) FindActiveByHallAndDate(ctx context.Context, hallID int, date time.Time) ([]Booking, error) {
	query := `
		SELECT id, user_id, hall_id, date, start_time, end_time, status, created_at
		FROM bookings
		WHERE hall_id = $1 AND date = $2 AND status IN ('pending', 'confirmed')
		ORDER BY start_time ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, hallID, date)
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		bookings[i].DateStr = bookings[i].Date.Format(DateFormat)
	}
	return bookings, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int, status Status) (*Booking, error) {
	query := `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
		RETURNING id, user_id, hall_id, date, start_time, end_time, status, created_at
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	b.DateStr = b.Date.Format(DateFormat)
	return &b, nil
}

func (r *repository) Reschedule(ctx context.Context, id int, date time.Time, rng TimeRange, status Status) (*Booking, error) {
	// Same guarded shape as Insert, with the booking's own row excluded from
	// the comparison set.
	query := `
		UPDATE bookings
		SET date = $2, start_time = $3, end_time = $4, status = $5
		WHERE id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM bookings other
			WHERE other.hall_id = bookings.hall_id
			  AND other.id <> $1
			  AND other.date = $2
			  AND other.status IN ('pending', 'confirmed')
			  AND other.start_time < $4
			  AND other.end_time > $3
		  )
		RETURNING id, user_id, hall_id, date, start_time, end_time, status, created_at
	`

	var b Booking
	err := r.db.GetContext(ctx, &b, query, id, date, rng.Start, rng.End, status)
	if err != nil {
		return nil, translateConflict(err)
	}

	b.DateStr = b.Date.Format(DateFormat)
	return &b, nil
}

func (r *repository) FindByHallsInRange(ctx context.Context, hallIDs []int, from, to time.Time) ([]Booking, error) {
	if len(hallIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, user_id, hall_id, date, start_time, end_time, status, created_at
		FROM bookings
		WHERE hall_id IN (?) AND date BETWEEN ? AND ?
		ORDER BY date ASC, start_time ASC
	`, hallIDs, from, to)
	if err != nil {
		return nil, err
	}

	var bookings []Booking
	err = r.db.SelectContext(ctx, &bookings, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		bookings[i].DateStr = bookings[i].Date.Format(DateFormat)
	}
	return bookings, nil
}

func (r *repository) FindByUser(ctx context.Context, userID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.hall_id,
			b.date,
			b.start_time,
			b.end_time,
			b.status,
			b.created_at,
			h.name AS hall_name,
			h.sport AS sport,
			h.price_per_hour AS price_per_hour,
			u.username AS user_name
		FROM bookings b
		JOIN halls h ON b.hall_id = h.id
		JOIN users u ON b.user_id = u.id
		WHERE b.user_id = $1
		ORDER BY b.date DESC, b.start_time DESC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, userID)
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		bookings[i].Decorate()
	}
	return bookings, nil
}

func (r *repository) FindByManager(ctx context.Context, managerID int) ([]BookingWithDetails, error) {
	query := `
		SELECT
			b.id,
			b.user_id,
			b.hall_id,
			b.date,
			b.start_time,
			b.end_time,
			b.status,
			b.created_at,
			h.name AS hall_name,
			h.sport AS sport,
			h.price_per_hour AS price_per_hour,
			u.username AS user_name
		FROM bookings b
		JOIN halls h ON b.hall_id = h.id
		JOIN users u ON b.user_id = u.id
		WHERE h.manager_id = $1
		ORDER BY b.created_at DESC
	`

	var bookings []BookingWithDetails
	err := r.db.SelectContext(ctx, &bookings, query, managerID)
	if err != nil {
		return nil, err
	}

	for i := range bookings {
		bookings[i].Decorate()
	}
	return bookings, nil
}

func translateConflict(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotConflict
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == exclusionViolation {
		return ErrSlotConflict
	}
	return err
}
