package stats

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type HallBookingCount struct {
	Name        string `db:"name" json:"name"`
	NumBookings int    `db:"num_bookings" json:"num_bookings"`
}

type SystemStats struct {
	TotalUsers        int                `json:"total_users"`
	TotalHalls        int                `json:"total_halls"`
	TotalBookings     int                `json:"total_bookings"`
	ConfirmedBookings int                `json:"confirmed_bookings"`
	PendingBookings   int                `json:"pending_bookings"`
	BookingsPerHall   []HallBookingCount `json:"bookings_per_hall"`
}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	var stats SystemStats

	countsQuery := `
		SELECT
			(SELECT COUNT(*) FROM users)    AS total_users,
			(SELECT COUNT(*) FROM halls)    AS total_halls,
			(SELECT COUNT(*) FROM bookings) AS total_bookings,
			(SELECT COUNT(*) FROM bookings WHERE status = 'confirmed') AS confirmed_bookings,
			(SELECT COUNT(*) FROM bookings WHERE status = 'pending')   AS pending_bookings
	`

	row := r.db.QueryRowxContext(ctx, countsQuery)
	if err := row.Scan(
		&stats.TotalUsers,
		&stats.TotalHalls,
		&stats.TotalBookings,
		&stats.ConfirmedBookings,
		&stats.PendingBookings,
	); err != nil {
		return nil, err
	}

	perHallQuery := `
		SELECT
			h.name AS name,
			COUNT(b.id) AS num_bookings
		FROM halls h
		LEFT JOIN bookings b ON b.hall_id = h.id
		GROUP BY h.id, h.name
		ORDER BY h.id
	`

	if err := r.db.SelectContext(ctx, &stats.BookingsPerHall, perHallQuery); err != nil {
		return nil, err
	}

	return &stats, nil
}
