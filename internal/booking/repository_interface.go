package booking

import (
	"context"
	"time"
)

type Repository interface {
	// Insert persists a new booking only if no active booking on the same
	// hall and date overlaps its time range. The check and the write happen
	// in a single statement, backed by a database exclusion constraint, so
	// concurrent requests cannot both succeed (returns ErrSlotConflict).
	Insert(ctx context.Context, b *Booking) (*Booking, error)
	FindByID(ctx context.Context, id int) (*Booking, error)
	FindActiveByHallAndDate(ctx context.Context, hallID int, date time.Time) ([]Booking, error)
	UpdateStatus(ctx context.Context, id int, status Status) (*Booking, error)
	Reschedule(ctx context.Context, id int, date time.Time, rng TimeRange, status Status) (*Booking, error)
	FindByHallsInRange(ctx context.Context, hallIDs []int, from, to time.Time) ([]Booking, error)
	FindByUser(ctx context.Context, userID int) ([]BookingWithDetails, error)
	FindByManager(ctx context.Context, managerID int) ([]BookingWithDetails, error)
}
