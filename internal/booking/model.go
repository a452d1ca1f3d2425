package booking

import "time"

// Status is the lifecycle state of a booking.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// IsActive reports whether a booking in this status occupies its slot.
// Cancelled bookings free the slot immediately.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

type Booking struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	HallID    int       `db:"hall_id" json:"hall_id"`
	Date      time.Time `db:"date" json:"-"`
	DateStr   string    `db:"-" json:"date"`
	StartTime TimeOfDay `db:"start_time" json:"start_time"`
	EndTime   TimeOfDay `db:"end_time" json:"end_time"`
	Status    Status    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Range returns the booking's occupied interval.
func (b *Booking) Range() TimeRange {
	return TimeRange{Start: b.StartTime, End: b.EndTime}
}

// BookingWithDetails joins the hall and user columns used by history and
// manager listings. Price is derived from duration and the hall's hourly rate.
type BookingWithDetails struct {
	Booking
	HallName     string  `db:"hall_name" json:"hall_name"`
	Sport        string  `db:"sport" json:"sport"`
	PricePerHour int     `db:"price_per_hour" json:"-"`
	UserName     string  `db:"user_name" json:"user_name"`
	DurationHrs  float64 `db:"-" json:"duration_hours"`
	Price        int     `db:"-" json:"price"`
}

// Decorate fills the derived presentation fields.
func (d *BookingWithDetails) Decorate() {
	d.DateStr = d.Date.Format(DateFormat)
	d.DurationHrs = d.Range().DurationHours()
	d.Price = int(d.DurationHrs * float64(d.PricePerHour))
}

type CreateBookingRequest struct {
	HallID    int    `json:"hall_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

// UpdateBookingRequest carries a manager-side change: a status transition,
// a reschedule, or both. Omitted time fields leave the slot untouched.
type UpdateBookingRequest struct {
	Status    string `json:"status"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
