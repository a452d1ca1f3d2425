package stats

import (
	"testing"
	"time"

	"github.com/erfantq/Sports-Hall-Reservation/internal/availability"
	"github.com/erfantq/Sports-Hall-Reservation/internal/booking"
	"github.com/erfantq/Sports-Hall-Reservation/internal/hall"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(booking.DateFormat, s)
	require.NoError(t, err)
	return parsed
}

func bookingOn(hallID int, date time.Time, status booking.Status) booking.Booking {
	return booking.Booking{HallID: hallID, Date: date, Status: status}
}

func TestComputeWeeklyUsage(t *testing.T) {
	windowEnd := day(t, "2026-09-13")
	halls := []hall.Hall{
		{ID: 1, Name: "North Arena"},
		{ID: 2, Name: "South Court"},
	}
	inWindow := day(t, "2026-09-10")
	bookings := []booking.Booking{
		bookingOn(1, inWindow, booking.StatusConfirmed),
		bookingOn(1, inWindow, booking.StatusConfirmed),
		bookingOn(1, inWindow, booking.StatusConfirmed),
		bookingOn(1, inWindow, booking.StatusPending),
		bookingOn(1, inWindow, booking.StatusPending),
		bookingOn(1, inWindow, booking.StatusCancelled),
	}

	usage := ComputeWeeklyUsage(halls, bookings, windowEnd, 7)
	require.Len(t, usage, 2)

	north := usage[0]
	assert.Equal(t, 1, north.HallID)
	assert.Equal(t, "North Arena", north.HallName)
	assert.Equal(t, 112, north.TotalSlots)
	assert.Equal(t, 3, north.ReservedSlots)
	assert.Equal(t, 2, north.PendingSlots)
	assert.Equal(t, 1, north.CancelledSlots)
	// cancelled does not subtract: 112 - (3 + 2)
	assert.Equal(t, 107, north.AvailableSlots)

	south := usage[1]
	assert.Equal(t, 112, south.TotalSlots)
	assert.Equal(t, 112, south.AvailableSlots)
	assert.Equal(t, 0, south.ReservedSlots)
}

func TestComputeWeeklyUsage_WindowBounds(t *testing.T) {
	windowEnd := day(t, "2026-09-13")
	halls := []hall.Hall{{ID: 1, Name: "North Arena"}}
	bookings := []booking.Booking{
		bookingOn(1, day(t, "2026-09-07"), booking.StatusConfirmed), // first day, inside
		bookingOn(1, day(t, "2026-09-13"), booking.StatusConfirmed), // last day, inside
		bookingOn(1, day(t, "2026-09-06"), booking.StatusConfirmed), // before window
		bookingOn(1, day(t, "2026-09-14"), booking.StatusConfirmed), // after window
	}

	usage := ComputeWeeklyUsage(halls, bookings, windowEnd, 7)
	assert.Equal(t, 2, usage[0].ReservedSlots)
}

func TestComputeWeeklyUsage_AvailableFloorsAtZero(t *testing.T) {
	windowEnd := day(t, "2026-09-13")
	halls := []hall.Hall{{ID: 1, Name: "North Arena"}}

	inWindow := day(t, "2026-09-10")
	bookings := make([]booking.Booking, 0, 130)
	for i := 0; i < 130; i++ {
		bookings = append(bookings, bookingOn(1, inWindow, booking.StatusConfirmed))
	}

	usage := ComputeWeeklyUsage(halls, bookings, windowEnd, 7)
	assert.Equal(t, 130, usage[0].ReservedSlots)
	assert.Equal(t, 0, usage[0].AvailableSlots)
}

func TestComputeWeeklyUsage_BookingForUnknownHallIgnored(t *testing.T) {
	windowEnd := day(t, "2026-09-13")
	halls := []hall.Hall{{ID: 1, Name: "North Arena"}}
	bookings := []booking.Booking{
		bookingOn(99, day(t, "2026-09-10"), booking.StatusConfirmed),
	}

	usage := ComputeWeeklyUsage(halls, bookings, windowEnd, 7)
	assert.Equal(t, 0, usage[0].ReservedSlots)
	assert.Equal(t, availability.SlotsPerDay*7, usage[0].TotalSlots)
}
