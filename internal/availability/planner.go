package availability

import (
	"time"

	"github.com/erfantq/Sports-Hall-Reservation/internal/booking"
)

// Halls accept bookings between 08:00 and midnight, carved into one-hour
// slots.
const (
	OpenHour    = 8
	CloseHour   = 24
	SlotsPerDay = CloseHour - OpenHour
)

type Slot struct {
	Start     booking.TimeOfDay `json:"start"`
	End       booking.TimeOfDay `json:"end"`
	Available bool              `json:"available"`
}

type DaySchedule struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// ComputeSlots derives the hourly availability grid for one hall over `days`
// consecutive dates starting at fromDate. A slot is unavailable when any
// pending or confirmed booking overlaps it; cancelled bookings never block a
// slot. The result is ordered by date, then by slot start.
//
// The grid is recomputed from the booking set on every call. Caching it would
// serve stale availability between bookings, which is exactly the window a
// double-booking slips through.
func ComputeSlots(bookings []booking.Booking, fromDate time.Time, days int) []DaySchedule {
	activeByDate := make(map[string][]booking.TimeRange)
	for _, b := range bookings {
		if !b.Status.IsActive() {
			continue
		}
		key := b.Date.Format(booking.DateFormat)
		activeByDate[key] = append(activeByDate[key], b.Range())
	}

	schedule := make([]DaySchedule, 0, days)
	for day := 0; day < days; day++ {
		date := fromDate.AddDate(0, 0, day)
		key := date.Format(booking.DateFormat)
		occupied := activeByDate[key]

		slots := make([]Slot, 0, SlotsPerDay)
		for hour := OpenHour; hour < CloseHour; hour++ {
			slot := booking.NewTimeRange(
				booking.TimeOfDay(hour*60),
				booking.TimeOfDay((hour+1)*60),
			)

			available := true
			for _, rng := range occupied {
				if slot.Overlaps(rng) {
					available = false
					break
				}
			}

			slots = append(slots, Slot{
				Start:     slot.Start,
				End:       slot.End,
				Available: available,
			})
		}

		schedule = append(schedule, DaySchedule{Date: key, Slots: slots})
	}

	return schedule
}
