package stats

import (
	"time"

	"github.com/erfantq/Sports-Hall-Reservation/internal/availability"
	"github.com/erfantq/Sports-Hall-Reservation/internal/booking"
	"github.com/erfantq/Sports-Hall-Reservation/internal/hall"
)

// HallUsage is one row of the weekly utilization report. Field names follow
// the admin dashboard contract.
type HallUsage struct {
	HallID         int    `json:"hall_id"`
	HallName       string `json:"hall_name"`
	TotalSlots     int    `json:"total_slots"`
	ReservedSlots  int    `json:"reserved_slots"`
	PendingSlots   int    `json:"pending_slots"`
	CancelledSlots int    `json:"cancelled_slots"`
	AvailableSlots int    `json:"available_slots"`
}

// ComputeWeeklyUsage tallies per-hall slot usage over the inclusive window
// [windowEnd-windowDays+1, windowEnd]. Cancelled bookings are counted for
// reporting but do not reduce availability, since cancellation frees the
// slot. Available slots never go below zero.
func ComputeWeeklyUsage(halls []hall.Hall, bookings []booking.Booking, windowEnd time.Time, windowDays int) []HallUsage {
	windowStart := windowEnd.AddDate(0, 0, -windowDays+1)
	totalSlots := availability.SlotsPerDay * windowDays

	type tally struct {
		reserved  int
		pending   int
		cancelled int
	}
	byHall := make(map[int]*tally, len(halls))
	for _, h := range halls {
		byHall[h.ID] = &tally{}
	}

	for _, b := range bookings {
		if b.Date.Before(windowStart) || b.Date.After(windowEnd) {
			continue
		}
		t, ok := byHall[b.HallID]
		if !ok {
			continue
		}
		switch b.Status {
		case booking.StatusConfirmed:
			t.reserved++
		case booking.StatusPending:
			t.pending++
		case booking.StatusCancelled:
			t.cancelled++
		}
	}

	usage := make([]HallUsage, 0, len(halls))
	for _, h := range halls {
		t := byHall[h.ID]

		available := totalSlots - (t.reserved + t.pending)
		if available < 0 {
			available = 0
		}

		usage = append(usage, HallUsage{
			HallID:         h.ID,
			HallName:       h.Name,
			TotalSlots:     totalSlots,
			ReservedSlots:  t.reserved,
			PendingSlots:   t.pending,
			CancelledSlots: t.cancelled,
			AvailableSlots: available,
		})
	}

	return usage
}
