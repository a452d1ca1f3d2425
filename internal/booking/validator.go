package booking

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("end time must be after start time")
	ErrSlotConflict = errors.New("hall is already booked for the requested time")
)

// Validator admits new bookings and reschedules. The in-process conflict
// check here is advisory: the repository repeats it atomically at write time,
// which is what actually prevents double-booking under concurrency.
type Validator struct {
	conflicts *ConflictChecker
}

func NewValidator(conflicts *ConflictChecker) *Validator {
	return &Validator{conflicts: conflicts}
}

// ValidateNew checks a booking request before creation.
func (v *Validator) ValidateNew(ctx context.Context, hallID int, date time.Time, rng TimeRange) error {
	return v.validate(ctx, hallID, date, rng, 0)
}

// ValidateChange re-checks an existing booking whose date or time range is
// being modified. When none of the time fields changed (a status-only
// update), the overlap check is skipped entirely.
func (v *Validator) ValidateChange(ctx context.Context, existing *Booking, date time.Time, rng TimeRange) error {
	unchanged := existing.Date.Equal(date) &&
		existing.StartTime == rng.Start &&
		existing.EndTime == rng.End
	if unchanged {
		return nil
	}
	return v.validate(ctx, existing.HallID, date, rng, existing.ID)
}

func (v *Validator) validate(ctx context.Context, hallID int, date time.Time, rng TimeRange, excludeID int) error {
	if !rng.IsValid() {
		return ErrInvalidRange
	}

	conflict, err := v.conflicts.HasConflict(ctx, hallID, date, rng, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrSlotConflict
	}

	return nil
}
