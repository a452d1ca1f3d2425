package booking

import (
	"context"
	"time"
)

// activeFinder is the slice of the repository the conflict check needs.
type activeFinder interface {
	FindActiveByHallAndDate(ctx context.Context, hallID int, date time.Time) ([]Booking, error)
}

// ConflictChecker answers whether a requested time range collides with an
// active booking on the same hall and date. It is a pure read; the atomic
// write guard lives in the repository.
type ConflictChecker struct {
	repo activeFinder
}

func NewConflictChecker(repo activeFinder) *ConflictChecker {
	return &ConflictChecker{repo: repo}
}

// HasConflict reports whether any pending or confirmed booking on the hall
// and date overlaps rng. excludeID skips a booking's own prior record when
// re-validating an update; pass 0 on create.
func (c *ConflictChecker) HasConflict(ctx context.Context, hallID int, date time.Time, rng TimeRange, excludeID int) (bool, error) {
	active, err := c.repo.FindActiveByHallAndDate(ctx, hallID, date)
	if err != nil {
		return false, err
	}

	for _, b := range active {
		if b.ID == excludeID {
			continue
		}
		if rng.Overlaps(b.Range()) {
			return true, nil
		}
	}

	return false, nil
}
