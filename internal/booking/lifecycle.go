package booking

import (
	"errors"

	"github.com/erfantq/Sports-Hall-Reservation/internal/auth"
)

var (
	ErrInvalidStatus = errors.New("requested status must be confirmed or cancelled")
	ErrUnauthorized  = errors.New("actor may not change this booking's status")
)

// Actor is the principal requesting a status transition.
type Actor struct {
	UserID int
	Role   string
}

// CanManageHall reports whether the actor has authority over a hall owned by
// the given manager. System admins manage every hall.
func (a Actor) CanManageHall(managerID int) bool {
	if a.Role == auth.RoleSysAdmin {
		return true
	}
	return a.Role == auth.RoleManager && a.UserID == managerID
}

// Transition applies the booking status state machine: pending bookings move
// to confirmed or cancelled, and confirmed bookings may still be cancelled.
// Re-asserting a status the booking already holds is an idempotent no-op.
// hallManagerID identifies the hall's owner for the authority check.
func Transition(current Status, requested Status, actor Actor, hallManagerID int) (Status, error) {
	if requested != StatusConfirmed && requested != StatusCancelled {
		return current, ErrInvalidStatus
	}

	if !actor.CanManageHall(hallManagerID) {
		return current, ErrUnauthorized
	}

	return requested, nil
}
