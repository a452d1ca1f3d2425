package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erfantq/Sports-Hall-Reservation/internal/email"
	"github.com/erfantq/Sports-Hall-Reservation/internal/hall"
	"github.com/erfantq/Sports-Hall-Reservation/internal/logger"
	"github.com/erfantq/Sports-Hall-Reservation/internal/metrics"
	"github.com/erfantq/Sports-Hall-Reservation/internal/user"
)

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrHallNotFound     = errors.New("hall not found")
	ErrMalformedRequest = errors.New("invalid date or time format")
)

type Service interface {
	Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error)
	Update(ctx context.Context, actor Actor, bookingID int, req UpdateBookingRequest) (*Booking, error)
	ListForUser(ctx context.Context, userID int) ([]BookingWithDetails, error)
	ListForManager(ctx context.Context, managerID int) ([]BookingWithDetails, error)
}

type service struct {
	repo      Repository
	hallRepo  hall.Repository
	userRepo  user.Repository
	validator *Validator
	emails    *email.Service
}

func NewService(repo Repository, hallRepo hall.Repository, userRepo user.Repository, emails *email.Service) Service {
	return &service{
		repo:      repo,
		hallRepo:  hallRepo,
		userRepo:  userRepo,
		validator: NewValidator(NewConflictChecker(repo)),
		emails:    emails,
	}
}

func (s *service) Create(ctx context.Context, userID int, req CreateBookingRequest) (*Booking, error) {
	date, rng, err := parseSchedule(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	h, err := s.hallRepo.FindByID(ctx, req.HallID)
	if err != nil {
		return nil, ErrHallNotFound
	}

	if err := s.validator.ValidateNew(ctx, h.ID, date, rng); err != nil {
		if errors.Is(err, ErrSlotConflict) {
			metrics.RecordSlotConflict()
		}
		return nil, err
	}

	created, err := s.repo.Insert(ctx, &Booking{
		UserID:    userID,
		HallID:    h.ID,
		Date:      date,
		StartTime: rng.Start,
		EndTime:   rng.End,
		Status:    StatusPending,
	})
	if err != nil {
		// The write-time guard can still fire when a concurrent request won
		// the slot between our read and the insert.
		if errors.Is(err, ErrSlotConflict) {
			metrics.RecordSlotConflict()
		}
		return nil, err
	}

	metrics.RecordBookingCreated()
	s.notify(ctx, created, h.Name)

	return created, nil
}

func (s *service) Update(ctx context.Context, actor Actor, bookingID int, req UpdateBookingRequest) (*Booking, error) {
	existing, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	h, err := s.hallRepo.FindByID(ctx, existing.HallID)
	if err != nil {
		return nil, ErrHallNotFound
	}

	date, rng, timesChanged, err := mergeSchedule(existing, req)
	if err != nil {
		return nil, err
	}

	newStatus := existing.Status
	if req.Status != "" {
		newStatus, err = Transition(existing.Status, Status(req.Status), actor, h.ManagerID)
		if err != nil {
			return nil, err
		}
	} else if !actor.CanManageHall(h.ManagerID) {
		return nil, ErrUnauthorized
	}

	if timesChanged {
		if err := s.validator.ValidateChange(ctx, existing, date, rng); err != nil {
			if errors.Is(err, ErrSlotConflict) {
				metrics.RecordSlotConflict()
			}
			return nil, err
		}
	}

	var updated *Booking
	if timesChanged {
		updated, err = s.repo.Reschedule(ctx, bookingID, date, rng, newStatus)
	} else {
		updated, err = s.repo.UpdateStatus(ctx, bookingID, newStatus)
	}
	if err != nil {
		if errors.Is(err, ErrSlotConflict) {
			metrics.RecordSlotConflict()
		}
		return nil, err
	}

	if updated.Status != existing.Status {
		metrics.RecordBookingTransition(string(updated.Status))
		s.notify(ctx, updated, h.Name)
	}

	return updated, nil
}

func (s *service) ListForUser(ctx context.Context, userID int) ([]BookingWithDetails, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *service) ListForManager(ctx context.Context, managerID int) ([]BookingWithDetails, error) {
	return s.repo.FindByManager(ctx, managerID)
}

func (s *service) notify(ctx context.Context, b *Booking, hallName string) {
	u, err := s.userRepo.FindByID(ctx, b.UserID)
	if err != nil {
		logger.Errorf("Failed to load user %d for booking notification: %v", b.UserID, err)
		return
	}

	date := b.Date.Format(DateFormat)
	timeRange := fmt.Sprintf("%s - %s", b.StartTime, b.EndTime)

	switch b.Status {
	case StatusPending:
		err = s.emails.SendBookingReceived(ctx, u.Email, u.Username, hallName, date, timeRange)
	case StatusConfirmed:
		err = s.emails.SendBookingConfirmed(ctx, u.Email, u.Username, hallName, date, timeRange)
	case StatusCancelled:
		err = s.emails.SendBookingCancelled(ctx, u.Email, u.Username, hallName, date, timeRange)
	}
	if err != nil {
		logger.Errorf("Failed to queue booking notification for %s: %v", u.Email, err)
	}
}

func parseSchedule(dateStr, startStr, endStr string) (time.Time, TimeRange, error) {
	date, err := time.Parse(DateFormat, dateStr)
	if err != nil {
		return time.Time{}, TimeRange{}, ErrMalformedRequest
	}

	start, err := ParseTimeOfDay(startStr)
	if err != nil {
		return time.Time{}, TimeRange{}, ErrMalformedRequest
	}

	end, err := ParseTimeOfDay(endStr)
	if err != nil {
		return time.Time{}, TimeRange{}, ErrMalformedRequest
	}

	return date, NewTimeRange(start, end), nil
}

// mergeSchedule resolves the schedule an update request asks for, falling
// back to the booking's current fields where the request leaves them out.
func mergeSchedule(existing *Booking, req UpdateBookingRequest) (time.Time, TimeRange, bool, error) {
	date := existing.Date
	rng := existing.Range()

	if req.Date != "" {
		parsed, err := time.Parse(DateFormat, req.Date)
		if err != nil {
			return time.Time{}, TimeRange{}, false, ErrMalformedRequest
		}
		date = parsed
	}
	if req.StartTime != "" {
		parsed, err := ParseTimeOfDay(req.StartTime)
		if err != nil {
			return time.Time{}, TimeRange{}, false, ErrMalformedRequest
		}
		rng.Start = parsed
	}
	if req.EndTime != "" {
		parsed, err := ParseTimeOfDay(req.EndTime)
		if err != nil {
			return time.Time{}, TimeRange{}, false, ErrMalformedRequest
		}
		rng.End = parsed
	}

	changed := !date.Equal(existing.Date) ||
		rng.Start != existing.StartTime ||
		rng.End != existing.EndTime

	return date, rng, changed, nil
}
