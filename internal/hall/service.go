package hall

import (
	"context"
	"errors"

	"github.com/erfantq/Sports-Hall-Reservation/internal/auth"
)

var ErrNotOwner = errors.New("hall belongs to another manager")

type Service interface {
	Create(ctx context.Context, managerID int, req CreateHallRequest) (*Hall, error)
	GetByID(ctx context.Context, id int) (*Hall, error)
	List(ctx context.Context, searchTerm string) ([]Hall, error)
	ListByManager(ctx context.Context, managerID int) ([]Hall, error)
	Update(ctx context.Context, userID int, role string, id int, req UpdateHallRequest) (*Hall, error)
	Delete(ctx context.Context, userID int, role string, id int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, managerID int, req CreateHallRequest) (*Hall, error) {
	return s.repo.Create(ctx, managerID, req)
}

func (s *service) GetByID(ctx context.Context, id int) (*Hall, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, searchTerm string) ([]Hall, error) {
	return s.repo.Search(ctx, searchTerm)
}

func (s *service) ListByManager(ctx context.Context, managerID int) ([]Hall, error) {
	return s.repo.FindByManager(ctx, managerID)
}

func (s *service) Update(ctx context.Context, userID int, role string, id int, req UpdateHallRequest) (*Hall, error) {
	if err := s.authorize(ctx, userID, role, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

func (s *service) Delete(ctx context.Context, userID int, role string, id int) error {
	if err := s.authorize(ctx, userID, role, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) authorize(ctx context.Context, userID int, role string, hallID int) error {
	existing, err := s.repo.FindByID(ctx, hallID)
	if err != nil {
		return err
	}
	if role != auth.RoleSysAdmin && existing.ManagerID != userID {
		return ErrNotOwner
	}
	return nil
}
