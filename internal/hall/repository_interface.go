package hall

import "context"

type Repository interface {
	Create(ctx context.Context, managerID int, req CreateHallRequest) (*Hall, error)
	FindByID(ctx context.Context, id int) (*Hall, error)
	Search(ctx context.Context, term string) ([]Hall, error)
	FindByManager(ctx context.Context, managerID int) ([]Hall, error)
	FindAll(ctx context.Context) ([]Hall, error)
	Update(ctx context.Context, id int, req UpdateHallRequest) (*Hall, error)
	Delete(ctx context.Context, id int) error
}
