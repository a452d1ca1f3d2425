package user

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, username, email, passwordHash, role, phoneNumber string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int) (*User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, id int, email, phoneNumber string) (*User, error)
	UpdatePassword(ctx context.Context, id int, passwordHash string) error

	SaveResetCode(ctx context.Context, email, code string) error
	FindResetCode(ctx context.Context, email, code string, notBefore time.Time) (bool, error)
	DeleteResetCodes(ctx context.Context, email string) error
}
