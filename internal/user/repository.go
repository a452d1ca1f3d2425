package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/erfantq/Sports-Hall-Reservation/internal/db"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, username, email, password_hash, role, phone_number, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) Repository {
	return &repository{db: database}
}

func (r *repository) Create(ctx context.Context, username, email, passwordHash, role, phoneNumber string) (*User, error) {
	query := `
		INSERT INTO users (username, email, password_hash, role, phone_number)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + userColumns

	var u User
	err := r.db.GetContext(ctx, &u, query, username, email, passwordHash, role, phoneNumber)
	if err != nil {
		return nil, err
	}

	return &u, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *repository) findOne(ctx context.Context, query string, arg interface{}) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *repository) UpdateProfile(ctx context.Context, id int, email, phoneNumber string) (*User, error) {
	query := `
		UPDATE users
		SET email = $2, phone_number = $3
		WHERE id = $1
		RETURNING ` + userColumns

	var u User
	err := r.db.GetContext(ctx, &u, query, id, email, phoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

func (r *repository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *repository) SaveResetCode(ctx context.Context, email, code string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO password_reset_codes (email, code) VALUES ($1, $2)`, email, code)
	return err
}

func (r *repository) FindResetCode(ctx context.Context, email, code string, notBefore time.Time) (bool, error) {
	return db.Exists(ctx, r.db, `
		SELECT EXISTS(
			SELECT 1 FROM password_reset_codes
			WHERE email = $1 AND code = $2 AND created_at >= $3
		)`, email, code, notBefore)
}

func (r *repository) DeleteResetCodes(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM password_reset_codes WHERE email = $1`, email)
	return err
}
