package hall

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrHallNotFound = errors.New("hall not found")

const hallColumns = `id, manager_id, name, city, sport, location, capacity, price_per_hour, description, amenities, rating, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, managerID int, req CreateHallRequest) (*Hall, error) {
	query := `
		INSERT INTO halls (manager_id, name, city, sport, location, capacity, price_per_hour, description, amenities, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + hallColumns

	var h Hall
	err := r.db.GetContext(ctx, &h, query,
		managerID, req.Name, req.City, req.Sport, req.Location,
		req.Capacity, req.PricePerHour, req.Description, req.Amenities, req.Rating)
	if err != nil {
		return nil, err
	}

	h.SplitAmenities()
	return &h, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Hall, error) {
	query := `SELECT ` + hallColumns + ` FROM halls WHERE id = $1`

	var h Hall
	err := r.db.GetContext(ctx, &h, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}

	h.SplitAmenities()
	return &h, nil
}

func (r *repository) Search(ctx context.Context, term string) ([]Hall, error) {
	query := `SELECT ` + hallColumns + ` FROM halls`
	args := []interface{}{}

	if term != "" {
		query += `
		WHERE name ILIKE $1 OR city ILIKE $1 OR sport ILIKE $1
		   OR location ILIKE $1 OR amenities ILIKE $1`
		args = append(args, "%"+term+"%")
	}

	query += ` ORDER BY id ASC`

	var halls []Hall
	err := r.db.SelectContext(ctx, &halls, query, args...)
	if err != nil {
		return nil, err
	}

	for i := range halls {
		halls[i].SplitAmenities()
	}
	return halls, nil
}

func (r *repository) FindByManager(ctx context.Context, managerID int) ([]Hall, error) {
	query := `SELECT ` + hallColumns + ` FROM halls WHERE manager_id = $1 ORDER BY id ASC`

	var halls []Hall
	err := r.db.SelectContext(ctx, &halls, query, managerID)
	if err != nil {
		return nil, err
	}

	for i := range halls {
		halls[i].SplitAmenities()
	}
	return halls, nil
}

func (r *repository) FindAll(ctx context.Context) ([]Hall, error) {
	return r.Search(ctx, "")
}

func (r *repository) Update(ctx context.Context, id int, req UpdateHallRequest) (*Hall, error) {
	query := `
		UPDATE halls
		SET name = $2, city = $3, sport = $4, location = $5, capacity = $6,
		    price_per_hour = $7, description = $8, amenities = $9, rating = $10
		WHERE id = $1
		RETURNING ` + hallColumns

	var h Hall
	err := r.db.GetContext(ctx, &h, query,
		id, req.Name, req.City, req.Sport, req.Location,
		req.Capacity, req.PricePerHour, req.Description, req.Amenities, req.Rating)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}

	h.SplitAmenities()
	return &h, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM halls WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrHallNotFound
	}

	return nil
}
