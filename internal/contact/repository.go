package contact

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, userID int, req CreateMessageRequest) (*Message, error) {
	msgType := req.Type
	if msgType == "" {
		msgType = "bug"
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}

	query := `
		INSERT INTO contact_messages (user_id, subject, message, type, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, subject, message, type, priority, is_read, created_at
	`

	var msg Message
	err := r.db.GetContext(ctx, &msg, query, userID, req.Subject, req.Message, msgType, priority)
	if err != nil {
		return nil, err
	}

	return &msg, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]Message, error) {
	query := `
		SELECT id, user_id, subject, message, type, priority, is_read, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`

	var messages []Message
	err := r.db.SelectContext(ctx, &messages, query)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *Repository) MarkRead(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET is_read = TRUE WHERE id = $1`, id)
	return err
}
