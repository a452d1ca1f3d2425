package contact

import "time"

type Message struct {
	ID        int       `db:"id" json:"id"`
	UserID    int       `db:"user_id" json:"user_id"`
	Subject   string    `db:"subject" json:"subject"`
	Body      string    `db:"message" json:"message"`
	Type      string    `db:"type" json:"type"`
	Priority  string    `db:"priority" json:"priority"`
	IsRead    bool      `db:"is_read" json:"is_read"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateMessageRequest struct {
	Subject  string `json:"subject" validate:"required,max=200"`
	Message  string `json:"message" validate:"required"`
	Type     string `json:"type" validate:"omitempty,oneof=bug payment venue account other"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high"`
}
