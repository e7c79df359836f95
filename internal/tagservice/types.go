package tagservice

import (
	"database/sql"
	"time"
)

type Tag struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type TagModel struct {
	db *sql.DB
}

type TagService struct {
	m *TagModel
}
