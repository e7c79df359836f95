package tagservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/inkwell/internal/common"
)

var ErrDuplicateTag = errors.New("tag already exists")

func NewTagModel(db *sql.DB) *TagModel {
	return &TagModel{db: db}
}

func (m *TagModel) insert(ctx context.Context, t *Tag) error {
	query := `
		INSERT INTO tags (name, slug, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := m.db.QueryRowContext(ctx, query, t.Name, t.Slug, t.Description).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "tags_name_key"), common.UniqueViolation(err, "tags_slug_key"):
			return ErrDuplicateTag
		default:
			return err
		}
	}

	return nil
}

func (m *TagModel) list(ctx context.Context) ([]Tag, error) {
	query := `
		SELECT id, name, slug, description, created_at
		FROM tags
		ORDER BY name`

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := []Tag{}
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}
