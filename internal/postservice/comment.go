package postservice

import (
	"context"

	"github.com/sushihentaime/inkwell/internal/common"
)

func (m *PostModel) insertComment(ctx context.Context, userID, postID int, text string) (*Comment, error) {
	query := `
		WITH c AS (
			INSERT INTO comments (text, user_id, post_id)
			VALUES ($1, $2, $3)
			RETURNING id, text, created_at, user_id
		)
		SELECT c.id, c.text, c.created_at, u.id, u.username, u.name, u.image
		FROM c
		JOIN users u ON u.id = c.user_id`

	var c Comment

	err := m.db.QueryRowContext(ctx, query, text, userID, postID).Scan(&c.ID, &c.Text, &c.CreatedAt, &c.User.ID, &c.User.Username, &c.User.Name, &c.User.Image)
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, ""):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &c, nil
}

// listComments returns the comments of a post, newest first.
func (m *PostModel) listComments(ctx context.Context, postID int) ([]Comment, error) {
	query := `
		SELECT c.id, c.text, c.created_at, u.id, u.username, u.name, u.image
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id DESC`

	rows, err := m.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.CreatedAt, &c.User.ID, &c.User.Username, &c.User.Name, &c.User.Image); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (m *PostModel) postExists(ctx context.Context, postID int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists)
	return exists, err
}
