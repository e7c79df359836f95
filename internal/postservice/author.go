package postservice

import (
	"context"

	"github.com/sushihentaime/inkwell/internal/common"
)

func (m *PostModel) insertAuthor(ctx context.Context, postID, userID int) (*PostAuthor, error) {
	query := `
		INSERT INTO post_authors (post_id, author_id)
		VALUES ($1, $2)
		RETURNING id, post_id, author_id, created_at`

	var a PostAuthor

	err := m.db.QueryRowContext(ctx, query, postID, userID).Scan(&a.ID, &a.PostID, &a.AuthorID, &a.CreatedAt)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "post_authors_post_id_author_id_key"):
			return nil, ErrDuplicateAuthor
		case common.ForeignKeyViolation(err, ""):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &a, nil
}

// deleteAuthor removes every co-author row for the user. Removing a non-author is not an error.
func (m *PostModel) deleteAuthor(ctx context.Context, postID, userID int) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM post_authors WHERE post_id = $1 AND author_id = $2`, postID, userID)
	return err
}
