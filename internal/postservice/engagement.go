package postservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sushihentaime/inkwell/internal/common"
)

func (m *PostModel) insertLike(ctx context.Context, userID, postID int) error {
	query := `
		INSERT INTO likes (user_id, post_id)
		VALUES ($1, $2)`

	_, err := m.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "likes_user_id_post_id_key"):
			return ErrDuplicateLike
		case common.ForeignKeyViolation(err, ""):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) deleteLike(ctx context.Context, userID, postID int) error {
	return deleteOne(ctx, m.db, `DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
}

func (m *PostModel) countLikes(ctx context.Context, postID int) (int, error) {
	query := `
		SELECT COUNT(l.id)
		FROM posts p
		LEFT JOIN likes l ON l.post_id = p.id
		WHERE p.id = $1
		GROUP BY p.id`

	var count int

	err := m.db.QueryRowContext(ctx, query, postID).Scan(&count)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return 0, common.ErrRecordNotFound
		default:
			return 0, err
		}
	}

	return count, nil
}

func (m *PostModel) insertBookmark(ctx context.Context, userID, postID int) error {
	query := `
		INSERT INTO bookmarks (user_id, post_id)
		VALUES ($1, $2)`

	_, err := m.db.ExecContext(ctx, query, userID, postID)
	if err != nil {
		switch {
		case common.UniqueViolation(err, "bookmarks_user_id_post_id_key"):
			return ErrDuplicateBookmark
		case common.ForeignKeyViolation(err, ""):
			return common.ErrRecordNotFound
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) deleteBookmark(ctx context.Context, userID, postID int) error {
	return deleteOne(ctx, m.db, `DELETE FROM bookmarks WHERE user_id = $1 AND post_id = $2`, userID, postID)
}

// readingList returns the most recent bookmarks of a user, newest first.
func (m *PostModel) readingList(ctx context.Context, userID, limit int) ([]ReadingListItem, error) {
	query := `
		SELECT bm.id, bm.created_at,
			p.id, p.slug, p.title, p.description, p.featured_image, p.created_at,
			u.id, u.username, u.name, u.image
		FROM bookmarks bm
		JOIN posts p ON p.id = bm.post_id
		JOIN users u ON u.id = p.author_id
		WHERE bm.user_id = $1
		ORDER BY bm.created_at DESC, bm.id DESC
		LIMIT $2`

	rows, err := m.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []ReadingListItem{}
	for rows.Next() {
		var it ReadingListItem
		s := &it.Post
		err := rows.Scan(&it.ID, &it.CreatedAt, &s.ID, &s.Slug, &s.Title, &s.Description, &s.FeaturedImage, &s.CreatedAt, &s.Author.ID, &s.Author.Username, &s.Author.Name, &s.Author.Image)
		if err != nil {
			return nil, err
		}
		s.Bookmarked = true
		s.Tags = []TagSummary{}
		items = append(items, it)
	}

	return items, rows.Err()
}

// deleteOne executes a delete and reports ErrRecordNotFound when nothing matched.
func deleteOne(ctx context.Context, db *sql.DB, query string, args ...any) error {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return common.ErrRecordNotFound
	}

	return nil
}
