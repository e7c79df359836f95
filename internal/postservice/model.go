package postservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrDuplicateSlug     = errors.New("a post with this slug already exists")
	ErrDuplicateLike     = errors.New("post already liked")
	ErrDuplicateBookmark = errors.New("post already bookmarked")
	ErrDuplicateAuthor   = errors.New("user is already an author of this post")
	ErrUnknownTag        = errors.New("tag does not exist")
)

func NewPostModel(db *sql.DB) *PostModel {
	return &PostModel{db: db}
}

// summaryColumns selects the columns scanned by listSummaries. The viewer id is always $1.
const summaryColumns = `
		p.id, p.slug, p.title, p.description, p.featured_image, p.created_at,
		u.id, u.username, u.name, u.image,
		EXISTS (SELECT 1 FROM bookmarks b WHERE b.post_id = p.id AND b.user_id = $1)`

func (m *PostModel) insert(ctx context.Context, p *Post, tagIDs []int) error {
	query := `
		INSERT INTO posts (slug, title, description, html, text, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	return common.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query, p.Slug, p.Title, p.Description, p.HTML, p.Text, p.AuthorID).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			switch {
			case common.UniqueViolation(err, "posts_slug_key"):
				return ErrDuplicateSlug
			case common.ForeignKeyViolation(err, "posts_author_id_fkey"):
				return common.ErrRecordNotFound
			default:
				return err
			}
		}

		return connectTags(ctx, tx, p.ID, tagIDs)
	})
}

func connectTags(ctx context.Context, tx *sql.Tx, postID int, tagIDs []int) error {
	if len(tagIDs) == 0 {
		return nil
	}

	query := `
		INSERT INTO post_tags (post_id, tag_id)
		SELECT $1, unnest($2::bigint[])`

	_, err := tx.ExecContext(ctx, query, postID, pq.Array(toInt64s(tagIDs)))
	if err != nil {
		switch {
		case common.ForeignKeyViolation(err, "post_tags_tag_id_fkey"):
			return ErrUnknownTag
		default:
			return err
		}
	}

	return nil
}

func (m *PostModel) getOwners(ctx context.Context, postID int) (*owners, error) {
	query := `
		SELECT p.author_id, COALESCE(array_agg(pa.author_id) FILTER (WHERE pa.author_id IS NOT NULL), '{}')
		FROM posts p
		LEFT JOIN post_authors pa ON pa.post_id = p.id
		WHERE p.id = $1
		GROUP BY p.id`

	var (
		o         owners
		coAuthors pq.Int64Array
	)

	err := m.db.QueryRowContext(ctx, query, postID).Scan(&o.authorID, &coAuthors)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	o.coAuthors = toInts(coAuthors)

	return &o, nil
}

// update replaces the editable fields and the full tag set in one transaction.
func (m *PostModel) update(ctx context.Context, r *UpdatePostRequest) (*Post, error) {
	query := `
		UPDATE posts
		SET title = $1, description = $2, html = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING id, slug, title, description, html, text, featured_image, author_id, created_at, updated_at`

	var p Post

	err := common.WithTx(ctx, m.db, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, query, r.Title, r.Description, r.HTML, r.PostID).Scan(&p.ID, &p.Slug, &p.Title, &p.Description, &p.HTML, &p.Text, &p.FeaturedImage, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				return common.ErrRecordNotFound
			default:
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, r.PostID); err != nil {
			return err
		}

		return connectTags(ctx, tx, r.PostID, r.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (m *PostModel) updateFeaturedImage(ctx context.Context, postID int, imageURL string) (*Post, error) {
	query := `
		UPDATE posts
		SET featured_image = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, slug, title, description, html, text, featured_image, author_id, created_at, updated_at`

	var p Post

	err := m.db.QueryRowContext(ctx, query, imageURL, postID).Scan(&p.ID, &p.Slug, &p.Title, &p.Description, &p.HTML, &p.Text, &p.FeaturedImage, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	return &p, nil
}

func (m *PostModel) delete(ctx context.Context, postID int) error {
	return deleteOne(ctx, m.db, `DELETE FROM posts WHERE id = $1`, postID)
}

func (m *PostModel) getBySlug(ctx context.Context, slug string, viewerID int) (*PostDetail, error) {
	query := `
		SELECT p.id, p.slug, p.title, p.description, p.html, p.text, p.featured_image, p.author_id, p.created_at, p.updated_at,
			(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id),
			EXISTS (SELECT 1 FROM likes l WHERE l.post_id = p.id AND l.user_id = $2),
			COALESCE((SELECT array_agg(pa.author_id ORDER BY pa.id) FROM post_authors pa WHERE pa.post_id = p.id), '{}')
		FROM posts p
		WHERE p.slug = $1`

	var (
		d         PostDetail
		coAuthors pq.Int64Array
	)

	err := m.db.QueryRowContext(ctx, query, slug, viewerID).Scan(&d.ID, &d.Slug, &d.Title, &d.Description, &d.HTML, &d.Text, &d.FeaturedImage, &d.AuthorID, &d.CreatedAt, &d.UpdatedAt, &d.LikeCount, &d.Liked, &coAuthors)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	d.CoAuthors = toInts(coAuthors)

	tags, err := m.tagsFor(ctx, []int{d.ID})
	if err != nil {
		return nil, err
	}
	d.Tags = tags[d.ID]
	if d.Tags == nil {
		d.Tags = []TagSummary{}
	}

	d.Comments, err = m.listComments(ctx, d.ID)
	if err != nil {
		return nil, err
	}

	return &d, nil
}

// listSummaries runs a query selecting summaryColumns and attaches the tags of every returned post.
func (m *PostModel) listSummaries(ctx context.Context, query string, args ...any) ([]PostSummary, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []PostSummary{}
	for rows.Next() {
		var s PostSummary
		err := rows.Scan(&s.ID, &s.Slug, &s.Title, &s.Description, &s.FeaturedImage, &s.CreatedAt, &s.Author.ID, &s.Author.Username, &s.Author.Name, &s.Author.Image, &s.Bookmarked)
		if err != nil {
			return nil, err
		}
		posts = append(posts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ids := make([]int, len(posts))
	for i := range posts {
		ids[i] = posts[i].ID
	}

	tags, err := m.tagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].Tags = tags[posts[i].ID]
		if posts[i].Tags == nil {
			posts[i].Tags = []TagSummary{}
		}
	}

	return posts, nil
}

func (m *PostModel) tagsFor(ctx context.Context, postIDs []int) (map[int][]TagSummary, error) {
	out := make(map[int][]TagSummary, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT pt.post_id, t.id, t.name, t.slug
		FROM post_tags pt
		JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name`

	rows, err := m.db.QueryContext(ctx, query, pq.Array(toInt64s(postIDs)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			postID int
			t      TagSummary
		)
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		out[postID] = append(out[postID], t)
	}

	return out, rows.Err()
}

func (m *PostModel) listByAuthor(ctx context.Context, username string, viewerID int) ([]PostSummary, error) {
	var authorID int
	err := m.db.QueryRowContext(ctx, `SELECT id FROM users WHERE username = $1`, username).Scan(&authorID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	query := `
		SELECT` + summaryColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.author_id = $2
		ORDER BY p.created_at DESC, p.id DESC`

	return m.listSummaries(ctx, query, viewerID, authorID)
}

func (m *PostModel) listByTag(ctx context.Context, tagSlug string, viewerID int) ([]PostSummary, error) {
	var tagID int
	err := m.db.QueryRowContext(ctx, `SELECT id FROM tags WHERE slug = $1`, tagSlug).Scan(&tagID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, common.ErrRecordNotFound
		default:
			return nil, err
		}
	}

	query := `
		SELECT` + summaryColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE pt.tag_id = $2
		ORDER BY p.created_at DESC, p.id DESC`

	return m.listSummaries(ctx, query, viewerID, tagID)
}

func toInts(a pq.Int64Array) []int {
	out := make([]int, len(a))
	for i, v := range a {
		out[i] = int(v)
	}
	return out
}

func toInt64s(a []int) []int64 {
	out := make([]int64, len(a))
	for i, v := range a {
		out[i] = int64(v)
	}
	return out
}
