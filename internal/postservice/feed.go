package postservice

import (
	"context"
	"database/sql"
)

// feedPage returns up to limit+1 posts ordered newest first, starting at the cursor post when
// one is given. An unknown cursor yields no rows because the row comparison is against NULL.
func (m *PostModel) feedPage(ctx context.Context, cursor *int, limit, viewerID int) ([]PostSummary, error) {
	query := `
		SELECT` + summaryColumns + `
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE $2::bigint IS NULL
			OR (p.created_at, p.id) <= (SELECT c.created_at, c.id FROM posts c WHERE c.id = $2)
		ORDER BY p.created_at DESC, p.id DESC
		LIMIT $3`

	var c sql.NullInt64
	if cursor != nil {
		c = sql.NullInt64{Int64: int64(*cursor), Valid: true}
	}

	return m.listSummaries(ctx, query, viewerID, c, limit+1)
}

// paginate trims the look-ahead row and turns it into the next cursor.
func paginate(posts []PostSummary, limit int) *Feed {
	feed := &Feed{Posts: posts}

	if len(posts) > limit {
		next := posts[limit].ID
		feed.Posts = posts[:limit]
		feed.NextCursor = &next
	}

	return feed
}
