package socialservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/sushihentaime/inkwell/internal/common"
)

var (
	ErrSelfFollow       = errors.New("you can not follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
)

const pqCheckViolation = "23514"

func NewSocialModel(db *sql.DB) *SocialModel {
	return &SocialModel{db: db}
}

func (m *SocialModel) insertFollow(ctx context.Context, followerID, followingID int) error {
	query := `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)`

	_, err := m.db.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		var pqErr *pq.Error
		switch {
		case common.UniqueViolation(err, "follows_pkey"):
			return ErrAlreadyFollowing
		case common.ForeignKeyViolation(err, ""):
			return common.ErrRecordNotFound
		case errors.As(err, &pqErr) && pqErr.Code == pqCheckViolation:
			return ErrSelfFollow
		default:
			return err
		}
	}

	return nil
}

func (m *SocialModel) deleteFollow(ctx context.Context, followerID, followingID int) error {
	_, err := m.db.ExecContext(ctx, `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`, followerID, followingID)
	return err
}

func (m *SocialModel) userExists(ctx context.Context, userID int) (bool, error) {
	var exists bool
	err := m.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	return exists, err
}

func (m *SocialModel) followers(ctx context.Context, userID, viewerID int) ([]Follower, error) {
	query := `
		SELECT u.id, u.username, u.name, u.image,
			EXISTS (SELECT 1 FROM follows v WHERE v.follower_id = $2 AND v.following_id = u.id)
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC, u.id`

	rows, err := m.db.QueryContext(ctx, query, userID, viewerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Follower{}
	for rows.Next() {
		var f Follower
		if err := rows.Scan(&f.ID, &f.Username, &f.Name, &f.Image, &f.FollowedByViewer); err != nil {
			return nil, err
		}
		out = append(out, f)
	}

	return out, rows.Err()
}

func (m *SocialModel) following(ctx context.Context, userID int) ([]UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.name, u.image
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC, u.id`

	return m.listUsers(ctx, query, userID)
}

// interestTags returns the names of tags on the posts the user most recently liked or bookmarked.
func (m *SocialModel) interestTags(ctx context.Context, userID int) ([]string, error) {
	query := `
		SELECT DISTINCT t.name
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id IN (
			SELECT l.post_id FROM likes l WHERE l.user_id = $1
			ORDER BY l.created_at DESC, l.id DESC LIMIT $2
		) OR pt.post_id IN (
			SELECT b.post_id FROM bookmarks b WHERE b.user_id = $1
			ORDER BY b.created_at DESC, b.id DESC LIMIT $2
		)
		ORDER BY t.name`

	rows, err := m.db.QueryContext(ctx, query, userID, interestWindow)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// usersInterestedIn returns users other than exclude who liked or bookmarked a post carrying one of the tags.
func (m *SocialModel) usersInterestedIn(ctx context.Context, tags []string, exclude, limit int) ([]UserSummary, error) {
	query := `
		SELECT u.id, u.username, u.name, u.image
		FROM users u
		WHERE u.id <> $1 AND (
			EXISTS (
				SELECT 1 FROM likes l
				JOIN post_tags pt ON pt.post_id = l.post_id
				JOIN tags t ON t.id = pt.tag_id
				WHERE l.user_id = u.id AND t.name = ANY($2)
			) OR EXISTS (
				SELECT 1 FROM bookmarks b
				JOIN post_tags pt ON pt.post_id = b.post_id
				JOIN tags t ON t.id = pt.tag_id
				WHERE b.user_id = u.id AND t.name = ANY($2)
			)
		)
		ORDER BY u.id
		LIMIT $3`

	return m.listUsers(ctx, query, exclude, pq.Array(tags), limit)
}

func (m *SocialModel) listUsers(ctx context.Context, query string, args ...any) ([]UserSummary, error) {
	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []UserSummary{}
	for rows.Next() {
		var u UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.Name, &u.Image); err != nil {
			return nil, err
		}
		out = append(out, u)
	}

	return out, rows.Err()
}
