package socialservice

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/inkwell/internal/common"
)

func setupTestEnvironment(t *testing.T) (*SocialService, *sql.DB) {
	db := common.TestDB("file://../../migrations", t)
	return NewSocialService(db), db
}

func testTag(t *testing.T, db *sql.DB, name string) int {
	var id int
	err := db.QueryRow(`INSERT INTO tags (name, slug, description) VALUES ($1, $1, 'Posts about ' || $1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func testPost(t *testing.T, db *sql.DB, authorID int, slug string, tagIDs ...int) int {
	var id int
	err := db.QueryRow(`INSERT INTO posts (slug, title, description, html, author_id) VALUES ($1, $1, $1, $1, $2) RETURNING id`, slug, authorID).Scan(&id)
	require.NoError(t, err)

	for _, tagID := range tagIDs {
		_, err := db.Exec(`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`, id, tagID)
		require.NoError(t, err)
	}
	return id
}

func engage(t *testing.T, db *sql.DB, table string, userID, postID int) {
	_, err := db.Exec(fmt.Sprintf(`INSERT INTO %s (user_id, post_id) VALUES ($1, $2)`, table), userID, postID)
	require.NoError(t, err)
}

func TestFollow(t *testing.T) {
	s, db := setupTestEnvironment(t)
	ctx := context.Background()

	alice := common.TestUser(t, db, "alice")
	bob := common.TestUser(t, db, "bob")
	carol := common.TestUser(t, db, "carol")

	testCases := []struct {
		name        string
		follower    int
		following   int
		expectedErr error
	}{
		{name: "follow", follower: alice, following: bob},
		{name: "follow back", follower: bob, following: alice},
		{name: "another follower", follower: carol, following: bob},
		{name: "duplicate follow", follower: alice, following: bob, expectedErr: ErrAlreadyFollowing},
		{name: "self follow", follower: alice, following: alice, expectedErr: ErrSelfFollow},
		{name: "unknown user", follower: alice, following: carol + 100, expectedErr: common.ErrRecordNotFound},
		{
			name:        "invalid id",
			follower:    alice,
			following:   0,
			expectedErr: common.ValidationError{Errors: map[string]string{"id": "must be greater than zero"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := s.Follow(ctx, tc.follower, tc.following)
			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				return
			}
			assert.NoError(t, err)
		})
	}

	followers, err := s.GetFollowers(ctx, bob, alice)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	byName := map[string]Follower{}
	for _, f := range followers {
		byName[f.Username] = f
	}
	assert.False(t, byName["alice"].FollowedByViewer)
	assert.False(t, byName["carol"].FollowedByViewer)

	require.NoError(t, s.Follow(ctx, alice, carol))
	followers, err = s.GetFollowers(ctx, bob, alice)
	require.NoError(t, err)
	for _, f := range followers {
		assert.Equal(t, f.Username == "carol", f.FollowedByViewer)
	}

	following, err := s.GetFollowing(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, following, 2)

	require.NoError(t, s.Unfollow(ctx, alice, bob))
	require.NoError(t, s.Unfollow(ctx, alice, bob))

	following, err = s.GetFollowing(ctx, alice)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, "carol", following[0].Username)

	_, err = s.GetFollowers(ctx, carol+100, alice)
	assert.ErrorIs(t, err, common.ErrRecordNotFound)
}

func TestGetSuggestions(t *testing.T) {
	s, db := setupTestEnvironment(t)
	ctx := context.Background()

	viewer := common.TestUser(t, db, "viewer")
	author := common.TestUser(t, db, "author")
	bookmarker := common.TestUser(t, db, "bookmarker")
	liker := common.TestUser(t, db, "liker")
	rustacean := common.TestUser(t, db, "rustacean")

	golang := testTag(t, db, "golang")
	rust := testTag(t, db, "rust")

	p1 := testPost(t, db, author, "go-concurrency", golang)
	p2 := testPost(t, db, author, "go-generics", golang)
	p3 := testPost(t, db, author, "rust-lifetimes", rust)

	suggestions, err := s.GetSuggestions(ctx, viewer)
	require.NoError(t, err)
	assert.Empty(t, suggestions)

	engage(t, db, "likes", viewer, p1)
	engage(t, db, "bookmarks", bookmarker, p2)
	engage(t, db, "likes", liker, p1)
	engage(t, db, "likes", rustacean, p3)

	suggestions, err = s.GetSuggestions(ctx, viewer)
	require.NoError(t, err)

	var names []string
	for _, u := range suggestions {
		names = append(names, u.Username)
	}
	assert.ElementsMatch(t, []string{"bookmarker", "liker"}, names)

	for i := 0; i < SuggestionLimit+1; i++ {
		u := common.TestUser(t, db, fmt.Sprintf("fan%d", i))
		engage(t, db, "bookmarks", u, p1)
	}

	suggestions, err = s.GetSuggestions(ctx, viewer)
	require.NoError(t, err)
	assert.Len(t, suggestions, SuggestionLimit)
	for _, u := range suggestions {
		assert.NotEqual(t, viewer, u.ID)
		assert.NotEqual(t, "rustacean", u.Username)
	}
}
