package postservice

import (
	"database/sql"
	"time"
)

// FeedPageSize is the number of posts returned per feed page.
const FeedPageSize = 10

// ReadingListSize is the number of bookmarks returned by the reading list.
const ReadingListSize = 4

type Post struct {
	ID          int    `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// HTML is sanitized before it is stored.
	HTML          string    `json:"html"`
	Text          *string   `json:"text"`
	FeaturedImage *string   `json:"featured_image"`
	AuthorID      int       `json:"author_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type AuthorSummary struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Image    *string `json:"image"`
}

type TagSummary struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// PostSummary is the list representation shared by the feed, profile and tag pages.
type PostSummary struct {
	ID            int           `json:"id"`
	Slug          string        `json:"slug"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	FeaturedImage *string       `json:"featured_image"`
	CreatedAt     time.Time     `json:"created_at"`
	Author        AuthorSummary `json:"author"`
	Tags          []TagSummary  `json:"tags"`
	Bookmarked    bool          `json:"bookmarked"`
}

type Feed struct {
	Posts      []PostSummary `json:"posts"`
	NextCursor *int          `json:"next_cursor,omitempty"`
}

type PostDetail struct {
	Post
	CoAuthors []int        `json:"co_authors"`
	Tags      []TagSummary `json:"tags"`
	Comments  []Comment    `json:"comments"`
	LikeCount int          `json:"like_count"`
	Liked     bool         `json:"liked"`
}

type Comment struct {
	ID        int           `json:"id"`
	Text      string        `json:"text"`
	CreatedAt time.Time     `json:"created_at"`
	User      AuthorSummary `json:"user"`
}

type PostAuthor struct {
	ID        int       `json:"id"`
	PostID    int       `json:"post_id"`
	AuthorID  int       `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ReadingListItem struct {
	ID        int         `json:"id"`
	CreatedAt time.Time   `json:"created_at"`
	Post      PostSummary `json:"post"`
}

type CreatePostRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	HTML        string  `json:"html"`
	Text        *string `json:"text"`
	TagIDs      []int   `json:"tag_ids"`
	AuthorID    int     `json:"-"`
}

type UpdatePostRequest struct {
	PostID      int    `json:"-"`
	ActorID     int    `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
	HTML        string `json:"html"`
	TagIDs      []int  `json:"tag_ids"`
}

// owners holds the users allowed to edit a post.
type owners struct {
	authorID  int
	coAuthors []int
}

func (o owners) canEdit(userID int) bool {
	if o.authorID == userID {
		return true
	}

	for _, id := range o.coAuthors {
		if id == userID {
			return true
		}
	}

	return false
}

type PostModel struct {
	db *sql.DB
}

type PostService struct {
	m *PostModel
}
