package socialservice

import "database/sql"

// SuggestionLimit caps the number of suggested users.
const SuggestionLimit = 4

// interestWindow is how many recent likes and bookmarks feed the suggestion tags.
const interestWindow = 10

type UserSummary struct {
	ID       int     `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Image    *string `json:"image"`
}

type Follower struct {
	UserSummary
	FollowedByViewer bool `json:"followed_by_viewer"`
}

type SocialModel struct {
	db *sql.DB
}

type SocialService struct {
	m *SocialModel
}
