package socialservice

import (
	"context"
	"database/sql"

	"github.com/sushihentaime/inkwell/internal/common"
)

func NewSocialService(db *sql.DB) *SocialService {
	return &SocialService{m: NewSocialModel(db)}
}

// Follow makes followerID follow followingID.
func (s *SocialService) Follow(ctx context.Context, followerID, followingID int) error {
	if err := validatePair(followerID, followingID); err != nil {
		return err
	}

	if followerID == followingID {
		return ErrSelfFollow
	}

	return s.m.insertFollow(ctx, followerID, followingID)
}

// Unfollow removes the follow edge. Removing a missing edge is not an error.
func (s *SocialService) Unfollow(ctx context.Context, followerID, followingID int) error {
	if err := validatePair(followerID, followingID); err != nil {
		return err
	}

	return s.m.deleteFollow(ctx, followerID, followingID)
}

// GetFollowers lists the users following userID, marking the ones the viewer follows.
func (s *SocialService) GetFollowers(ctx context.Context, userID, viewerID int) ([]Follower, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.m.followers(ctx, userID, viewerID)
}

// GetFollowing lists the users userID follows.
func (s *SocialService) GetFollowing(ctx context.Context, userID int) ([]UserSummary, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	return s.m.following(ctx, userID)
}

// GetSuggestions returns up to SuggestionLimit users who engaged with posts sharing tags
// the viewer recently liked or bookmarked.
func (s *SocialService) GetSuggestions(ctx context.Context, viewerID int) ([]UserSummary, error) {
	v := common.NewValidator()
	common.CheckID(v, viewerID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	tags, err := s.m.interestTags(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	if len(tags) == 0 {
		return []UserSummary{}, nil
	}

	return s.m.usersInterestedIn(ctx, tags, viewerID, SuggestionLimit)
}

func (s *SocialService) requireUser(ctx context.Context, userID int) error {
	v := common.NewValidator()
	common.CheckID(v, userID, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	exists, err := s.m.userExists(ctx, userID)
	if err != nil {
		return err
	}

	if !exists {
		return common.ErrRecordNotFound
	}

	return nil
}

func validatePair(followerID, followingID int) error {
	v := common.NewValidator()
	common.CheckID(v, followerID, "user_id")
	common.CheckID(v, followingID, "id")
	if !v.Valid() {
		return v.ValidationError()
	}
	return nil
}
