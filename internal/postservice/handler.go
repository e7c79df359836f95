package postservice

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gosimple/slug"
	"github.com/sushihentaime/inkwell/internal/common"
)

func NewPostService(db *sql.DB) *PostService {
	return &PostService{m: NewPostModel(db)}
}

// CreatePost stores a new post authored by req.AuthorID. The slug is derived from the title.
func (s *PostService) CreatePost(ctx context.Context, req *CreatePostRequest) (*Post, error) {
	html := sanitizeHTML(req.HTML)
	postSlug := slug.Make(req.Title)

	v := common.NewValidator()
	validateTitle(v, req.Title)
	v.Check(postSlug != "", "title", "must contain at least one letter or number")
	validateDescription(v, req.Description)
	validateHTML(v, html)
	validateText(v, req.Text)
	validateTagIDs(v, req.TagIDs)
	common.CheckID(v, req.AuthorID, "author_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	p := &Post{
		Slug:        postSlug,
		Title:       req.Title,
		Description: req.Description,
		HTML:        html,
		Text:        req.Text,
		AuthorID:    req.AuthorID,
	}

	if err := s.m.insert(ctx, p, uniqueIDs(req.TagIDs)); err != nil {
		return nil, unknownTag(err)
	}

	return p, nil
}

// GetPosts returns one page of the feed. A nil cursor starts at the newest post.
func (s *PostService) GetPosts(ctx context.Context, cursor *int, viewerID int) (*Feed, error) {
	if cursor != nil {
		v := common.NewValidator()
		common.CheckID(v, *cursor, "cursor")
		if !v.Valid() {
			return nil, v.ValidationError()
		}
	}

	posts, err := s.m.feedPage(ctx, cursor, FeedPageSize, viewerID)
	if err != nil {
		return nil, err
	}

	return paginate(posts, FeedPageSize), nil
}

// GetPost returns a post by slug with its tags, comments and like state for the viewer.
func (s *PostService) GetPost(ctx context.Context, postSlug string, viewerID int) (*PostDetail, error) {
	v := common.NewValidator()
	v.Check(postSlug != "", "slug", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.getBySlug(ctx, postSlug, viewerID)
}

// UpdatePost replaces the title, description, html and tag set. The author and co-authors may edit.
func (s *PostService) UpdatePost(ctx context.Context, req *UpdatePostRequest) (*Post, error) {
	html := sanitizeHTML(req.HTML)

	v := common.NewValidator()
	validateTitle(v, req.Title)
	validateDescription(v, req.Description)
	validateHTML(v, html)
	validateTagIDs(v, req.TagIDs)
	common.CheckID(v, req.PostID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.requireEditor(ctx, req.PostID, req.ActorID); err != nil {
		return nil, err
	}

	r := *req
	r.HTML = html
	r.TagIDs = uniqueIDs(req.TagIDs)

	p, err := s.m.update(ctx, &r)
	if err != nil {
		return nil, unknownTag(err)
	}

	return p, nil
}

// UpdateFeaturedImage sets the featured image URL. The author and co-authors may edit.
func (s *PostService) UpdateFeaturedImage(ctx context.Context, postID, actorID int, imageURL string) (*Post, error) {
	v := common.NewValidator()
	common.CheckID(v, postID, "id")
	validateImageURL(v, imageURL)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	if err := s.requireEditor(ctx, postID, actorID); err != nil {
		return nil, err
	}

	return s.m.updateFeaturedImage(ctx, postID, imageURL)
}

// DeletePost removes a post and everything attached to it. Only the original author may delete.
func (s *PostService) DeletePost(ctx context.Context, postID, actorID int) error {
	v := common.NewValidator()
	common.CheckID(v, postID, "id")
	if !v.Valid() {
		return v.ValidationError()
	}

	o, err := s.m.getOwners(ctx, postID)
	if err != nil {
		return err
	}

	if o.authorID != actorID {
		return common.ErrForbidden
	}

	return s.m.delete(ctx, postID)
}

// AddAuthor makes userID a co-author of the post.
func (s *PostService) AddAuthor(ctx context.Context, postID, actorID, userID int) (*PostAuthor, error) {
	v := common.NewValidator()
	common.CheckID(v, postID, "id")
	common.CheckID(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	o, err := s.m.getOwners(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !o.canEdit(actorID) {
		return nil, common.ErrForbidden
	}

	if o.authorID == userID {
		return nil, ErrDuplicateAuthor
	}

	return s.m.insertAuthor(ctx, postID, userID)
}

// RemoveAuthor removes userID from the co-authors of the post.
func (s *PostService) RemoveAuthor(ctx context.Context, postID, actorID, userID int) error {
	v := common.NewValidator()
	common.CheckID(v, postID, "id")
	common.CheckID(v, userID, "user_id")
	if !v.Valid() {
		return v.ValidationError()
	}

	if err := s.requireEditor(ctx, postID, actorID); err != nil {
		return err
	}

	return s.m.deleteAuthor(ctx, postID, userID)
}

func (s *PostService) LikePost(ctx context.Context, userID, postID int) error {
	if err := validateIDs(userID, postID); err != nil {
		return err
	}

	return s.m.insertLike(ctx, userID, postID)
}

func (s *PostService) DislikePost(ctx context.Context, userID, postID int) error {
	if err := validateIDs(userID, postID); err != nil {
		return err
	}

	return s.m.deleteLike(ctx, userID, postID)
}

// GetLikeCount returns the number of likes on a post.
func (s *PostService) GetLikeCount(ctx context.Context, postID int) (int, error) {
	v := common.NewValidator()
	common.CheckID(v, postID, "id")
	if !v.Valid() {
		return 0, v.ValidationError()
	}

	return s.m.countLikes(ctx, postID)
}

func (s *PostService) BookmarkPost(ctx context.Context, userID, postID int) error {
	if err := validateIDs(userID, postID); err != nil {
		return err
	}

	return s.m.insertBookmark(ctx, userID, postID)
}

func (s *PostService) RemoveBookmark(ctx context.Context, userID, postID int) error {
	if err := validateIDs(userID, postID); err != nil {
		return err
	}

	return s.m.deleteBookmark(ctx, userID, postID)
}

// GetReadingList returns the most recent bookmarks of the user.
func (s *PostService) GetReadingList(ctx context.Context, userID int) ([]ReadingListItem, error) {
	v := common.NewValidator()
	common.CheckID(v, userID, "user_id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.readingList(ctx, userID, ReadingListSize)
}

func (s *PostService) SubmitComment(ctx context.Context, userID, postID int, text string) (*Comment, error) {
	v := common.NewValidator()
	common.CheckID(v, userID, "user_id")
	common.CheckID(v, postID, "id")
	validateComment(v, text)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.insertComment(ctx, userID, postID, text)
}

// GetComments returns the comments of a post, newest first.
func (s *PostService) GetComments(ctx context.Context, postID int) ([]Comment, error) {
	v := common.NewValidator()
	common.CheckID(v, postID, "id")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	exists, err := s.m.postExists(ctx, postID)
	if err != nil {
		return nil, err
	}

	if !exists {
		return nil, common.ErrRecordNotFound
	}

	return s.m.listComments(ctx, postID)
}

// GetPostsByUsername returns the posts originally authored by the user, newest first.
func (s *PostService) GetPostsByUsername(ctx context.Context, username string, viewerID int) ([]PostSummary, error) {
	v := common.NewValidator()
	v.Check(username != "", "username", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.listByAuthor(ctx, username, viewerID)
}

// GetPostsByTag returns the posts carrying the tag, newest first.
func (s *PostService) GetPostsByTag(ctx context.Context, tagSlug string, viewerID int) ([]PostSummary, error) {
	v := common.NewValidator()
	v.Check(tagSlug != "", "slug", "must be provided")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	return s.m.listByTag(ctx, tagSlug, viewerID)
}

func (s *PostService) requireEditor(ctx context.Context, postID, actorID int) error {
	o, err := s.m.getOwners(ctx, postID)
	if err != nil {
		return err
	}

	if !o.canEdit(actorID) {
		return common.ErrForbidden
	}

	return nil
}

func validateIDs(userID, postID int) error {
	v := common.NewValidator()
	common.CheckID(v, userID, "user_id")
	common.CheckID(v, postID, "id")
	if !v.Valid() {
		return v.ValidationError()
	}
	return nil
}

// unknownTag reports a missing tag as a validation failure on tag_ids.
func unknownTag(err error) error {
	if errors.Is(err, ErrUnknownTag) {
		return common.ValidationError{Errors: map[string]string{"tag_ids": "must only reference existing tags"}}
	}
	return err
}
