package mediaservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/vincent-petithory/dataurl"
)

var (
	ErrUploadFailed  = errors.New("avatar upload failed")
	ErrImageProvider = errors.New("image provider is not available")
)

const searchCacheTTL = 5 * time.Minute

func NewMediaService(store ObjectStore, users AvatarUpdater, images ImageSearcher, cache *common.Cache) *MediaService {
	return &MediaService{store: store, users: users, images: images, cache: cache}
}

// UploadAvatar stores the decoded image under avatars/<username>.png and saves its public URL
// on the user. The object is not removed if saving the URL fails.
func (s *MediaService) UploadAvatar(ctx context.Context, userID int, username string, req *UploadAvatarRequest) (string, error) {
	v := common.NewValidator()
	v.Check(req.ImageAsDataURI != "", "image_as_data_uri", "must be provided")
	v.Check(req.Mimetype == "" || strings.HasPrefix(req.Mimetype, "image/"), "mimetype", "must be an image type")
	v.Check(req.Username == username, "username", "must match the signed in user")
	if !v.Valid() {
		return "", v.ValidationError()
	}

	du, err := dataurl.DecodeString(req.ImageAsDataURI)
	if err != nil {
		v.AddError("image_as_data_uri", "must be a valid data URI")
		return "", v.ValidationError()
	}

	if du.Type != "image" {
		v.AddError("image_as_data_uri", "must contain an image")
		return "", v.ValidationError()
	}

	key := fmt.Sprintf("avatars/%s.png", username)

	if err := s.store.Put(ctx, key, avatarContentType, du.Data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	url := s.store.PublicURL(key)

	if err := s.users.UpdateAvatar(ctx, userID, url); err != nil {
		return "", err
	}

	return url, nil
}

// SearchImages proxies a photo search to the image provider, caching results per query.
func (s *MediaService) SearchImages(ctx context.Context, query string) (json.RawMessage, error) {
	query = strings.TrimSpace(query)

	v := common.NewValidator()
	v.Check(v.MinChars(query, minQueryLength), "q", "must be at least 5 characters long")
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	key := common.CacheKeyImageSearch(query)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(json.RawMessage), nil
	}

	result, err := s.images.SearchPhotos(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageProvider, err)
	}

	s.cache.Set(key, result, searchCacheTTL)

	return result, nil
}
