package mediaservice

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sushihentaime/inkwell/internal/common"
)

const (
	AvatarBucket      = "publicavatar"
	avatarContentType = "image/png"
	minQueryLength    = 5
)

// ObjectStore is the subset of object storage used for avatars.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	PublicURL(key string) string
}

// AvatarUpdater persists the avatar URL of a user.
type AvatarUpdater interface {
	UpdateAvatar(ctx context.Context, userID int, imageURL string) error
}

type ImageSearcher interface {
	SearchPhotos(ctx context.Context, query string) (json.RawMessage, error)
}

type UploadAvatarRequest struct {
	ImageAsDataURI string `json:"image_as_data_uri"`
	Mimetype       string `json:"mimetype"`
	Username       string `json:"username"`
}

type UnsplashConfig struct {
	BaseURL   string
	AccessKey string
}

type UnsplashClient struct {
	cfg    UnsplashConfig
	client *http.Client
}

type MediaService struct {
	store  ObjectStore
	users  AvatarUpdater
	images ImageSearcher
	cache  *common.Cache
}
