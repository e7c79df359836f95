package mediaservice

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) Put(ctx context.Context, key, contentType string, data []byte) error {
	args := m.Called(key, contentType, data)
	return args.Error(0)
}

func (m *MockObjectStore) PublicURL(key string) string {
	return "http://localhost:9000/" + AvatarBucket + "/" + key
}

type MockAvatarUpdater struct {
	mock.Mock
}

func (m *MockAvatarUpdater) UpdateAvatar(ctx context.Context, userID int, imageURL string) error {
	args := m.Called(userID, imageURL)
	return args.Error(0)
}

type MockImageSearcher struct {
	mock.Mock
}

func (m *MockImageSearcher) SearchPhotos(ctx context.Context, query string) (json.RawMessage, error) {
	args := m.Called(query)
	if r, ok := args.Get(0).(json.RawMessage); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}
