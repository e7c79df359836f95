package tagservice

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sushihentaime/inkwell/internal/common"
)

func TestCreateAndGetTags(t *testing.T) {
	db := common.TestDB("file://../../migrations", t)
	s := NewTagService(db)
	ctx := context.Background()

	testCases := []struct {
		name        string
		tagName     string
		description string
		expectedErr error
	}{
		{
			name:        "valid tag",
			tagName:     "Web Development",
			description: "Everything about building for the web",
		},
		{
			name:        "second valid tag",
			tagName:     "Databases",
			description: "Storage engines and query planners",
		},
		{
			name:        "duplicate name",
			tagName:     "Web Development",
			description: "Everything about building for the web",
			expectedErr: ErrDuplicateTag,
		},
		{
			name:        "duplicate slug",
			tagName:     "web development",
			description: "Same slug as an existing tag",
			expectedErr: ErrDuplicateTag,
		},
		{
			name:        "short name",
			tagName:     "Go",
			description: "The Go programming language",
			expectedErr: common.ValidationError{Errors: map[string]string{"name": "must be at least 3 characters long"}},
		},
		{
			name:        "short description",
			tagName:     "Rustlang",
			description: "Crabs",
			expectedErr: common.ValidationError{Errors: map[string]string{"description": "must be at least 10 characters long"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tag, err := s.CreateTag(ctx, tc.tagName, tc.description)
			if tc.expectedErr != nil {
				assert.Equal(t, tc.expectedErr, err)
				assert.Nil(t, tag)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, tag.ID)
		})
	}

	tags, err := s.GetTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Databases", tags[0].Name)
	assert.Equal(t, "web-development", tags[1].Slug)
}
