package tagservice

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gosimple/slug"
	"github.com/sushihentaime/inkwell/internal/common"
)

func NewTagService(db *sql.DB) *TagService {
	return &TagService{m: NewTagModel(db)}
}

// CreateTag stores a new tag. Names that produce the same slug are treated as duplicates.
func (s *TagService) CreateTag(ctx context.Context, name, description string) (*Tag, error) {
	name = strings.TrimSpace(name)

	v := common.NewValidator()
	validateName(v, name)
	validateDescription(v, description)
	if !v.Valid() {
		return nil, v.ValidationError()
	}

	t := &Tag{
		Name:        name,
		Slug:        slug.Make(name),
		Description: description,
	}

	if err := s.m.insert(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// GetTags returns every tag ordered by name.
func (s *TagService) GetTags(ctx context.Context) ([]Tag, error) {
	return s.m.list(ctx)
}
