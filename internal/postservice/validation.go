package postservice

import (
	"github.com/sushihentaime/inkwell/internal/common"
)

func validateTitle(v *common.Validator, title string) {
	v.Check(title != "", "title", "must be provided")
	v.Check(v.MinChars(title, 10), "title", "must be at least 10 characters long")
	v.Check(len(title) <= 200, "title", "must not be more than 200 characters long")
}

func validateDescription(v *common.Validator, description string) {
	v.Check(description != "", "description", "must be provided")
	v.Check(v.MinChars(description, 60), "description", "must be at least 60 characters long")
}

// validateHTML expects the already sanitized body.
func validateHTML(v *common.Validator, html string) {
	v.Check(html != "", "html", "must be provided")
	v.Check(v.MinChars(html, 100), "html", "must be at least 100 characters long")
}

func validateText(v *common.Validator, text *string) {
	if text != nil {
		v.Check(v.MinChars(*text, 100), "text", "must be at least 100 characters long")
	}
}

func validateTagIDs(v *common.Validator, ids []int) {
	for _, id := range ids {
		v.Check(id > 0, "tag_ids", "must only contain positive ids")
	}
}

func validateImageURL(v *common.Validator, imageURL string) {
	v.Check(imageURL != "", "image_url", "must be provided")
	v.Check(v.IsURL(imageURL), "image_url", "must be a valid URL")
}

func validateComment(v *common.Validator, text string) {
	v.Check(v.MinChars(text, 3), "text", "must be at least 3 characters long")
}

// uniqueIDs drops duplicates while keeping the first-seen order.
func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
