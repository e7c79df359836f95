package postservice

import "github.com/microcosm-cc/bluemonday"

var htmlPolicy = bluemonday.UGCPolicy()

// sanitizeHTML strips scripts, event handlers and other unsafe markup from rich text.
func sanitizeHTML(html string) string {
	return htmlPolicy.Sanitize(html)
}
