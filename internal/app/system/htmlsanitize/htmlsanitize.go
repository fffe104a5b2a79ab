// Package htmlsanitize wraps bluemonday policies for user-supplied rich
// text. Lab report headers/footers may carry limited formatting HTML;
// comment text is reduced to plain text.
package htmlsanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	once   sync.Once
	ugc    *bluemonday.Policy
	strict *bluemonday.Policy
)

func policies() (*bluemonday.Policy, *bluemonday.Policy) {
	once.Do(func() {
		ugc = bluemonday.UGCPolicy()
		strict = bluemonday.StrictPolicy()
	})
	return ugc, strict
}

// Sanitize keeps safe formatting HTML (paragraphs, emphasis, tables, links)
// and strips scripts, event handlers, and javascript: URLs.
func Sanitize(s string) string {
	p, _ := policies()
	return p.Sanitize(s)
}

// StripTags removes all HTML, returning plain text.
func StripTags(s string) string {
	_, p := policies()
	return p.Sanitize(s)
}
