package services

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/westosha-tf/team-portal/internal/utils"
)

// TextSanitizer strips markup from user-authored free text before storage.
type TextSanitizer struct {
	policy *bluemonday.Policy
}

func NewTextSanitizer() *TextSanitizer {
	return &TextSanitizer{policy: bluemonday.StrictPolicy()}
}

// Clean removes tags and trims surrounding whitespace. Entities escaped by
// the policy are decoded again so plain text round-trips unchanged.
func (s *TextSanitizer) Clean(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

// CleanOptional returns nil when nothing is left after cleaning.
func (s *TextSanitizer) CleanOptional(text *string) *string {
	if text == nil {
		return nil
	}
	cleaned := s.Clean(*text)
	return utils.NilIfBlank(&cleaned)
}
