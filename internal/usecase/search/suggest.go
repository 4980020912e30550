package search

import (
	"strings"

	"github.com/kailas-cloud/postrank/internal/domain/post"
)

// minSuggestQueryLength mirrors the default minimum query length.
const minSuggestQueryLength = 2

// DefaultMaxSuggestions caps suggestion lists when the caller passes 0.
const DefaultMaxSuggestions = 5

// Suggest returns up to maxSuggestions distinct strings drawn from post
// titles, then tags, then category names, that contain the query
// case-insensitively. Queries shorter than two characters yield nothing.
func (s *Service) Suggest(posts []post.Post, query string, maxSuggestions int) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	if len(query) < minSuggestQueryLength {
		return nil
	}
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}

	suggestions := make([]string, 0, maxSuggestions)
	seen := make(map[string]bool, maxSuggestions)

	add := func(s string) bool {
		key := strings.ToLower(s)
		if seen[key] || !strings.Contains(key, query) {
			return len(suggestions) < maxSuggestions
		}
		seen[key] = true
		suggestions = append(suggestions, s)
		return len(suggestions) < maxSuggestions
	}

	for i := range posts {
		if !add(posts[i].Title()) {
			return suggestions
		}
	}
	for i := range posts {
		for _, tag := range posts[i].Tags() {
			if !add(tag) {
				return suggestions
			}
		}
	}
	for i := range posts {
		for _, cat := range posts[i].Categories() {
			if !add(cat.Name) {
				return suggestions
			}
		}
	}
	return suggestions
}
