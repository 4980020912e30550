package search

import (
	"strings"

	"github.com/kailas-cloud/postrank/internal/domain/post"
	"github.com/kailas-cloud/postrank/internal/domain/search/criteria"
	"github.com/kailas-cloud/postrank/internal/domain/search/options"
)

// Advanced applies the hard filters of c in order (category, tag, author,
// featured, date range), each narrowing the surviving set, then re-ranks
// the survivors through Search when a text query is present. Filters with
// no criterion are skipped, not treated as "match nothing".
func (s *Service) Advanced(posts []post.Post, c criteria.Criteria, opts options.Options) []post.Post {
	survivors := posts

	if c.Category != "" {
		survivors = filterPosts(survivors, func(p *post.Post) bool {
			return matchesCategory(p, c.Category)
		})
	}
	if c.Tag != "" {
		survivors = filterPosts(survivors, func(p *post.Post) bool {
			for _, t := range p.Tags() {
				if t == c.Tag {
					return true
				}
			}
			return false
		})
	}
	if c.Author != "" {
		survivors = filterPosts(survivors, func(p *post.Post) bool {
			return matchesAuthor(p, c.Author)
		})
	}
	if c.Featured != nil {
		survivors = filterPosts(survivors, func(p *post.Post) bool {
			return p.Featured() == *c.Featured
		})
	}
	if !c.PublishedFrom.IsZero() {
		survivors = filterPosts(survivors, func(p *post.Post) bool {
			return !p.PublishedAt().Before(c.PublishedFrom)
		})
	}
	if !c.PublishedTo.IsZero() {
		survivors = filterPosts(survivors, func(p *post.Post) bool {
			return !p.PublishedAt().After(c.PublishedTo)
		})
	}

	if c.Query == "" {
		return survivors
	}

	ranked := s.Search(survivors, c.Query, opts)
	out := make([]post.Post, len(ranked))
	for i := range ranked {
		out[i] = ranked[i].Post()
	}
	return out
}

func matchesCategory(p *post.Post, want string) bool {
	want = strings.ToLower(want)
	for _, c := range p.Categories() {
		if strings.ToLower(c.Slug) == want || strings.ToLower(c.Name) == want {
			return true
		}
	}
	return false
}

func matchesAuthor(p *post.Post, want string) bool {
	if p.Author().Slug == want {
		return true
	}
	return strings.Contains(
		strings.ToLower(p.Author().Name), strings.ToLower(want),
	)
}

func filterPosts(posts []post.Post, keep func(p *post.Post) bool) []post.Post {
	out := make([]post.Post, 0, len(posts))
	for i := range posts {
		if keep(&posts[i]) {
			out = append(out, posts[i])
		}
	}
	return out
}
