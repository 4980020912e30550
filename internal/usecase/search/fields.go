package search

import (
	"strings"

	"github.com/kailas-cloud/postrank/internal/domain/post"
)

// extractor pulls the searchable text of one named field out of a post.
type extractor func(p *post.Post) string

// fieldExtractors is the closed set of searchable fields. Unknown field
// names extract an empty string and therefore never match.
var fieldExtractors = map[string]extractor{
	"title":   func(p *post.Post) string { return p.Title() },
	"excerpt": func(p *post.Post) string { return p.Excerpt() },
	"content": func(p *post.Post) string { return p.Content() },
	"tags": func(p *post.Post) string {
		return strings.Join(p.Tags(), " ")
	},
	"categories": func(p *post.Post) string {
		cats := p.Categories()
		names := make([]string, len(cats))
		for i, c := range cats {
			names[i] = c.Name
		}
		return strings.Join(names, " ")
	},
	"author": func(p *post.Post) string { return p.Author().Name },
}

// fieldValue returns the searchable text for a field, "" for unknown names.
func fieldValue(p *post.Post, field string) string {
	ex, ok := fieldExtractors[field]
	if !ok {
		return ""
	}
	return ex(p)
}

// DefaultFieldWeights is the standard per-field score multiplier table.
// Unknown fields weigh 1.
func DefaultFieldWeights() map[string]float64 {
	return map[string]float64{
		"title":      3,
		"tags":       2,
		"categories": 1.5,
		"excerpt":    1.2,
		"author":     1,
		"content":    0.8,
	}
}
