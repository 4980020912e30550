package result

import "github.com/kailas-cloud/postrank/internal/domain/post"

// FieldMatch records a single accepted token match within one field.
type FieldMatch struct {
	Field string
	Token string
	Score float64
}

// Result is a single search hit with its per-field match breakdown.
type Result struct {
	post    post.Post
	score   float64
	matches []FieldMatch
}

// New creates a search result.
func New(p post.Post, score float64, matches []FieldMatch) Result {
	return Result{post: p, score: score, matches: matches}
}

// Post returns the matched post.
func (r *Result) Post() post.Post { return r.post }

// ID returns the matched post identifier.
func (r *Result) ID() string { return r.post.ID() }

// Score returns the total relevance score.
func (r *Result) Score() float64 { return r.score }

// Matches returns the ordered per-field match records.
func (r *Result) Matches() []FieldMatch { return r.matches }
