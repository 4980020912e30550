// Package search ranks an in-memory post collection against free-text
// queries using per-field weighted substring or edit-distance matching.
// Everything here is a pure transformation: a linear scan over the posts
// the caller supplies, no index, no shared state between calls.
package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/kailas-cloud/postrank/internal/domain/post"
	"github.com/kailas-cloud/postrank/internal/domain/search/options"
	"github.com/kailas-cloud/postrank/internal/domain/search/result"
)

// Boosts applied after field scoring.
const (
	// titleBoost is added when the raw query is a substring of the title.
	titleBoost = 2.0
	// featuredBoost is added for posts marked featured.
	featuredBoost = 1.0
)

// minTokenLength drops query tokens too short to be meaningful.
const minTokenLength = 2

var nonWordRegex = regexp.MustCompile(`[^\w\s]`)

// Config holds the scoring tables and option defaults, constructed once
// at startup and passed into the service instead of living as package
// state. MaxLimit caps the per-request result limit; 0 leaves only the
// options package ceiling in force.
type Config struct {
	FieldWeights map[string]float64
	Defaults     options.Options
	MaxLimit     int
}

// DefaultConfig returns the standard weights and options.
func DefaultConfig() Config {
	return Config{
		FieldWeights: DefaultFieldWeights(),
		Defaults:     options.Default(),
		MaxLimit:     options.MaxLimit,
	}
}

// Service scores and ranks posts.
type Service struct {
	cfg Config
}

// New creates a search service.
func New(cfg Config) *Service {
	if cfg.FieldWeights == nil {
		cfg.FieldWeights = DefaultFieldWeights()
	}
	return &Service{cfg: cfg}
}

// Defaults returns the configured default options.
func (s *Service) Defaults() options.Options { return s.cfg.Defaults }

// Search ranks posts against the query. Queries shorter than the
// configured minimum return an empty result, not an error. Results are
// sorted by score descending; equal scores preserve collection order.
func (s *Service) Search(posts []post.Post, query string, opts options.Options) []result.Result {
	query = strings.TrimSpace(query)
	if len(query) < opts.MinQueryLength() {
		return nil
	}

	tokens := tokenize(query)
	if len(tokens) == 0 {
		return nil
	}

	queryLower := strings.ToLower(query)
	results := make([]result.Result, 0, len(posts))

	for i := range posts {
		p := &posts[i]
		total := 0.0
		var matches []result.FieldMatch

		for _, field := range opts.Fields() {
			value := strings.ToLower(fieldValue(p, field))
			if value == "" {
				continue
			}
			weight := s.fieldWeight(field)

			for _, token := range tokens {
				score := tokenScore(token, value, &opts)
				if score <= 0 {
					continue
				}
				total += score * weight
				matches = append(matches, result.FieldMatch{
					Field: field,
					Token: token,
					Score: score * weight,
				})
			}
		}

		if strings.Contains(strings.ToLower(p.Title()), queryLower) {
			total += titleBoost
		}
		if p.Featured() {
			total += featuredBoost
		}

		if total <= 0 {
			continue
		}
		results = append(results, result.New(*p, total, matches))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})

	limit := opts.Limit()
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// tokenScore scores one query token against one field value.
// Fuzzy mode compares the token against each whitespace word of the
// field and keeps the best normalized edit-distance similarity, accepted
// strictly above the threshold. Exact mode requires a substring match.
func tokenScore(token, fieldValue string, opts *options.Options) float64 {
	if !opts.Fuzzy() {
		if strings.Contains(fieldValue, token) {
			return 1.0
		}
		return 0
	}

	best := 0.0
	for _, word := range strings.Fields(fieldValue) {
		if sim := similarityRatio(token, word); sim > best {
			best = sim
		}
	}
	if best > opts.FuzzyThreshold() {
		return best
	}
	return 0
}

// tokenize lowercases the query, strips non-word characters, splits on
// whitespace, and drops tokens of length <= 2.
func tokenize(query string) []string {
	cleaned := nonWordRegex.ReplaceAllString(strings.ToLower(query), "")
	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, tok := range fields {
		if len(tok) > minTokenLength {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

func (s *Service) fieldWeight(field string) float64 {
	if w, ok := s.cfg.FieldWeights[field]; ok {
		return w
	}
	return 1.0
}
