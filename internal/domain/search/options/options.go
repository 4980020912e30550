package options

import "fmt"

// Search parameter limits and defaults.
const (
	DefaultMinQueryLength = 2
	DefaultFuzzyThreshold = 0.6
	DefaultLimit          = 10
	MaxLimit              = 100
)

// DefaultFields is the field set searched when none is configured.
func DefaultFields() []string {
	return []string{"title", "excerpt", "content", "tags"}
}

// Options is a validated search configuration.
type Options struct {
	fields         []string
	minQueryLength int
	fuzzy          bool
	fuzzyThreshold float64
	limit          int
	includeContent bool
}

// New validates and normalizes search options.
// Zero values fall back to defaults: fields={title,excerpt,content,tags},
// minQueryLength=2, fuzzyThreshold=0.6, limit=10. Fuzzy matching is a
// caller decision and is not defaulted here.
func New(
	fields []string,
	minQueryLength int,
	fuzzy bool,
	fuzzyThreshold float64,
	limit int,
	includeContent bool,
) (Options, error) {
	if len(fields) == 0 {
		fields = DefaultFields()
	}
	if minQueryLength <= 0 {
		minQueryLength = DefaultMinQueryLength
	}
	if fuzzyThreshold == 0 {
		fuzzyThreshold = DefaultFuzzyThreshold
	}
	if fuzzyThreshold < 0 || fuzzyThreshold > 1 {
		return Options{}, fmt.Errorf("fuzzy threshold must be between 0 and 1")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Options{
		fields:         fields,
		minQueryLength: minQueryLength,
		fuzzy:          fuzzy,
		fuzzyThreshold: fuzzyThreshold,
		limit:          limit,
		includeContent: includeContent,
	}, nil
}

// Default returns the standard options with fuzzy matching enabled.
func Default() Options {
	o, _ := New(nil, 0, true, 0, 0, false)
	return o
}

// Fields returns the ordered field names to search.
func (o *Options) Fields() []string { return o.fields }

// MinQueryLength returns the minimum query length for a non-empty result.
func (o *Options) MinQueryLength() int { return o.minQueryLength }

// Fuzzy reports whether edit-distance matching is enabled.
func (o *Options) Fuzzy() bool { return o.fuzzy }

// FuzzyThreshold returns the minimum accepted normalized similarity.
func (o *Options) FuzzyThreshold() float64 { return o.fuzzyThreshold }

// Limit returns the maximum number of results.
func (o *Options) Limit() int { return o.limit }

// IncludeContent reports whether result payloads should carry full content.
// Carried for API compatibility; scoring does not consult it.
func (o *Options) IncludeContent() bool { return o.includeContent }
