package related

import "fmt"

// Algorithm selects the similarity weighting strategy.
type Algorithm string

const (
	// AlgorithmMixed combines category, tag, content, and author signals.
	AlgorithmMixed Algorithm = "mixed"
	// AlgorithmCategory ranks by category overlap only.
	AlgorithmCategory Algorithm = "category"
	// AlgorithmTags ranks by tag overlap only.
	AlgorithmTags Algorithm = "tags"
)

// IsValid reports whether a is a known algorithm.
func (a Algorithm) IsValid() bool {
	switch a {
	case AlgorithmMixed, AlgorithmCategory, AlgorithmTags:
		return true
	}
	return false
}

// DefaultMaxPosts is the default related-posts count.
const DefaultMaxPosts = 3

// MaxPostsCeiling bounds how many related posts may be requested.
const MaxPostsCeiling = 50

// Config holds validated related-posts selection settings.
type Config struct {
	maxPosts           int
	algorithm          Algorithm
	excludeCurrentPost bool
}

// New validates and normalizes a related-posts config.
// Defaults: maxPosts=3, algorithm=mixed. excludeCurrent defaults to true
// via Default(); callers constructing explicitly state it.
func New(maxPosts int, algorithm Algorithm, excludeCurrent bool) (Config, error) {
	if maxPosts <= 0 {
		maxPosts = DefaultMaxPosts
	}
	if maxPosts > MaxPostsCeiling {
		maxPosts = MaxPostsCeiling
	}
	if algorithm == "" {
		algorithm = AlgorithmMixed
	}
	if !algorithm.IsValid() {
		return Config{}, fmt.Errorf("invalid related-posts algorithm: %q", algorithm)
	}
	return Config{
		maxPosts:           maxPosts,
		algorithm:          algorithm,
		excludeCurrentPost: excludeCurrent,
	}, nil
}

// Default returns the standard config: 3 posts, mixed weighting,
// current post excluded.
func Default() Config {
	c, _ := New(0, "", true)
	return c
}

// MaxPosts returns the target number of related posts.
func (c *Config) MaxPosts() int { return c.maxPosts }

// Algorithm returns the weighting strategy.
func (c *Config) Algorithm() Algorithm { return c.algorithm }

// ExcludeCurrentPost reports whether the anchor post is excluded.
func (c *Config) ExcludeCurrentPost() bool { return c.excludeCurrentPost }
