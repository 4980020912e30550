// Package criteria defines the hard filters for advanced search.
// An empty field skips its filter entirely rather than matching nothing.
package criteria

import "time"

// Criteria narrows a post collection before optional text ranking.
type Criteria struct {
	// Category matches a category slug or display name (case-insensitive).
	Category string
	// Tag matches a tag exactly.
	Tag string
	// Author matches an author slug exactly or a display-name substring
	// (case-insensitive).
	Author string
	// Featured, when set, requires the flag to equal its value.
	Featured *bool
	// PublishedFrom / PublishedTo bound the publication date inclusively.
	// A zero time leaves that side unbounded.
	PublishedFrom time.Time
	PublishedTo   time.Time
	// Query, when non-empty, re-ranks the filtered set through the search
	// engine.
	Query string
}

// IsZero reports whether no filter or query is set.
func (c *Criteria) IsZero() bool {
	return c.Category == "" && c.Tag == "" && c.Author == "" &&
		c.Featured == nil && c.PublishedFrom.IsZero() && c.PublishedTo.IsZero() &&
		c.Query == ""
}
