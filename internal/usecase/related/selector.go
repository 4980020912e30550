// Package related selects posts to suggest alongside a given post.
// Selection is staged: similarity first, then shared-category, shared-tag,
// and recency fallbacks until the target count is filled.
package related

import (
	"sort"

	"github.com/kailas-cloud/postrank/internal/domain/post"
	"github.com/kailas-cloud/postrank/internal/domain/related"
	"github.com/kailas-cloud/postrank/internal/usecase/similarity"
)

// Select returns up to cfg.MaxPosts() posts related to current, without
// duplicates, excluding current when configured. Candidates are drawn
// from all in its given order; ties within a stage preserve that order.
func Select(current *post.Post, all []post.Post, cfg related.Config) []post.Post {
	candidates := make([]post.Post, 0, len(all))
	for _, p := range all {
		if cfg.ExcludeCurrentPost() && p.ID() == current.ID() {
			continue
		}
		candidates = append(candidates, p)
	}

	maxPosts := cfg.MaxPosts()
	selected := make([]post.Post, 0, maxPosts)
	seen := make(map[string]bool, maxPosts)

	take := func(p post.Post) {
		if len(selected) < maxPosts && !seen[p.ID()] {
			selected = append(selected, p)
			seen[p.ID()] = true
		}
	}

	// Stage 1: similarity score descending.
	type scored struct {
		p     post.Post
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, p := range candidates {
		s := similarity.Score(current, &p, cfg.Algorithm())
		if s > 0 {
			ranked = append(ranked, scored{p: p, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	for _, r := range ranked {
		take(r.p)
	}
	if len(selected) >= maxPosts {
		return selected
	}

	// Stage 2: shared category, most recent first.
	byCategory := make([]post.Post, 0, len(candidates))
	for _, p := range candidates {
		if p.SharesCategory(current) {
			byCategory = append(byCategory, p)
		}
	}
	sort.SliceStable(byCategory, func(i, j int) bool {
		return byCategory[i].PublishedAt().After(byCategory[j].PublishedAt())
	})
	for _, p := range byCategory {
		take(p)
	}
	if len(selected) >= maxPosts {
		return selected
	}

	// Stage 3: shared tags, shared-tag count descending.
	type tagged struct {
		p      post.Post
		shared int
	}
	byTag := make([]tagged, 0, len(candidates))
	for _, p := range candidates {
		if n := p.SharedTagCount(current); n > 0 {
			byTag = append(byTag, tagged{p: p, shared: n})
		}
	}
	sort.SliceStable(byTag, func(i, j int) bool {
		return byTag[i].shared > byTag[j].shared
	})
	for _, tp := range byTag {
		take(tp.p)
	}
	if len(selected) >= maxPosts {
		return selected
	}

	// Stage 4: most recent overall.
	recent := make([]post.Post, len(candidates))
	copy(recent, candidates)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].PublishedAt().After(recent[j].PublishedAt())
	})
	for _, p := range recent {
		take(p)
	}

	return selected
}
