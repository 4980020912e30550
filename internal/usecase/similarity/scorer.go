// Package similarity scores how closely two posts relate, combining
// category overlap, tag overlap, lexical title/excerpt overlap, and
// author identity into a single weighted value.
package similarity

import (
	"strings"

	"github.com/kailas-cloud/postrank/internal/domain/post"
	"github.com/kailas-cloud/postrank/internal/domain/related"
)

// minContentWordLength filters short stop-ish words out of content overlap.
const minContentWordLength = 3

// weights holds the per-factor contribution to the total score.
type weights struct {
	category float64
	tag      float64
	content  float64
	author   float64
}

// mixedWeights is the standard blend.
var mixedWeights = weights{category: 0.4, tag: 0.3, content: 0.2, author: 0.1}

// weightsFor maps an algorithm to its factor weights. The category and
// tags strategies zero out every other factor so the option genuinely
// changes ranking instead of being a reserved no-op.
func weightsFor(alg related.Algorithm) weights {
	switch alg {
	case related.AlgorithmCategory:
		return weights{category: 1}
	case related.AlgorithmTags:
		return weights{tag: 1}
	default:
		return mixedWeights
	}
}

// Score computes the weighted similarity of two posts under the given
// algorithm. Each factor is a ratio in [0,1]; the weighted sum is >= 0
// and reaches 1.0 for a post compared with itself.
func Score(a, b *post.Post, alg related.Algorithm) float64 {
	w := weightsFor(alg)

	s := 0.0
	if w.category > 0 {
		s += w.category * jaccard(a.CategorySlugs(), b.CategorySlugs())
	}
	if w.tag > 0 {
		s += w.tag * jaccard(a.Tags(), b.Tags())
	}
	if w.content > 0 {
		s += w.content * contentOverlap(a, b)
	}
	if w.author > 0 && a.Author().Slug != "" && a.Author().Slug == b.Author().Slug {
		s += w.author
	}
	return s
}

// jaccard returns |A∩B| / |A∪B| over two string sets, 0 for an empty union.
func jaccard(a, b []string) float64 {
	setA := toSet(a)
	setB := toSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 0
	}
	common := 0
	for s := range setA {
		if setB[s] {
			common++
		}
	}
	unionSize := len(setA) + len(setB) - common
	return float64(common) / float64(unionSize)
}

func toSet(ss []string) map[string]bool {
	set := make(map[string]bool, len(ss))
	for _, s := range ss {
		set[s] = true
	}
	return set
}

// contentOverlap measures lexical overlap of the lowercased title+excerpt
// word lists, restricted to words longer than minContentWordLength.
// Common occurrences keep duplicates from the first post's list; the
// denominator is the size of the deduplicated union.
func contentOverlap(a, b *post.Post) float64 {
	wordsA := contentWords(a)
	wordsB := contentWords(b)

	setB := make(map[string]bool, len(wordsB))
	for _, w := range wordsB {
		setB[w] = true
	}

	union := make(map[string]bool, len(wordsA)+len(wordsB))
	for _, w := range wordsA {
		union[w] = true
	}
	for _, w := range wordsB {
		union[w] = true
	}
	if len(union) == 0 {
		return 0
	}

	common := 0
	for _, w := range wordsA {
		if setB[w] {
			common++
		}
	}
	return float64(common) / float64(len(union))
}

func contentWords(p *post.Post) []string {
	text := strings.ToLower(p.Title() + " " + p.Excerpt())
	fields := strings.Fields(text)
	words := fields[:0]
	for _, w := range fields {
		if len(w) > minContentWordLength {
			words = append(words, w)
		}
	}
	return words
}
