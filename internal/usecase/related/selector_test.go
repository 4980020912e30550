package related

import (
	"testing"
	"time"

	"github.com/kailas-cloud/postrank/internal/domain/post"
	"github.com/kailas-cloud/postrank/internal/domain/related"
	"github.com/kailas-cloud/postrank/internal/usecase/similarity"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

// makePost titles the post with its bare id so fixtures share no title
// words: nothing scores on content overlap unless a test builds it in.
func makePost(id string, published time.Time, authorSlug string, cats, tags []string) post.Post {
	categories := make([]post.Category, len(cats))
	for i, c := range cats {
		categories[i] = post.Category{Slug: c, Name: c}
	}
	return post.Reconstruct(
		id, id, "", "", published,
		post.Author{Slug: authorSlug}, categories, tags, false,
	)
}

func mustConfig(t *testing.T, maxPosts int) related.Config {
	t.Helper()
	cfg, err := related.New(maxPosts, related.AlgorithmMixed, true)
	if err != nil {
		t.Fatalf("related.New: %v", err)
	}
	return cfg
}

func ids(posts []post.Post) []string {
	out := make([]string, len(posts))
	for i := range posts {
		out[i] = posts[i].ID()
	}
	return out
}

func TestSelect_ExcludesCurrentPost(t *testing.T) {
	current := makePost("current", day(1), "jane", []string{"go"}, nil)
	all := []post.Post{
		current,
		makePost("other", day(2), "jane", []string{"go"}, nil),
	}

	got := Select(&current, all, mustConfig(t, 3))
	for _, p := range got {
		if p.ID() == "current" {
			t.Fatal("current post must not appear in its own related list")
		}
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 related post, got %d", len(got))
	}
}

func TestSelect_SimilarityRanksFirst(t *testing.T) {
	current := makePost("current", day(1), "jane", []string{"go", "web"}, []string{"http"})
	twin := makePost("twin", day(2), "jane", []string{"go", "web"}, []string{"http"})
	cousin := makePost("cousin", day(3), "john", []string{"go"}, nil)
	stranger := makePost("stranger", day(4), "kim", []string{"cooking"}, []string{"pasta"})

	got := Select(&current, []post.Post{stranger, cousin, twin}, mustConfig(t, 3))
	if len(got) == 0 || got[0].ID() != "twin" {
		t.Fatalf("expected twin first, got %v", ids(got))
	}
}

func TestSelect_CategoryFallbackNewestFirst(t *testing.T) {
	// Under the tags algorithm these candidates score zero (no tags), so
	// the shared-category stage decides, ordered by recency.
	current := makePost("current", day(1), "", []string{"go"}, nil)
	older := makePost("older", day(2), "", []string{"go"}, nil)
	newer := makePost("newer", day(5), "", []string{"go"}, nil)

	cfg, err := related.New(2, related.AlgorithmTags, true)
	if err != nil {
		t.Fatalf("related.New: %v", err)
	}
	got := Select(&current, []post.Post{older, newer}, cfg)
	want := []string{"newer", "older"}
	for i, id := range want {
		if got[i].ID() != id {
			t.Fatalf("expected %v, got %v", want, ids(got))
		}
	}
}

func TestSelect_RecencyIsLastResort(t *testing.T) {
	current := makePost("current", day(1), "", nil, nil)
	older := makePost("older", day(2), "", nil, nil)
	newer := makePost("newer", day(5), "", nil, nil)

	// No shared categories, tags, author, or title words: every earlier
	// stage must score zero so only the recency stage can fill the list.
	for _, p := range []*post.Post{&older, &newer} {
		if s := similarity.Score(&current, p, related.AlgorithmMixed); s != 0 {
			t.Fatalf("fixture leaks similarity %g for %s", s, p.ID())
		}
	}

	got := Select(&current, []post.Post{older, newer}, mustConfig(t, 2))
	want := []string{"newer", "older"}
	for i, id := range want {
		if got[i].ID() != id {
			t.Fatalf("expected %v, got %v", want, ids(got))
		}
	}
}

func TestSelect_TagFallbackBySharedCount(t *testing.T) {
	current := makePost("current", day(1), "", nil, []string{"a", "b", "c"})
	oneTag := makePost("one", day(9), "", nil, []string{"c", "x", "y"})
	twoTags := makePost("two", day(2), "", nil, []string{"a", "b", "z"})

	cfg, err := related.New(2, related.AlgorithmCategory, true)
	if err != nil {
		t.Fatalf("related.New: %v", err)
	}
	// Category algorithm scores 0 here (no categories), so the tag stage
	// decides: more shared tags wins despite being older.
	got := Select(&current, []post.Post{oneTag, twoTags}, cfg)
	if len(got) != 2 || got[0].ID() != "two" {
		t.Fatalf("expected two-shared-tags post first, got %v", ids(got))
	}
}

func TestSelect_NoDuplicatesAcrossStages(t *testing.T) {
	current := makePost("current", day(1), "jane", []string{"go"}, []string{"api"})
	// Scores on similarity AND shares category AND shares tag AND is recent.
	everything := makePost("everything", day(9), "jane", []string{"go"}, []string{"api"})
	filler := makePost("filler", day(2), "", nil, nil)

	got := Select(&current, []post.Post{everything, filler}, mustConfig(t, 3))
	counts := make(map[string]int)
	for _, p := range got {
		counts[p.ID()]++
	}
	if counts["everything"] != 1 {
		t.Fatalf("post selected %d times, want once: %v", counts["everything"], ids(got))
	}
}

func TestSelect_FewerPostsThanRequested(t *testing.T) {
	current := makePost("current", day(1), "", nil, nil)
	only := makePost("only", day(2), "", nil, nil)

	got := Select(&current, []post.Post{current, only}, mustConfig(t, 5))
	if len(got) != 1 {
		t.Fatalf("expected 1 post, got %d", len(got))
	}
}

func TestSelect_TruncatesToMaxPosts(t *testing.T) {
	current := makePost("current", day(1), "", []string{"go"}, nil)
	all := make([]post.Post, 0, 10)
	for i := 0; i < 10; i++ {
		all = append(all, makePost(
			"p-"+string(rune('a'+i)), day(i+2), "", []string{"go"}, nil))
	}

	got := Select(&current, all, mustConfig(t, 3))
	if len(got) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(got))
	}
}
