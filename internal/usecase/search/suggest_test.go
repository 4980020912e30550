package search

import (
	"reflect"
	"testing"
	"time"

	"github.com/kailas-cloud/postrank/internal/domain/post"
)

func suggestCorpus() []post.Post {
	return []post.Post{
		post.Reconstruct("a", "React Basics", "", "", time.Time{},
			post.Author{}, []post.Category{{Slug: "frontend", Name: "Frontend"}},
			[]string{"react", "beginners"}, false),
		post.Reconstruct("b", "Advanced React Patterns", "", "", time.Time{},
			post.Author{}, []post.Category{{Slug: "react-ecosystem", Name: "React Ecosystem"}},
			[]string{"react", "patterns"}, false),
	}
}

func TestSuggest_QueryTooShort(t *testing.T) {
	svc := New(DefaultConfig())
	if got := svc.Suggest(suggestCorpus(), "r", 5); len(got) != 0 {
		t.Fatalf("expected no suggestions for one-char query, got %v", got)
	}
}

func TestSuggest_TitlesThenTagsThenCategories(t *testing.T) {
	svc := New(DefaultConfig())

	got := svc.Suggest(suggestCorpus(), "react", 10)
	want := []string{
		"React Basics",
		"Advanced React Patterns",
		"react",
		"React Ecosystem",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestSuggest_Deduplicates(t *testing.T) {
	svc := New(DefaultConfig())

	got := svc.Suggest(suggestCorpus(), "react", 10)
	seen := make(map[string]int)
	for _, s := range got {
		seen[s]++
		if seen[s] > 1 {
			t.Fatalf("duplicate suggestion %q in %v", s, got)
		}
	}
}

func TestSuggest_Capped(t *testing.T) {
	svc := New(DefaultConfig())

	got := svc.Suggest(suggestCorpus(), "react", 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %v", got)
	}
}
