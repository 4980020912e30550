// Package postrank ranks, searches, and paginates blog posts. The
// functions here are pure: they take plain post values and return plain
// results, with no server or store required.
package postrank

import (
	"time"

	dompost "github.com/kailas-cloud/postrank/internal/domain/post"
	domrelated "github.com/kailas-cloud/postrank/internal/domain/related"
	"github.com/kailas-cloud/postrank/internal/domain/search/criteria"
	"github.com/kailas-cloud/postrank/internal/domain/search/options"
	"github.com/kailas-cloud/postrank/internal/usecase/pagination"
	relateduc "github.com/kailas-cloud/postrank/internal/usecase/related"
	searchuc "github.com/kailas-cloud/postrank/internal/usecase/search"
	"github.com/kailas-cloud/postrank/internal/usecase/similarity"
)

// Author identifies a post author.
type Author struct {
	Slug string
	Name string
}

// Category labels a post.
type Category struct {
	Slug string
	Name string
}

// Post is a plain blog post value.
type Post struct {
	ID          string
	Title       string
	Excerpt     string
	Content     string
	PublishedAt time.Time
	Author      Author
	Categories  []Category
	Tags        []string
	Featured    bool
}

// SearchOptions tunes the search engine. Zero values fall back to the
// defaults: fields {title, excerpt, content, tags}, minimum query
// length 2, fuzzy threshold 0.6, limit 10.
type SearchOptions struct {
	Fields         []string
	MinQueryLength int
	Fuzzy          bool
	FuzzyThreshold float64
	Limit          int
	IncludeContent bool
}

// FieldMatch records which token matched which field.
type FieldMatch struct {
	Field string
	Token string
	Score float64
}

// SearchResult pairs a post with its relevance score.
type SearchResult struct {
	Post    Post
	Score   float64
	Matches []FieldMatch
}

// AdvancedFilters narrows a collection before optional re-ranking.
// Empty fields skip their filter.
type AdvancedFilters struct {
	Category      string
	Tag           string
	Author        string
	Featured      *bool
	PublishedFrom time.Time
	PublishedTo   time.Time
	Query         string
}

// RelatedOptions tunes related-post selection. Algorithm is one of
// "mixed" (default), "category", or "tags".
type RelatedOptions struct {
	MaxPosts  int
	Algorithm string
}

// Pagination describes one page of a collection.
type Pagination struct {
	CurrentPage     int
	TotalPages      int
	TotalPosts      int
	PostsPerPage    int
	HasNextPage     bool
	HasPreviousPage bool
}

// PageItem is one slot in a page number window: a page number or an
// ellipsis gap.
type PageItem struct {
	Page     int
	Ellipsis bool
}

// PageValidation reports whether a page number is in range and, when it
// is not, the nearest valid page.
type PageValidation struct {
	IsValid       bool
	CorrectedPage int
}

// Search ranks posts against a free-text query.
func Search(posts []Post, query string, opts SearchOptions) ([]SearchResult, error) {
	o, err := toOptions(opts)
	if err != nil {
		return nil, err
	}

	svc := searchuc.New(searchuc.DefaultConfig())
	results := svc.Search(toDomainPosts(posts), query, o)

	out := make([]SearchResult, len(results))
	for i := range results {
		r := &results[i]
		p := r.Post()

		matches := r.Matches()
		fm := make([]FieldMatch, len(matches))
		for j, m := range matches {
			fm[j] = FieldMatch{Field: m.Field, Token: m.Token, Score: m.Score}
		}

		out[i] = SearchResult{
			Post:    fromDomainPost(&p),
			Score:   r.Score(),
			Matches: fm,
		}
	}
	return out, nil
}

// AdvancedSearch applies hard filters, then re-ranks through Search
// when a query is present. Without a query the filtered posts keep the
// input order.
func AdvancedSearch(posts []Post, filters AdvancedFilters, opts SearchOptions) ([]Post, error) {
	o, err := toOptions(opts)
	if err != nil {
		return nil, err
	}

	svc := searchuc.New(searchuc.DefaultConfig())
	matched := svc.Advanced(toDomainPosts(posts), criteria.Criteria{
		Category:      filters.Category,
		Tag:           filters.Tag,
		Author:        filters.Author,
		Featured:      filters.Featured,
		PublishedFrom: filters.PublishedFrom,
		PublishedTo:   filters.PublishedTo,
		Query:         filters.Query,
	}, o)

	out := make([]Post, len(matched))
	for i := range matched {
		out[i] = fromDomainPost(&matched[i])
	}
	return out, nil
}

// Suggest returns up to max distinct autocomplete strings drawn from
// titles, then tags, then category names.
func Suggest(posts []Post, query string, max int) []string {
	svc := searchuc.New(searchuc.DefaultConfig())
	return svc.Suggest(toDomainPosts(posts), query, max)
}

// RelatedPosts selects posts related to current, falling back from
// similarity to shared category, shared tags, and finally recency. The
// current post is always excluded.
func RelatedPosts(current Post, posts []Post, opts RelatedOptions) ([]Post, error) {
	alg := domrelated.AlgorithmMixed
	if opts.Algorithm != "" {
		alg = domrelated.Algorithm(opts.Algorithm)
	}
	cfg, err := domrelated.New(opts.MaxPosts, alg, true)
	if err != nil {
		return nil, err
	}

	cur := toDomainPost(&current)
	selected := relateduc.Select(&cur, toDomainPosts(posts), cfg)

	out := make([]Post, len(selected))
	for i := range selected {
		out[i] = fromDomainPost(&selected[i])
	}
	return out, nil
}

// SimilarityScore computes the weighted similarity of two posts in
// [0, 1]: shared categories 0.4, shared tags 0.3, title/excerpt word
// overlap 0.2, same author 0.1.
func SimilarityScore(a, b Post) float64 {
	da, db := toDomainPost(&a), toDomainPost(&b)
	return similarity.Score(&da, &db, domrelated.AlgorithmMixed)
}

// Paginate computes page metadata for a collection of totalPosts items.
func Paginate(totalPosts, currentPage, postsPerPage int) Pagination {
	d := pagination.Paginate(totalPosts, currentPage, postsPerPage)
	return Pagination{
		CurrentPage:     d.CurrentPage,
		TotalPages:      d.TotalPages,
		TotalPosts:      d.TotalPosts,
		PostsPerPage:    d.PostsPerPage,
		HasNextPage:     d.HasNextPage,
		HasPreviousPage: d.HasPreviousPage,
	}
}

// PagePosts returns the slice of posts belonging to currentPage.
func PagePosts(posts []Post, currentPage, postsPerPage int) []Post {
	return pagination.Slice(posts, currentPage, postsPerPage)
}

// PageWindow builds a compressed page-number strip of at most
// maxVisible items, with ellipsis gaps around the current page.
func PageWindow(currentPage, totalPages, maxVisible int) []PageItem {
	items := pagination.Window(currentPage, totalPages, maxVisible)
	out := make([]PageItem, len(items))
	for i, it := range items {
		out[i] = PageItem{Page: it.Page, Ellipsis: it.Ellipsis}
	}
	return out
}

// ValidatePage checks currentPage against totalPages and suggests the
// nearest valid page when out of range.
func ValidatePage(currentPage, totalPages int) PageValidation {
	v := pagination.Validate(currentPage, totalPages)
	return PageValidation{IsValid: v.IsValid, CorrectedPage: v.CorrectedPage}
}

func toOptions(opts SearchOptions) (options.Options, error) {
	return options.New(
		opts.Fields,
		opts.MinQueryLength,
		opts.Fuzzy,
		opts.FuzzyThreshold,
		opts.Limit,
		opts.IncludeContent,
	)
}

func toDomainPost(p *Post) dompost.Post {
	cats := make([]dompost.Category, len(p.Categories))
	for i, c := range p.Categories {
		cats[i] = dompost.Category{Slug: c.Slug, Name: c.Name}
	}
	return dompost.Reconstruct(
		p.ID, p.Title, p.Excerpt, p.Content,
		p.PublishedAt,
		dompost.Author{Slug: p.Author.Slug, Name: p.Author.Name},
		cats, p.Tags, p.Featured,
	)
}

func toDomainPosts(posts []Post) []dompost.Post {
	out := make([]dompost.Post, len(posts))
	for i := range posts {
		out[i] = toDomainPost(&posts[i])
	}
	return out
}

func fromDomainPost(p *dompost.Post) Post {
	cats := p.Categories()
	outCats := make([]Category, len(cats))
	for i, c := range cats {
		outCats[i] = Category{Slug: c.Slug, Name: c.Name}
	}
	return Post{
		ID:          p.ID(),
		Title:       p.Title(),
		Excerpt:     p.Excerpt(),
		Content:     p.Content(),
		PublishedAt: p.PublishedAt(),
		Author:      Author{Slug: p.Author().Slug, Name: p.Author().Name},
		Categories:  outCats,
		Tags:        p.Tags(),
		Featured:    p.Featured(),
	}
}
