package chi

import (
	"time"

	dompost "github.com/kailas-cloud/postrank/internal/domain/post"
	"github.com/kailas-cloud/postrank/internal/domain/search/result"
	"github.com/kailas-cloud/postrank/internal/usecase/pagination"
)

// errorCode identifies the machine-readable error class.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeUnauthorized     errorCode = "unauthorized"
	codeValidationFailed errorCode = "validation_failed"
	codePostNotFound     errorCode = "post_not_found"
	codeInternalError    errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type authorDTO struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type categoryDTO struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// postPayload is the PUT /posts/{id} request body. The ID comes from
// the URL, not the body.
type postPayload struct {
	Title       string        `json:"title"`
	Excerpt     string        `json:"excerpt,omitempty"`
	Content     string        `json:"content,omitempty"`
	PublishedAt time.Time     `json:"published_at"`
	Author      authorDTO     `json:"author"`
	Categories  []categoryDTO `json:"categories,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Featured    bool          `json:"featured,omitempty"`
}

type postResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Excerpt     string        `json:"excerpt,omitempty"`
	Content     string        `json:"content,omitempty"`
	PublishedAt time.Time     `json:"published_at"`
	Author      authorDTO     `json:"author"`
	Categories  []categoryDTO `json:"categories,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	Featured    bool          `json:"featured,omitempty"`
}

func postToResponse(p *dompost.Post, includeContent bool) postResponse {
	cats := p.Categories()
	catDTOs := make([]categoryDTO, len(cats))
	for i, c := range cats {
		catDTOs[i] = categoryDTO{Slug: c.Slug, Name: c.Name}
	}

	resp := postResponse{
		ID:          p.ID(),
		Title:       p.Title(),
		Excerpt:     p.Excerpt(),
		PublishedAt: p.PublishedAt(),
		Author:      authorDTO{Slug: p.Author().Slug, Name: p.Author().Name},
		Categories:  catDTOs,
		Tags:        p.Tags(),
		Featured:    p.Featured(),
	}
	if includeContent {
		resp.Content = p.Content()
	}
	return resp
}

// searchOptionsDTO carries optional per-request overrides of the
// configured search defaults. Absent fields keep the defaults.
type searchOptionsDTO struct {
	Fields         []string `json:"fields,omitempty"`
	MinQueryLength int      `json:"min_query_length,omitempty"`
	Fuzzy          *bool    `json:"fuzzy,omitempty"`
	FuzzyThreshold float64  `json:"fuzzy_threshold,omitempty"`
	Limit          int      `json:"limit,omitempty"`
	IncludeContent bool     `json:"include_content,omitempty"`
}

type searchRequest struct {
	Query   string            `json:"query"`
	Options *searchOptionsDTO `json:"options,omitempty"`
}

type fieldMatchDTO struct {
	Field string  `json:"field"`
	Token string  `json:"token"`
	Score float64 `json:"score"`
}

type searchResultItem struct {
	Post    postResponse    `json:"post"`
	Score   float64         `json:"score"`
	Matches []fieldMatchDTO `json:"matches,omitempty"`
}

type searchResponse struct {
	Query   string             `json:"query"`
	Results []searchResultItem `json:"results"`
	Total   int                `json:"total"`
}

func resultsToDTO(results []result.Result, includeContent bool) []searchResultItem {
	items := make([]searchResultItem, len(results))
	for i := range results {
		r := &results[i]
		p := r.Post()

		matches := r.Matches()
		matchDTOs := make([]fieldMatchDTO, len(matches))
		for j, m := range matches {
			matchDTOs[j] = fieldMatchDTO{Field: m.Field, Token: m.Token, Score: m.Score}
		}

		items[i] = searchResultItem{
			Post:    postToResponse(&p, includeContent),
			Score:   r.Score(),
			Matches: matchDTOs,
		}
	}
	return items
}

// filtersDTO carries the hard filters for advanced search. Absent
// fields skip their filter.
type filtersDTO struct {
	Category      string     `json:"category,omitempty"`
	Tag           string     `json:"tag,omitempty"`
	Author        string     `json:"author,omitempty"`
	Featured      *bool      `json:"featured,omitempty"`
	PublishedFrom *time.Time `json:"published_from,omitempty"`
	PublishedTo   *time.Time `json:"published_to,omitempty"`
}

type advancedSearchRequest struct {
	Query   string            `json:"query,omitempty"`
	Filters filtersDTO        `json:"filters"`
	Options *searchOptionsDTO `json:"options,omitempty"`
}

type suggestResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

type relatedResponse struct {
	PostID  string         `json:"post_id"`
	Related []postResponse `json:"related"`
}

type paginationDTO struct {
	CurrentPage     int  `json:"current_page"`
	TotalPages      int  `json:"total_pages"`
	TotalPosts      int  `json:"total_posts"`
	PostsPerPage    int  `json:"posts_per_page"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

type pageItemDTO struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

type postListResponse struct {
	Items      []postResponse `json:"items"`
	Pagination paginationDTO  `json:"pagination"`
	Window     []pageItemDTO  `json:"window"`
}

func paginationToDTO(d pagination.Data) paginationDTO {
	return paginationDTO{
		CurrentPage:     d.CurrentPage,
		TotalPages:      d.TotalPages,
		TotalPosts:      d.TotalPosts,
		PostsPerPage:    d.PostsPerPage,
		HasNextPage:     d.HasNextPage,
		HasPreviousPage: d.HasPreviousPage,
	}
}

func windowToDTO(items []pagination.Item) []pageItemDTO {
	out := make([]pageItemDTO, len(items))
	for i, it := range items {
		out[i] = pageItemDTO{Page: it.Page, Ellipsis: it.Ellipsis}
	}
	return out
}

type historyResponse struct {
	Queries []string `json:"queries"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
	Posts  int               `json:"posts"`
}

type upsertResponse struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
}
