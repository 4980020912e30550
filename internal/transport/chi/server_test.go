package chi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/postrank/internal/db/memory"
	domrelated "github.com/kailas-cloud/postrank/internal/domain/related"
	historyrepo "github.com/kailas-cloud/postrank/internal/repository/history"
	postrepo "github.com/kailas-cloud/postrank/internal/repository/post"
	cataloguc "github.com/kailas-cloud/postrank/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/postrank/internal/usecase/health"
	historyuc "github.com/kailas-cloud/postrank/internal/usecase/history"
	searchuc "github.com/kailas-cloud/postrank/internal/usecase/search"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	store := memory.NewStore()

	catalog := cataloguc.New(postrepo.New(store, "postrank:"))
	search := searchuc.New(searchuc.DefaultConfig())
	history := historyuc.New(historyrepo.New(store, "postrank:"), 10, zap.NewNop())
	health := healthuc.New(store, catalog)

	server := NewServer(
		catalog, search, history, health,
		domrelated.Default(), PageConfig{}, 0, zap.NewNop(),
	)

	r := chi.NewRouter()
	server.Routes(r)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func seedPost(t *testing.T, h http.Handler, id, title string, tags []string) {
	t.Helper()
	rr := doJSON(t, h, "PUT", "/api/v1/posts/"+id, postPayload{
		Title:       title,
		Excerpt:     "An excerpt about " + title,
		PublishedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Author:      authorDTO{Slug: "ann", Name: "Ann"},
		Categories:  []categoryDTO{{Slug: "engineering", Name: "Engineering"}},
		Tags:        tags,
	})
	if rr.Code != http.StatusCreated {
		t.Fatalf("seed %s: status %d, body %s", id, rr.Code, rr.Body.String())
	}
}

func TestPostLifecycle(t *testing.T) {
	h := newTestRouter(t)

	seedPost(t, h, "go-basics", "Go Basics", []string{"go"})

	rr := doJSON(t, h, "GET", "/api/v1/posts/go-basics", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("get: status %d", rr.Code)
	}
	var got postResponse
	if err := json.NewDecoder(rr.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != "go-basics" || got.Title != "Go Basics" {
		t.Errorf("unexpected post: %+v", got)
	}

	// Second PUT updates instead of creating.
	rr = doJSON(t, h, "PUT", "/api/v1/posts/go-basics", postPayload{
		Title:       "Go Basics, Revised",
		PublishedAt: time.Now().UTC(),
		Author:      authorDTO{Slug: "ann", Name: "Ann"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("update: status %d", rr.Code)
	}

	rr = doJSON(t, h, "DELETE", "/api/v1/posts/go-basics", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rr.Code)
	}

	rr = doJSON(t, h, "GET", "/api/v1/posts/go-basics", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get deleted: status %d", rr.Code)
	}
	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != codePostNotFound {
		t.Errorf("error code: got %s, want %s", errResp.Code, codePostNotFound)
	}
}

func TestUpsertPost_InvalidSlug(t *testing.T) {
	h := newTestRouter(t)

	rr := doJSON(t, h, "PUT", "/api/v1/posts/Bad_Slug", postPayload{
		Title:       "Bad",
		PublishedAt: time.Now().UTC(),
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	var errResp errorResponse
	if err := json.NewDecoder(rr.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if errResp.Code != codeValidationFailed {
		t.Errorf("error code: got %s, want %s", errResp.Code, codeValidationFailed)
	}
}

func TestListPosts_Pagination(t *testing.T) {
	h := newTestRouter(t)

	for i := 0; i < 7; i++ {
		seedPost(t, h, fmt.Sprintf("post-%d", i), fmt.Sprintf("Post %d", i), nil)
	}

	rr := doJSON(t, h, "GET", "/api/v1/posts?page=2&per_page=3", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: status %d", rr.Code)
	}

	var resp postListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 3 {
		t.Errorf("expected 3 items on page 2, got %d", len(resp.Items))
	}
	if resp.Pagination.TotalPages != 3 || resp.Pagination.TotalPosts != 7 {
		t.Errorf("unexpected pagination: %+v", resp.Pagination)
	}
	if !resp.Pagination.HasNextPage || !resp.Pagination.HasPreviousPage {
		t.Errorf("expected both neighbors on page 2: %+v", resp.Pagination)
	}
	if len(resp.Window) != 3 {
		t.Errorf("expected 3 window items, got %v", resp.Window)
	}
}

func TestListPosts_PageOutOfRangeCorrected(t *testing.T) {
	h := newTestRouter(t)
	seedPost(t, h, "solo", "Solo", nil)

	rr := doJSON(t, h, "GET", "/api/v1/posts?page=99", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("list: status %d", rr.Code)
	}
	var resp postListResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Pagination.CurrentPage != 1 {
		t.Errorf("expected corrected page 1, got %d", resp.Pagination.CurrentPage)
	}
	if len(resp.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(resp.Items))
	}
}

func TestSearchEndpoint(t *testing.T) {
	h := newTestRouter(t)
	seedPost(t, h, "react-basics", "React Basics", []string{"react", "frontend"})
	seedPost(t, h, "go-routines", "Goroutines Deep Dive", []string{"go", "concurrency"})

	rr := doJSON(t, h, "POST", "/api/v1/search", searchRequest{Query: "reac"})
	if rr.Code != http.StatusOK {
		t.Fatalf("search: status %d, body %s", rr.Code, rr.Body.String())
	}

	var resp searchResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || resp.Results[0].Post.ID != "react-basics" {
		t.Errorf("expected react-basics only, got %+v", resp.Results)
	}

	// The query lands in history.
	rr = doJSON(t, h, "GET", "/api/v1/search/history", nil)
	var hist historyResponse
	if err := json.NewDecoder(rr.Body).Decode(&hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(hist.Queries) != 1 || hist.Queries[0] != "reac" {
		t.Errorf("expected history [reac], got %v", hist.Queries)
	}

	rr = doJSON(t, h, "DELETE", "/api/v1/search/history", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("clear history: status %d", rr.Code)
	}
	rr = doJSON(t, h, "GET", "/api/v1/search/history", nil)
	hist = historyResponse{}
	if err := json.NewDecoder(rr.Body).Decode(&hist); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(hist.Queries) != 0 {
		t.Errorf("expected empty history, got %v", hist.Queries)
	}
}

func TestAdvancedSearchEndpoint(t *testing.T) {
	h := newTestRouter(t)
	seedPost(t, h, "tagged", "Tagged Post", []string{"redis"})
	seedPost(t, h, "untagged", "Untagged Post", nil)

	rr := doJSON(t, h, "POST", "/api/v1/search/advanced", advancedSearchRequest{
		Filters: filtersDTO{Tag: "redis"},
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("advanced: status %d, body %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Results []postResponse `json:"results"`
		Total   int            `json:"total"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || resp.Results[0].ID != "tagged" {
		t.Errorf("expected only the tagged post, got %+v", resp.Results)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	h := newTestRouter(t)
	seedPost(t, h, "redis-caching", "Redis Caching Patterns", []string{"redis"})

	rr := doJSON(t, h, "GET", "/api/v1/suggest?q=red", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("suggest: status %d", rr.Code)
	}
	var resp suggestResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Suggestions) == 0 {
		t.Fatalf("expected suggestions for 'red', got none")
	}
	if resp.Suggestions[0] != "Redis Caching Patterns" {
		t.Errorf("expected title suggestion first, got %v", resp.Suggestions)
	}
}

func TestRelatedEndpoint(t *testing.T) {
	h := newTestRouter(t)
	seedPost(t, h, "a-post", "First in Series", []string{"go"})
	seedPost(t, h, "b-post", "Second in Series", []string{"go"})
	seedPost(t, h, "c-post", "Third in Series", []string{"go"})

	rr := doJSON(t, h, "GET", "/api/v1/posts/a-post/related?max=2", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("related: status %d, body %s", rr.Code, rr.Body.String())
	}

	var resp relatedResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.PostID != "a-post" {
		t.Errorf("unexpected post_id %q", resp.PostID)
	}
	if len(resp.Related) != 2 {
		t.Fatalf("expected 2 related posts, got %d", len(resp.Related))
	}
	for _, p := range resp.Related {
		if p.ID == "a-post" {
			t.Error("related list must exclude the current post")
		}
	}
}

func TestRelatedEndpoint_InvalidAlgorithm(t *testing.T) {
	h := newTestRouter(t)
	seedPost(t, h, "a-post", "A Post", nil)

	rr := doJSON(t, h, "GET", "/api/v1/posts/a-post/related?algorithm=popularity", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestRouter(t)

	rr := doJSON(t, h, "GET", "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("health: status %d", rr.Code)
	}
	var resp healthResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "ok" || resp.Checks["database"] != "ok" || resp.Checks["catalog"] != "ok" {
		t.Errorf("unexpected health report: %+v", resp)
	}
}

func TestSearch_InvalidBody(t *testing.T) {
	h := newTestRouter(t)

	req := httptest.NewRequest("POST", "/api/v1/search", bytes.NewBufferString("{broken"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
