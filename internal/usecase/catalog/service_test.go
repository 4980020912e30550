package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/postrank/internal/domain"
	dompost "github.com/kailas-cloud/postrank/internal/domain/post"
)

type mockRepo struct {
	upsertFn func(ctx context.Context, p *dompost.Post) (bool, error)
	getFn    func(ctx context.Context, id string) (dompost.Post, error)
	deleteFn func(ctx context.Context, id string) error
	allFn    func(ctx context.Context) ([]dompost.Post, error)
}

func (m *mockRepo) Upsert(ctx context.Context, p *dompost.Post) (bool, error) {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, p)
	}
	return true, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (dompost.Post, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return dompost.Post{}, domain.ErrPostNotFound
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockRepo) All(ctx context.Context) ([]dompost.Post, error) {
	if m.allFn != nil {
		return m.allFn(ctx)
	}
	return nil, nil
}

func validInput() Input {
	return Input{
		ID:          "hello-world",
		Title:       "Hello World",
		PublishedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Author:      dompost.Author{Slug: "ann", Name: "Ann"},
	}
}

func TestUpsert_Valid(t *testing.T) {
	var stored *dompost.Post
	repo := &mockRepo{
		upsertFn: func(_ context.Context, p *dompost.Post) (bool, error) {
			stored = p
			return true, nil
		},
	}
	svc := New(repo)

	created, err := svc.Upsert(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if !created {
		t.Error("expected created=true")
	}
	if stored == nil || stored.ID() != "hello-world" {
		t.Errorf("repo received wrong post: %+v", stored)
	}
}

func TestUpsert_InvalidInput(t *testing.T) {
	svc := New(&mockRepo{})

	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"empty ID", func(in *Input) { in.ID = "" }},
		{"uppercase ID", func(in *Input) { in.ID = "Hello-World" }},
		{"empty title", func(in *Input) { in.Title = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Upsert(context.Background(), in)
			if !errors.Is(err, domain.ErrInvalidPost) {
				t.Fatalf("expected ErrInvalidPost, got %v", err)
			}
		})
	}
}

func TestGet_NotFoundPassthrough(t *testing.T) {
	svc := New(&mockRepo{})

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestDelete_RepoError(t *testing.T) {
	boom := errors.New("redis down")
	svc := New(&mockRepo{
		deleteFn: func(context.Context, string) error { return boom },
	})

	if err := svc.Delete(context.Background(), "any"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestAll_Passthrough(t *testing.T) {
	p := dompost.Reconstruct(
		"only-one", "Only One", "", "",
		time.Now().UTC(), dompost.Author{}, nil, nil, false,
	)
	svc := New(&mockRepo{
		allFn: func(context.Context) ([]dompost.Post, error) {
			return []dompost.Post{p}, nil
		},
	})

	posts, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(posts) != 1 || posts[0].ID() != "only-one" {
		t.Errorf("unexpected posts: %v", posts)
	}
}
