// Package catalog manages the stored post collection.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/postrank/internal/domain"
	dompost "github.com/kailas-cloud/postrank/internal/domain/post"
)

// Input carries the raw fields of a post before validation.
type Input struct {
	ID          string
	Title       string
	Excerpt     string
	Content     string
	PublishedAt time.Time
	Author      dompost.Author
	Categories  []dompost.Category
	Tags        []string
	Featured    bool
}

// Service handles post catalog CRUD.
type Service struct {
	repo Repository
}

// New creates a catalog service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert validates the input and stores the post.
// Returns true if the post was created, false if updated.
func (s *Service) Upsert(ctx context.Context, in Input) (bool, error) {
	p, err := dompost.New(
		in.ID, in.Title, in.Excerpt, in.Content,
		in.PublishedAt, in.Author, in.Categories, in.Tags, in.Featured,
	)
	if err != nil {
		return false, fmt.Errorf("%w: %s", domain.ErrInvalidPost, err)
	}

	created, err := s.repo.Upsert(ctx, &p)
	if err != nil {
		return false, fmt.Errorf("upsert post: %w", err)
	}
	return created, nil
}

// Get returns a single post by ID.
func (s *Service) Get(ctx context.Context, id string) (dompost.Post, error) {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return dompost.Post{}, fmt.Errorf("get post: %w", err)
	}
	return p, nil
}

// Delete removes a post by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// All returns every stored post, newest first.
func (s *Service) All(ctx context.Context) ([]dompost.Post, error) {
	posts, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}
