// Package post persists the post catalog as one JSON value per post.
package post

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/kailas-cloud/postrank/internal/db"
	"github.com/kailas-cloud/postrank/internal/domain"
	dompost "github.com/kailas-cloud/postrank/internal/domain/post"
)

// store is the consumer interface for post persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements usecase/catalog.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a post repository. Keys are {prefix}post:{id}.
func New(s store, prefix string) *Repo {
	return &Repo{store: s, prefix: prefix}
}

// Upsert creates or updates a post. Returns true if created.
func (r *Repo) Upsert(ctx context.Context, p *dompost.Post) (bool, error) {
	key := r.key(p.ID())
	data, err := json.Marshal(toDTO(p))
	if err != nil {
		return false, fmt.Errorf("marshal post: %w", err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return false, fmt.Errorf("set %s: %w", key, err)
	}
	return !exists, nil
}

// Get returns a post by ID.
func (r *Repo) Get(ctx context.Context, id string) (dompost.Post, error) {
	raw, err := r.store.Get(ctx, r.key(id))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return dompost.Post{}, domain.ErrPostNotFound
		}
		return dompost.Post{}, fmt.Errorf("get %s: %w", r.key(id), err)
	}

	var dto postDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return dompost.Post{}, fmt.Errorf("unmarshal post %s: %w", id, err)
	}
	return fromDTO(dto), nil
}

// Delete removes a post. Missing posts yield domain.ErrPostNotFound.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.key(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrPostNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// All returns every stored post ordered by publication date, newest
// first, with ID as tiebreaker. Entries that fail to decode are
// skipped rather than failing the whole listing.
func (r *Repo) All(ctx context.Context) ([]dompost.Post, error) {
	keys, err := r.store.Scan(ctx, r.prefix+"post:*")
	if err != nil {
		return nil, fmt.Errorf("scan posts: %w", err)
	}

	posts := make([]dompost.Post, 0, len(keys))
	for _, key := range keys {
		raw, err := r.store.Get(ctx, key)
		if err != nil {
			if errors.Is(err, db.ErrKeyNotFound) {
				continue // deleted between scan and get
			}
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		var dto postDTO
		if err := json.Unmarshal(raw, &dto); err != nil {
			continue
		}
		posts = append(posts, fromDTO(dto))
	}

	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].PublishedAt().Equal(posts[j].PublishedAt()) {
			return posts[i].PublishedAt().After(posts[j].PublishedAt())
		}
		return posts[i].ID() < posts[j].ID()
	})
	return posts, nil
}

func (r *Repo) key(id string) string {
	return r.prefix + "post:" + id
}
