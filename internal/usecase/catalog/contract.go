package catalog

import (
	"context"

	dompost "github.com/kailas-cloud/postrank/internal/domain/post"
)

// Repository defines the storage contract for the post catalog.
type Repository interface {
	Upsert(ctx context.Context, p *dompost.Post) (created bool, err error)
	Get(ctx context.Context, id string) (dompost.Post, error)
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]dompost.Post, error)
}
