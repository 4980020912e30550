package health

import (
	"context"

	"github.com/kailas-cloud/postrank/internal/domain/post"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// CatalogReader confirms the post catalog can be read end to end,
// storage driver included.
type CatalogReader interface {
	All(ctx context.Context) ([]post.Post, error)
}
