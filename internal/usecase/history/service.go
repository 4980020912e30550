// Package history tracks recent search queries. Storage failures are
// logged and swallowed so history never breaks a search request.
package history

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxEntries caps the stored list.
const DefaultMaxEntries = 10

// Store defines the persistence contract for the query list.
type Store interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, queries []string) error
	Clear(ctx context.Context) error
}

// Service manages a capped, deduplicated list of recent queries.
type Service struct {
	store      Store
	maxEntries int
	logger     *zap.Logger
}

// New creates a history service.
func New(store Store, maxEntries int, logger *zap.Logger) *Service {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Service{store: store, maxEntries: maxEntries, logger: logger}
}

// Record adds a query to the front of the list. Re-recorded queries
// move to the front instead of duplicating. Blank queries are ignored.
func (s *Service) Record(ctx context.Context, query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}

	existing, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to load search history", zap.Error(err))
		existing = nil
	}

	updated := make([]string, 0, s.maxEntries)
	updated = append(updated, query)
	for _, q := range existing {
		if strings.EqualFold(q, query) {
			continue
		}
		updated = append(updated, q)
		if len(updated) == s.maxEntries {
			break
		}
	}

	if err := s.store.Save(ctx, updated); err != nil {
		s.logger.Warn("Failed to save search history",
			zap.String("query", query),
			zap.Error(err),
		)
	}
}

// Recent returns stored queries, most recent first. Returns an empty
// list when storage is unavailable or the value is unreadable.
func (s *Service) Recent(ctx context.Context) []string {
	queries, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("Failed to load search history", zap.Error(err))
		return []string{}
	}
	if queries == nil {
		return []string{}
	}
	if len(queries) > s.maxEntries {
		queries = queries[:s.maxEntries]
	}
	return queries
}

// Clear removes all stored queries.
func (s *Service) Clear(ctx context.Context) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("Failed to clear search history", zap.Error(err))
	}
}
