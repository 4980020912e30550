// Package history persists recent search queries as a capped JSON list.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/postrank/internal/db"
)

// store is the consumer interface for history operations (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Del(ctx context.Context, key string) error
}

// Store keeps the whole history under a single key, most recent first.
type Store struct {
	store  store
	prefix string
}

// New creates a history store. The list lives at {prefix}history.
func New(s store, prefix string) *Store {
	return &Store{store: s, prefix: prefix}
}

// Load returns the stored queries, most recent first. A missing key
// yields an empty list.
func (s *Store) Load(ctx context.Context) ([]string, error) {
	data, err := s.store.Get(ctx, s.key())
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("history GET %s: %w", s.key(), err)
	}

	var queries []string
	if err := json.Unmarshal(data, &queries); err != nil {
		return nil, fmt.Errorf("history GET %s decode: %w", s.key(), err)
	}
	return queries, nil
}

// Save replaces the stored list.
func (s *Store) Save(ctx context.Context, queries []string) error {
	data, err := json.Marshal(queries)
	if err != nil {
		return fmt.Errorf("history encode: %w", err)
	}
	if err := s.store.Set(ctx, s.key(), data); err != nil {
		return fmt.Errorf("history SET %s: %w", s.key(), err)
	}
	return nil
}

// Clear removes the list entirely.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.store.Del(ctx, s.key()); err != nil {
		return fmt.Errorf("history DEL %s: %w", s.key(), err)
	}
	return nil
}

func (s *Store) key() string {
	return s.prefix + "history"
}
