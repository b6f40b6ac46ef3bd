// ABOUTME: Checkpoint store persists the sync high-water mark through the cache interface
// ABOUTME: Pull uses it to fetch only the items that arrived since the previous run

package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"feedsync/core/domain"
	coreerrors "feedsync/core/errors"
	"feedsync/core/interfaces"
)

const checkpointPrefix = "checkpoint:"

// Checkpoint records how far a named sync has progressed
type Checkpoint struct {
	// Cursor is the highest item ID returned so far
	Cursor    int64     `json:"cursor"`
	UpdatedAt time.Time `json:"updated_at"`

	// Items is the number of items the last pull returned
	Items int `json:"items"`
}

// CheckpointStore reads and writes checkpoints. Entries never expire.
type CheckpointStore struct {
	cache interfaces.Cache
}

// NewCheckpointStore creates a store backed by cache
func NewCheckpointStore(cache interfaces.Cache) *CheckpointStore {
	return &CheckpointStore{cache: cache}
}

// Load returns the checkpoint for name, or nil when none was saved
func (s *CheckpointStore) Load(ctx context.Context, name string) (*Checkpoint, error) {
	data, err := s.cache.Get(ctx, checkpointPrefix+name)
	if errors.Is(err, interfaces.ErrCacheMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, coreerrors.WrapError(err, fmt.Sprintf("load checkpoint %q", name))
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, coreerrors.WrapError(err, fmt.Sprintf("decode checkpoint %q", name))
	}
	return &cp, nil
}

// Save stores cp under name
func (s *CheckpointStore) Save(ctx context.Context, name string, cp Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return coreerrors.WrapError(err, fmt.Sprintf("encode checkpoint %q", name))
	}
	if err := s.cache.Set(ctx, checkpointPrefix+name, data, 0); err != nil {
		return coreerrors.WrapError(err, fmt.Sprintf("save checkpoint %q", name))
	}
	return nil
}

// Reset forgets the checkpoint for name
func (s *CheckpointStore) Reset(ctx context.Context, name string) error {
	return s.cache.Delete(ctx, checkpointPrefix+name)
}

// Pull returns the items that arrived after the checkpoint named name, or
// after since on the first run, and advances the checkpoint.
func (e *Engine) Pull(ctx context.Context, store *CheckpointStore, name string, since domain.Bound) ([]domain.Item, error) {
	if store == nil {
		return nil, &coreerrors.ConfigurationError{Field: "cache", Message: "a checkpoint store is required"}
	}
	if name == "" {
		return nil, &coreerrors.ValidationError{Field: "name", Message: "checkpoint name is required"}
	}

	cp, err := store.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	lower := since
	if cp != nil {
		lower = domain.BoundFromID(cp.Cursor)
	}
	if lower.IsZero() {
		return nil, &coreerrors.ConfigurationError{Field: "since", Message: "a start date is required for the first pull"}
	}

	now := e.now()
	cursor, err := lower.Cursor()
	if err != nil {
		return nil, err
	}
	if cursor >= domain.CursorFromTime(now) {
		return []domain.Item{}, nil
	}

	items, err := e.GetItemsFromDates(ctx, lower, domain.BoundFromTime(now))
	if err != nil {
		return nil, err
	}

	next := cursor
	if highest := domain.MaxID(items); highest > next {
		next = highest
	}
	if err := store.Save(ctx, name, Checkpoint{Cursor: next, UpdatedAt: now.UTC(), Items: len(items)}); err != nil {
		return nil, err
	}

	e.debug("Pulled items", map[string]interface{}{
		"checkpoint": name,
		"cursor":     next,
		"cursor_at":  domain.TimeFromCursor(next).Format(time.RFC3339),
		"items":      len(items),
	})
	return items, nil
}
