// ABOUTME: Sync engine retrieves items by ID batches or by cursor pagination over a date range
// ABOUTME: It deduplicates across pages and always returns items sorted by ID

package sync

import (
	"context"
	"fmt"
	"time"

	"feedsync/core/domain"
	coreerrors "feedsync/core/errors"
	"feedsync/core/interfaces"
)

const (
	// BatchSize is the maximum number of IDs requested in one call
	BatchSize = 50

	// PageSize is the number of items a full page holds. A shorter page is the last one.
	PageSize = 50
)

// Engine drives an ItemSource. It holds no mutable state of its own.
type Engine struct {
	source interfaces.ItemSource
	logger interfaces.Logger
	now    func() time.Time
}

// NewEngine creates an engine over source. logger may be nil.
func NewEngine(source interfaces.ItemSource, logger interfaces.Logger) *Engine {
	return &Engine{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// GetItemsFromIDs fetches exactly the given items in chunks of BatchSize
func (e *Engine) GetItemsFromIDs(ctx context.Context, ids []int64) ([]domain.Item, error) {
	if len(ids) == 0 {
		return []domain.Item{}, nil
	}

	result := make([]domain.Item, 0, len(ids))
	for start := 0; start < len(ids); start += BatchSize {
		end := start + BatchSize
		if end > len(ids) {
			end = len(ids)
		}

		batch, err := e.source.ItemsByIDs(ctx, ids[start:end])
		if err != nil {
			return nil, err
		}
		e.debug("Fetched item batch by ids", map[string]interface{}{
			"requested": end - start,
			"received":  len(batch),
		})
		result = append(result, batch...)
	}

	if len(result) != len(ids) {
		return nil, &coreerrors.APIError{
			Operation: "items by id",
			Message:   fmt.Sprintf("requested %d items, received %d", len(ids), len(result)),
		}
	}

	domain.SortByID(result)
	return result, nil
}

// GetItemsFromDates pages through every item with since < ID <= until.
// A zero until means now.
func (e *Engine) GetItemsFromDates(ctx context.Context, since, until domain.Bound) ([]domain.Item, error) {
	if since.IsZero() {
		return nil, &coreerrors.ConfigurationError{Field: "since", Message: "a start date is required"}
	}
	lower, err := since.Cursor()
	if err != nil {
		return nil, err
	}

	upper := domain.CursorFromTime(e.now())
	if !until.IsZero() {
		if upper, err = until.Cursor(); err != nil {
			return nil, err
		}
	}

	if lower >= upper {
		return nil, &coreerrors.ValidationError{
			Field:   "since",
			Message: fmt.Sprintf("start %s must be before end %d", since, upper),
		}
	}

	return e.paginate(ctx, lower, upper)
}

func (e *Engine) paginate(ctx context.Context, lower, upper int64) ([]domain.Item, error) {
	result := make([]domain.Item, 0)
	seen := make(map[int64]struct{})
	cursor := lower

	for {
		batch, err := e.source.ItemsSince(ctx, cursor)
		if err != nil {
			return nil, err
		}
		if len(batch) == 0 {
			break
		}

		accepted := 0
		for _, item := range batch {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			if item.ID > upper || item.ID <= lower {
				continue
			}
			seen[item.ID] = struct{}{}
			result = append(result, item)
			accepted++
		}

		if len(result) != len(seen) {
			return nil, &coreerrors.ConsistencyError{
				Message: fmt.Sprintf("collected %d items for %d unique ids", len(result), len(seen)),
			}
		}

		next := domain.MaxID(batch)
		e.debug("Fetched item page", map[string]interface{}{
			"cursor":   cursor,
			"next":     next,
			"items":    len(batch),
			"accepted": accepted,
		})

		if len(batch) < PageSize {
			break
		}
		if next <= cursor {
			return nil, &coreerrors.APIError{
				Operation: "items since",
				Message:   fmt.Sprintf("full page did not advance past cursor %d", cursor),
			}
		}
		cursor = next
	}

	domain.SortByID(result)
	return result, nil
}

// SetMark applies action to the item. A response without the acknowledgement
// the protocol promises is logged and still returned.
func (e *Engine) SetMark(ctx context.Context, action domain.MarkAction, id int64) (*interfaces.MarkResult, error) {
	if !action.Valid() {
		return nil, &coreerrors.ValidationError{Field: "action", Message: "must be one of read, unread, saved, unsaved"}
	}

	result, err := e.source.Mark(ctx, action, id)
	if err != nil {
		return nil, err
	}

	if !result.Acknowledged {
		e.warn("Mark response missing expected field", map[string]interface{}{
			"action":   string(action),
			"id":       id,
			"expected": result.Expected,
			"protocol": string(e.source.Protocol()),
		})
	}
	return result, nil
}

// UnreadItems fetches every unread item
func (e *Engine) UnreadItems(ctx context.Context) ([]domain.Item, error) {
	ids, err := e.source.UnreadItemIDs(ctx)
	if err != nil {
		return nil, err
	}
	return e.GetItemsFromIDs(ctx, ids)
}

// SavedItems fetches every saved item
func (e *Engine) SavedItems(ctx context.Context) ([]domain.Item, error) {
	ids, err := e.source.SavedItemIDs(ctx)
	if err != nil {
		return nil, err
	}
	return e.GetItemsFromIDs(ctx, ids)
}

func (e *Engine) debug(msg string, fields map[string]interface{}) {
	if e.logger != nil {
		e.logger.Debug(msg, fields)
	}
}

func (e *Engine) warn(msg string, fields map[string]interface{}) {
	if e.logger != nil {
		e.logger.Warn(msg, fields)
	}
}
