package sync

import (
	"context"
	"sort"
	"time"

	"feedsync/core/domain"
	"feedsync/core/interfaces"

	"github.com/stretchr/testify/mock"
)

// mockSource is a mock implementation of the ItemSource interface
type mockSource struct {
	protocol       domain.Protocol
	itemsByIDsFunc func(ctx context.Context, ids []int64) ([]domain.Item, error)
	itemsSinceFunc func(ctx context.Context, sinceID int64) ([]domain.Item, error)
	unreadIDsFunc  func(ctx context.Context) ([]int64, error)
	savedIDsFunc   func(ctx context.Context) ([]int64, error)
	markFunc       func(ctx context.Context, action domain.MarkAction, id int64) (*interfaces.MarkResult, error)
	byIDsCalls     [][]int64
	sinceCalls     []int64
	markCalls      int
}

func (m *mockSource) Protocol() domain.Protocol {
	if m.protocol == "" {
		return domain.ProtocolFever
	}
	return m.protocol
}

func (m *mockSource) ItemsByIDs(ctx context.Context, ids []int64) ([]domain.Item, error) {
	m.byIDsCalls = append(m.byIDsCalls, append([]int64(nil), ids...))
	if m.itemsByIDsFunc != nil {
		return m.itemsByIDsFunc(ctx, ids)
	}
	return itemsFor(ids), nil
}

func (m *mockSource) ItemsSince(ctx context.Context, sinceID int64) ([]domain.Item, error) {
	m.sinceCalls = append(m.sinceCalls, sinceID)
	if m.itemsSinceFunc != nil {
		return m.itemsSinceFunc(ctx, sinceID)
	}
	return nil, nil
}

func (m *mockSource) UnreadItemIDs(ctx context.Context) ([]int64, error) {
	if m.unreadIDsFunc != nil {
		return m.unreadIDsFunc(ctx)
	}
	return nil, nil
}

func (m *mockSource) SavedItemIDs(ctx context.Context) ([]int64, error) {
	if m.savedIDsFunc != nil {
		return m.savedIDsFunc(ctx)
	}
	return nil, nil
}

func (m *mockSource) Mark(ctx context.Context, action domain.MarkAction, id int64) (*interfaces.MarkResult, error) {
	m.markCalls++
	if m.markFunc != nil {
		return m.markFunc(ctx, action, id)
	}
	return &interfaces.MarkResult{Action: action, ID: id, Acknowledged: true}, nil
}

// itemsFor builds one item per id, in the given order
func itemsFor(ids []int64) []domain.Item {
	items := make([]domain.Item, len(ids))
	for i, id := range ids {
		items[i] = domain.Item{ID: id, Title: "item"}
	}
	return items
}

// idRange returns the ids from..to inclusive
func idRange(from, to int64) []int64 {
	ids := make([]int64, 0, to-from+1)
	for id := from; id <= to; id++ {
		ids = append(ids, id)
	}
	return ids
}

// serverPages simulates a server that answers ItemsSince with up to pageSize
// items above the cursor, oldest first
func serverPages(all []int64, pageSize int) func(ctx context.Context, sinceID int64) ([]domain.Item, error) {
	sorted := append([]int64(nil), all...)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a] < sorted[b] })
	return func(ctx context.Context, sinceID int64) ([]domain.Item, error) {
		var page []int64
		for _, id := range sorted {
			if id > sinceID {
				page = append(page, id)
			}
			if len(page) == pageSize {
				break
			}
		}
		return itemsFor(page), nil
	}
}

// mockLogger records log calls with testify/mock
type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {}
func (m *mockLogger) Info(msg string, fields map[string]interface{})  {}
func (m *mockLogger) Error(msg string, fields map[string]interface{}) {}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

// mockCache is a map backed Cache
type mockCache struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	value, ok := m.data[key]
	if !ok {
		return nil, interfaces.ErrCacheMiss
	}
	return value, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func newTestEngine(source *mockSource, now time.Time) *Engine {
	e := NewEngine(source, nil)
	e.now = func() time.Time { return now }
	return e
}
