package greader

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"feedsync/core/domain"
	"feedsync/core/interfaces"
	"feedsync/core/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readingListRoute = "stream/contents/user/-/state/com.google/reading-list"

// secondStream serves the reading list the way FreshRSS does: ids are
// microsecond timestamps, ot keeps ids at or after the given second, r=o
// orders oldest first and c is an offset into the filtered list.
type secondStream struct {
	ids []int64
}

func (s *secondStream) handle(req *interfaces.Request) (*interfaces.Body, error) {
	ot, _ := strconv.ParseInt(req.Query.Get("ot"), 10, 64)
	n, _ := strconv.Atoi(req.Query.Get("n"))
	offset, _ := strconv.Atoi(req.Query.Get("c"))

	var filtered []int64
	for _, id := range s.ids {
		if id >= ot*1_000_000 {
			filtered = append(filtered, id)
		}
	}

	if offset > len(filtered) {
		offset = len(filtered)
	}
	end := offset + n
	if end > len(filtered) {
		end = len(filtered)
	}
	items := make([]map[string]interface{}, 0, n)
	for _, id := range filtered[offset:end] {
		items = append(items, map[string]interface{}{
			"id":        longItemID(id),
			"title":     "Item " + strconv.FormatInt(id, 10),
			"published": id / 1_000_000,
			"origin":    map[string]string{"streamId": "feed/1"},
		})
	}
	page := map[string]interface{}{"items": items}
	if end < len(filtered) {
		page["continuation"] = strconv.Itoa(end)
	}

	raw, err := json.Marshal(page)
	if err != nil {
		return nil, err
	}
	return rawJSON(string(raw)), nil
}

// burst returns count ids inside one second
func burst(second int64, count int) []int64 {
	ids := make([]int64, count)
	for i := range ids {
		ids[i] = second*1_000_000 + int64(i+1)
	}
	return ids
}

const burstSecond = 1709251200

func TestItemsSince_SkipsRepeatedSecondThroughContinuation(t *testing.T) {
	stream := &secondStream{ids: burst(burstSecond, 60)}
	transport := &mockTransport{routes: map[string]func(*interfaces.Request) (*interfaces.Body, error){
		readingListRoute: stream.handle,
	}}
	session := newTestSession(transport)

	items, err := session.ItemsSince(context.Background(), stream.ids[49])

	require.NoError(t, err)
	require.Len(t, items, 10)
	assert.Equal(t, stream.ids[50], items[0].ID)
	assert.Equal(t, stream.ids[59], items[9].ID)

	requests := transport.requestsTo(readingListRoute)
	require.Len(t, requests, 2)
	assert.Equal(t, strconv.Itoa(burstSecond), requests[0].Query.Get("ot"))
	assert.Empty(t, requests[0].Query.Get("c"))
	assert.Equal(t, "50", requests[1].Query.Get("c"))
}

func TestItemsSince_RepeatedContinuationStops(t *testing.T) {
	transport := &mockTransport{routes: map[string]func(*interfaces.Request) (*interfaces.Body, error){
		readingListRoute: respond(rawJSON(`{"items":[],"continuation":"same"}`)),
	}}

	items, err := newTestSession(transport).ItemsSince(context.Background(), 1)

	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Len(t, transport.requestsTo(readingListRoute), 2)
}

func TestEngine_DateRangeAcrossCrowdedSecond(t *testing.T) {
	crowded := burst(burstSecond, 60)
	later := burst(burstSecond+10, 30)
	stream := &secondStream{ids: append(append([]int64{}, crowded...), later...)}
	transport := &mockTransport{routes: map[string]func(*interfaces.Request) (*interfaces.Body, error){
		readingListRoute: stream.handle,
	}}
	engine := sync.NewEngine(newTestSession(transport), nil)

	items, err := engine.GetItemsFromDates(context.Background(),
		domain.BoundFromID(burstSecond*1_000_000-1),
		domain.BoundFromID((burstSecond+100)*1_000_000))

	require.NoError(t, err)
	require.Len(t, items, 90)
	for i, item := range items {
		assert.Equal(t, stream.ids[i], item.ID)
	}
	assert.Len(t, transport.requestsTo(readingListRoute), 3)
}
