// ABOUTME: Item domain model represents one article as reported by the aggregation server
// ABOUTME: Items are values decoded from responses and never mutated afterwards

package domain

import (
	"sort"
	"time"
)

// Item represents a single entry synchronized from the server
type Item struct {
	// ID is assigned monotonically by the server. It is both identity and cursor.
	ID int64 `json:"id"`

	// FeedID identifies the subscription the item belongs to
	FeedID int64 `json:"feed_id"`

	Title  string `json:"title"`
	Author string `json:"author"`

	// HTML is the raw article body as delivered by the server
	HTML string `json:"html"`

	// URL is the link to the original article
	URL string `json:"url"`

	IsSaved bool `json:"is_saved"`
	IsRead  bool `json:"is_read"`

	// CreatedOnTime is expressed in seconds since the Unix epoch
	CreatedOnTime int64 `json:"created_on_time"`
}

// CreatedAt returns the creation time of the item in UTC
func (i Item) CreatedAt() time.Time {
	return time.Unix(i.CreatedOnTime, 0).UTC()
}

// SortByID orders items ascending by ID in place
func SortByID(items []Item) {
	sort.Slice(items, func(a, b int) bool {
		return items[a].ID < items[b].ID
	})
}

// MaxID returns the highest ID in items, or 0 for an empty slice
func MaxID(items []Item) int64 {
	var highest int64
	for _, item := range items {
		if item.ID > highest {
			highest = item.ID
		}
	}
	return highest
}
