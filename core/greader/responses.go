package greader

import (
	"fmt"
	"strconv"
	"strings"

	"feedsync/core/domain"
	"feedsync/pkg/utils/parse"
)

const (
	itemIDPrefix = "tag:google.com,2005:reader/item/"

	readingListStream = "user/-/state/com.google/reading-list"
	readTag           = "user/-/state/com.google/read"
	starredTag        = "user/-/state/com.google/starred"
)

// streamContents is the response of the stream/contents and stream/items/contents calls
type streamContents struct {
	ID           string       `json:"id"`
	Items        []streamItem `json:"items"`
	Continuation string       `json:"continuation"`
}

type streamItem struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Author     string        `json:"author"`
	Published  parse.FlexInt `json:"published"`
	Canonical  []link        `json:"canonical"`
	Alternate  []link        `json:"alternate"`
	Summary    content       `json:"summary"`
	Content    content       `json:"content"`
	Categories []string      `json:"categories"`
	Origin     origin        `json:"origin"`
}

type link struct {
	Href string `json:"href"`
}

type content struct {
	Content string `json:"content"`
}

type origin struct {
	StreamID string `json:"streamId"`
	Title    string `json:"title"`
}

func (i streamItem) toDomain() (domain.Item, error) {
	id, err := parseItemID(i.ID)
	if err != nil {
		return domain.Item{}, err
	}

	html := i.Content.Content
	if html == "" {
		html = i.Summary.Content
	}

	item := domain.Item{
		ID:            id,
		FeedID:        feedID(i.Origin.StreamID),
		Title:         i.Title,
		Author:        i.Author,
		HTML:          html,
		URL:           firstHref(i.Canonical, i.Alternate),
		CreatedOnTime: i.Published.Int64(),
	}
	for _, category := range i.Categories {
		switch {
		case isStateTag(category, "read"):
			item.IsRead = true
		case isStateTag(category, "starred"):
			item.IsSaved = true
		}
	}
	return item, nil
}

func (s streamContents) toDomain() ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(s.Items))
	for _, it := range s.Items {
		item, err := it.toDomain()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// itemRefs is the response of stream/items/ids
type itemRefs struct {
	ItemRefs []struct {
		ID string `json:"id"`
	} `json:"itemRefs"`
	Continuation string `json:"continuation"`
}

// parseItemID accepts the long form tag id (hex) and the short decimal form
func parseItemID(raw string) (int64, error) {
	if hex, ok := strings.CutPrefix(raw, itemIDPrefix); ok {
		n, err := strconv.ParseUint(hex, 16, 64)
		if err != nil {
			return 0, fmt.Errorf("greader: invalid item id %q", raw)
		}
		return int64(n), nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("greader: invalid item id %q", raw)
	}
	return n, nil
}

// longItemID renders id in the long form accepted by every server
func longItemID(id int64) string {
	return fmt.Sprintf("%s%016x", itemIDPrefix, uint64(id))
}

// feedID extracts the numeric id of "feed/12". Servers that key feeds by URL yield 0.
func feedID(streamID string) int64 {
	rest, ok := strings.CutPrefix(streamID, "feed/")
	if !ok {
		return 0
	}
	return parse.Int64OrZero(rest)
}

// isStateTag matches both user/-/state/com.google/<name> and user/<uid>/state/com.google/<name>
func isStateTag(category, name string) bool {
	return strings.HasPrefix(category, "user/") && strings.HasSuffix(category, "/state/com.google/"+name)
}

func firstHref(groups ...[]link) string {
	for _, links := range groups {
		for _, l := range links {
			if l.Href != "" {
				return l.Href
			}
		}
	}
	return ""
}
