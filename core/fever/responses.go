package fever

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"feedsync/core/domain"
	"feedsync/pkg/utils/parse"
)

// authProbe is the envelope every fever response carries
type authProbe struct {
	APIVersion parse.FlexInt `json:"api_version"`
	Auth       parse.FlexInt `json:"auth"`
}

// itemsPage is the response to the items operation
type itemsPage struct {
	Items      []item        `json:"items"`
	TotalItems parse.FlexInt `json:"total_items"`
}

type item struct {
	ID            parse.FlexInt `json:"id"`
	FeedID        parse.FlexInt `json:"feed_id"`
	Title         string        `json:"title"`
	Author        string        `json:"author"`
	HTML          string        `json:"html"`
	URL           string        `json:"url"`
	IsSaved       parse.FlexInt `json:"is_saved"`
	IsRead        parse.FlexInt `json:"is_read"`
	CreatedOnTime parse.FlexInt `json:"created_on_time"`
}

func (i item) toDomain() domain.Item {
	return domain.Item{
		ID:            i.ID.Int64(),
		FeedID:        i.FeedID.Int64(),
		Title:         i.Title,
		Author:        i.Author,
		HTML:          i.HTML,
		URL:           i.URL,
		IsSaved:       i.IsSaved.Bool(),
		IsRead:        i.IsRead.Bool(),
		CreatedOnTime: i.CreatedOnTime.Int64(),
	}
}

func (p itemsPage) toDomain() []domain.Item {
	items := make([]domain.Item, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, it.toDomain())
	}
	return items
}

// idList decodes the comma separated id strings of unread_item_ids and saved_item_ids
type idList []int64

func (l *idList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// a bare number is a single id
		var single parse.FlexInt
		if nerr := single.UnmarshalJSON(data); nerr != nil {
			return err
		}
		*l = idList{single.Int64()}
		return nil
	}

	ids := make(idList, 0)
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return fmt.Errorf("fever: invalid item id %q", part)
		}
		ids = append(ids, id)
	}
	*l = ids
	return nil
}

type unreadItemIDs struct {
	IDs *idList `json:"unread_item_ids"`
}

type savedItemIDs struct {
	IDs *idList `json:"saved_item_ids"`
}

// markResponse keeps the raw fields so the caller can check which id list came back
type markResponse map[string]json.RawMessage

func (m markResponse) has(field string) bool {
	_, ok := m[field]
	return ok
}
