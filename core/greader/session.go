package greader

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"feedsync/core/domain"
	coreerrors "feedsync/core/errors"
	"feedsync/core/interfaces"
)

// PageSize is the number of items requested per stream page
const PageSize = 50

// Session is an authenticated greader connection. Reads are GETs below the
// API root, mutations are POSTs; each carries the full SessionCredential.
type Session struct {
	root       string
	credential domain.SessionCredential
	transport  interfaces.Transport
	logger     interfaces.Logger
}

// Protocol implements interfaces.ItemSource
func (s *Session) Protocol() domain.Protocol {
	return domain.ProtocolGReader
}

// Root returns the API root the session talks to
func (s *Session) Root() string {
	return s.root
}

// Credential returns the credential the session was built with
func (s *Session) Credential() domain.SessionCredential {
	return s.credential
}

// Call issues one authenticated read. operation is a path below the API root.
func (s *Session) Call(ctx context.Context, operation string, params url.Values) (*interfaces.Body, error) {
	query := url.Values{"output": {"json"}}
	for key, values := range params {
		query[key] = values
	}
	return s.do(ctx, http.MethodGet, operation, query, nil)
}

func (s *Session) post(ctx context.Context, operation string, form url.Values) (*interfaces.Body, error) {
	// edit-tag reads T from the body on some servers
	form.Set("T", s.credential.Token)
	return s.do(ctx, http.MethodPost, operation, url.Values{}, form)
}

func (s *Session) do(ctx context.Context, method, operation string, query, form url.Values) (*interfaces.Body, error) {
	query.Set("T", s.credential.Token)

	body, err := s.transport.Execute(ctx, &interfaces.Request{
		Method: method,
		URL:    s.root + strings.TrimLeft(operation, "/"),
		Query:  query,
		Form:   form,
		Header: http.Header{
			"Authorization": {authorization(s.credential.Auth)},
			"Cookie":        {"SID=" + s.credential.SID},
		},
	})
	if err != nil {
		return nil, rejected(operation, "server rejected session", err)
	}
	return body, nil
}

// ItemsByIDs implements interfaces.ItemSource
func (s *Session) ItemsByIDs(ctx context.Context, ids []int64) ([]domain.Item, error) {
	refs := make([]string, len(ids))
	for i, id := range ids {
		refs[i] = longItemID(id)
	}
	return s.stream(ctx, "reader/api/0/stream/items/contents", url.Values{"i": refs})
}

// ItemsSince implements interfaces.ItemSource. The server filters ot at second
// resolution, so pages can start with items at or below sinceID. Those are
// dropped and continuation is followed until PageSize newer items are
// collected or the stream ends. Every returned item is above sinceID.
func (s *Session) ItemsSince(ctx context.Context, sinceID int64) ([]domain.Item, error) {
	const operation = "reader/api/0/stream/contents/" + readingListStream

	items := make([]domain.Item, 0, PageSize)
	seen := make(map[string]bool)
	continuation := ""
	for {
		params := url.Values{
			"n":  {strconv.Itoa(PageSize)},
			"r":  {"o"},
			"ot": {strconv.FormatInt(sinceID/1_000_000, 10)},
		}
		if continuation != "" {
			params.Set("c", continuation)
		}

		page, err := s.streamPage(ctx, operation, params)
		if err != nil {
			return nil, err
		}
		batch, err := page.toDomain()
		if err != nil {
			return nil, &coreerrors.APIError{Operation: operation, Message: err.Error()}
		}
		for _, item := range batch {
			if item.ID > sinceID {
				items = append(items, item)
			}
		}

		if len(items) >= PageSize || page.Continuation == "" || seen[page.Continuation] {
			return items, nil
		}
		seen[page.Continuation] = true
		continuation = page.Continuation

		if s.logger != nil {
			s.logger.Debug("Following stream continuation", map[string]interface{}{
				"since":     sinceID,
				"collected": len(items),
			})
		}
	}
}

func (s *Session) stream(ctx context.Context, operation string, params url.Values) ([]domain.Item, error) {
	page, err := s.streamPage(ctx, operation, params)
	if err != nil {
		return nil, err
	}
	items, err := page.toDomain()
	if err != nil {
		return nil, &coreerrors.APIError{Operation: operation, Message: err.Error()}
	}
	return items, nil
}

func (s *Session) streamPage(ctx context.Context, operation string, params url.Values) (*streamContents, error) {
	body, err := s.Call(ctx, operation, params)
	if err != nil {
		return nil, err
	}

	var page streamContents
	if err := body.Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UnreadItemIDs implements interfaces.ItemSource
func (s *Session) UnreadItemIDs(ctx context.Context) ([]int64, error) {
	return s.itemIDs(ctx, url.Values{"s": {readingListStream}, "xt": {readTag}})
}

// SavedItemIDs implements interfaces.ItemSource
func (s *Session) SavedItemIDs(ctx context.Context) ([]int64, error) {
	return s.itemIDs(ctx, url.Values{"s": {starredTag}})
}

// itemIDs follows continuation tokens until the listing is exhausted
func (s *Session) itemIDs(ctx context.Context, params url.Values) ([]int64, error) {
	const operation = "reader/api/0/stream/items/ids"

	ids := make([]int64, 0)
	seen := make(map[string]bool)
	continuation := ""
	for {
		query := url.Values{"n": {"1000"}}
		for key, values := range params {
			query[key] = values
		}
		if continuation != "" {
			query.Set("c", continuation)
		}

		body, err := s.Call(ctx, operation, query)
		if err != nil {
			return nil, err
		}

		var page itemRefs
		if err := body.Decode(&page); err != nil {
			return nil, err
		}
		for _, ref := range page.ItemRefs {
			id, err := parseItemID(ref.ID)
			if err != nil {
				return nil, &coreerrors.APIError{Operation: operation, Message: err.Error()}
			}
			ids = append(ids, id)
		}

		if page.Continuation == "" || seen[page.Continuation] {
			return ids, nil
		}
		seen[page.Continuation] = true
		continuation = page.Continuation
	}
}

// Mark implements interfaces.ItemSource through edit-tag
func (s *Session) Mark(ctx context.Context, action domain.MarkAction, id int64) (*interfaces.MarkResult, error) {
	form := url.Values{"i": {longItemID(id)}}
	switch action {
	case domain.MarkRead:
		form.Set("a", readTag)
	case domain.MarkUnread:
		form.Set("r", readTag)
	case domain.MarkSaved:
		form.Set("a", starredTag)
	case domain.MarkUnsaved:
		form.Set("r", starredTag)
	default:
		return nil, &coreerrors.ValidationError{Field: "action", Message: "unknown mark action " + strconv.Quote(string(action))}
	}

	body, err := s.post(ctx, "reader/api/0/edit-tag", form)
	if err != nil {
		return nil, err
	}

	return &interfaces.MarkResult{
		Action:       action,
		ID:           id,
		Acknowledged: strings.TrimSpace(body.Text()) == "OK",
		Expected:     "OK",
		Body:         body,
	}, nil
}
