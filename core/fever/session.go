package fever

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

// Session is an authenticated fever connection. Every call is a POST to the
// single endpoint with the key in the form body; the operation is selected
// by query flags.
type Session struct {
	endpoint   string
	credential domain.KeyedCredential
	transport  interfaces.Transport
	logger     interfaces.Logger
}

// Protocol implements interfaces.ItemSource
func (s *Session) Protocol() domain.Protocol {
	return domain.ProtocolFever
}

// Endpoint returns the fever URL the session talks to
func (s *Session) Endpoint() string {
	return s.endpoint
}

// Call issues one data call. operation is added as a flag unless params
// already carries it with a value, as mark=item does.
func (s *Session) Call(ctx context.Context, operation string, params url.Values) (*interfaces.Body, error) {
	query := url.Values{"api": nil}
	for key, values := range params {
		query[key] = values
	}
	if operation != "" {
		if _, ok := query[operation]; !ok {
			query[operation] = nil
		}
	}

	stage := operation
	if stage == "" {
		stage = "probe"
	}

	body, err := s.transport.Execute(ctx, &interfaces.Request{
		Method: http.MethodPost,
		URL:    s.endpoint,
		Query:  query,
		Form:   url.Values{"api_key": {s.credential.Key}},
	})
	if err != nil {
		if code := coreerrors.StatusCode(err); code == http.StatusUnauthorized || code == http.StatusForbidden {
			return nil, &coreerrors.AuthenticationError{Stage: stage, Message: "server rejected api key", Cause: err}
		}
		return nil, err
	}

	var probe authProbe
	if err := body.Decode(&probe); err != nil {
		return nil, err
	}
	if !probe.Auth.Bool() {
		return nil, &coreerrors.AuthenticationError{Stage: stage, Message: "server reported auth=0"}
	}

	return body, nil
}

// ItemsByIDs implements interfaces.ItemSource
func (s *Session) ItemsByIDs(ctx context.Context, ids []int64) ([]domain.Item, error) {
	return s.items(ctx, url.Values{"with_ids": {joinIDs(ids)}})
}

// ItemsSince implements interfaces.ItemSource
func (s *Session) ItemsSince(ctx context.Context, sinceID int64) ([]domain.Item, error) {
	return s.items(ctx, url.Values{"since_id": {strconv.FormatInt(sinceID, 10)}})
}

func (s *Session) items(ctx context.Context, params url.Values) ([]domain.Item, error) {
	body, err := s.Call(ctx, "items", params)
	if err != nil {
		return nil, err
	}

	var page itemsPage
	if err := body.Decode(&page); err != nil {
		return nil, err
	}
	return page.toDomain(), nil
}

// UnreadItemIDs implements interfaces.ItemSource
func (s *Session) UnreadItemIDs(ctx context.Context) ([]int64, error) {
	body, err := s.Call(ctx, "unread_item_ids", nil)
	if err != nil {
		return nil, err
	}

	var resp unreadItemIDs
	if err := body.Decode(&resp); err != nil {
		return nil, err
	}
	if resp.IDs == nil {
		return nil, &coreerrors.APIError{Operation: "unread_item_ids", Message: "response has no unread_item_ids field"}
	}
	return []int64(*resp.IDs), nil
}

// SavedItemIDs implements interfaces.ItemSource
func (s *Session) SavedItemIDs(ctx context.Context) ([]int64, error) {
	body, err := s.Call(ctx, "saved_item_ids", nil)
	if err != nil {
		return nil, err
	}

	var resp savedItemIDs
	if err := body.Decode(&resp); err != nil {
		return nil, err
	}
	if resp.IDs == nil {
		return nil, &coreerrors.APIError{Operation: "saved_item_ids", Message: "response has no saved_item_ids field"}
	}
	return []int64(*resp.IDs), nil
}

// Mark implements interfaces.ItemSource. The protocol cannot mark an item unread.
func (s *Session) Mark(ctx context.Context, action domain.MarkAction, id int64) (*interfaces.MarkResult, error) {
	var expected string
	switch action {
	case domain.MarkRead:
		expected = "unread_item_ids"
	case domain.MarkSaved, domain.MarkUnsaved:
		expected = "saved_item_ids"
	case domain.MarkUnread:
		return nil, &coreerrors.CapabilityError{Protocol: string(domain.ProtocolFever), Operation: "mark unread"}
	default:
		return nil, &coreerrors.ValidationError{Field: "action", Message: "unknown mark action " + strconv.Quote(string(action))}
	}

	body, err := s.Call(ctx, "mark", url.Values{
		"mark": {"item"},
		"as":   {string(action)},
		"id":   {strconv.FormatInt(id, 10)},
	})
	if err != nil {
		return nil, err
	}

	var resp markResponse
	if err := body.Decode(&resp); err != nil {
		return nil, err
	}

	return &interfaces.MarkResult{
		Action:       action,
		ID:           id,
		Acknowledged: resp.has(expected),
		Expected:     expected,
		Body:         body,
	}, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
