package fever

import (
	"context"
	"encoding/json"

	"feedsync/core/interfaces"
)

// mockTransport is a mock implementation of the Transport interface
type mockTransport struct {
	executeFunc func(ctx context.Context, req *interfaces.Request) (*interfaces.Body, error)
	requests    []*interfaces.Request
}

func (m *mockTransport) Execute(ctx context.Context, req *interfaces.Request) (*interfaces.Body, error) {
	m.requests = append(m.requests, req)
	if m.executeFunc != nil {
		return m.executeFunc(ctx, req)
	}
	return jsonBody(map[string]interface{}{"auth": 1}), nil
}

func jsonBody(v interface{}) *interfaces.Body {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return &interfaces.Body{Kind: interfaces.BodyJSON, ContentType: "application/json", Raw: raw}
}

func rawJSON(s string) *interfaces.Body {
	return &interfaces.Body{Kind: interfaces.BodyJSON, ContentType: "application/json", Raw: []byte(s)}
}
