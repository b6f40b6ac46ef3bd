package greader

import (
	"context"
	"strings"

	"feedsync/core/interfaces"
)

// mockTransport routes requests by URL suffix
type mockTransport struct {
	routes   map[string]func(req *interfaces.Request) (*interfaces.Body, error)
	requests []*interfaces.Request
}

func (m *mockTransport) Execute(ctx context.Context, req *interfaces.Request) (*interfaces.Body, error) {
	m.requests = append(m.requests, req)
	for suffix, handler := range m.routes {
		if strings.HasSuffix(req.URL, suffix) {
			return handler(req)
		}
	}
	return textBody(""), nil
}

func (m *mockTransport) requestsTo(suffix string) []*interfaces.Request {
	var matched []*interfaces.Request
	for _, req := range m.requests {
		if strings.HasSuffix(req.URL, suffix) {
			matched = append(matched, req)
		}
	}
	return matched
}

func textBody(s string) *interfaces.Body {
	return &interfaces.Body{Kind: interfaces.BodyText, ContentType: "text/plain", Raw: []byte(s)}
}

func rawJSON(s string) *interfaces.Body {
	return &interfaces.Body{Kind: interfaces.BodyJSON, ContentType: "application/json", Raw: []byte(s)}
}

func respond(body *interfaces.Body) func(req *interfaces.Request) (*interfaces.Body, error) {
	return func(req *interfaces.Request) (*interfaces.Body, error) {
		return body, nil
	}
}

// loginTransport answers the login and token calls successfully
func loginTransport() *mockTransport {
	return &mockTransport{
		routes: map[string]func(req *interfaces.Request) (*interfaces.Body, error){
			"accounts/ClientLogin": respond(textBody("SID=sid-123\nLSID=ignored\nAuth=auth-456\n")),
			"reader/api/0/token":   respond(textBody("token-789\n")),
		},
	}
}

func newTestSession(transport *mockTransport) *Session {
	return &Session{
		root:       "https://rss.example.com/api/greader.php/",
		credential: testCredential,
		transport:  transport,
	}
}
