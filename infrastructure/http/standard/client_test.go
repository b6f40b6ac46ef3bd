package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	coreerrors "feedsync/core/errors"
	"feedsync/core/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient() *StandardHTTPClient {
	return NewStandardHTTPClient(Config{Timeout: 10 * time.Second}, nil)
}

func TestNewStandardHTTPClient_Defaults(t *testing.T) {
	client := NewStandardHTTPClient(Config{}, nil)

	require.NotNil(t, client)
	assert.Equal(t, 30*time.Second, client.client.Timeout)
	assert.Equal(t, defaultMaxRetries, client.maxRetries)
	assert.Equal(t, defaultUserAgent, client.userAgent)
	assert.Nil(t, client.limiter)
}

func TestNewStandardHTTPClient_RateLimit(t *testing.T) {
	client := NewStandardHTTPClient(Config{RateLimit: 5}, nil)

	require.NotNil(t, client.limiter)
	assert.Equal(t, 1, client.limiter.Burst())
}

func TestExecute_JSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write([]byte(`{"auth":1}`))
	}))
	defer server.Close()

	body, err := newTestClient().Execute(context.Background(), &interfaces.Request{URL: server.URL})

	require.NoError(t, err)
	assert.Equal(t, interfaces.BodyJSON, body.Kind)

	var decoded struct {
		Auth int `json:"auth"`
	}
	require.NoError(t, body.Decode(&decoded))
	assert.Equal(t, 1, decoded.Auth)
}

func TestExecute_TextAndBlobBodies(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		expected    interfaces.BodyKind
	}{
		{"plain text", "text/plain; charset=utf-8", interfaces.BodyText},
		{"html is text", "text/html", interfaces.BodyText},
		{"vendor json", "application/vnd.api+json", interfaces.BodyJSON},
		{"binary", "application/octet-stream", interfaces.BodyBlob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				if tt.expected == interfaces.BodyJSON {
					w.Write([]byte(`{}`))
					return
				}
				w.Write([]byte("SID=abc"))
			}))
			defer server.Close()

			body, err := newTestClient().Execute(context.Background(), &interfaces.Request{URL: server.URL})

			require.NoError(t, err)
			assert.Equal(t, tt.expected, body.Kind)
		})
	}
}

func TestExecute_InvalidJSONIsDecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"auth":`))
	}))
	defer server.Close()

	_, err := newTestClient().Execute(context.Background(), &interfaces.Request{URL: server.URL})

	assert.True(t, coreerrors.IsDecode(err), "expected DecodeError, got %v", err)
	assert.ErrorIs(t, err, errInvalidJSON)
}

func TestExecute_FormQueryAndHeaders(t *testing.T) {
	var captured *http.Request
	var capturedBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r
		raw, _ := io.ReadAll(r.Body)
		capturedBody = string(raw)
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	req := &interfaces.Request{
		Method: http.MethodPost,
		URL:    server.URL + "/api/fever.php?api",
		Query:  url.Values{"items": nil, "since_id": {"42"}},
		Form:   url.Values{"api_key": {"secret"}},
		Header: http.Header{"Authorization": {"GoogleLogin auth=xyz"}},
	}

	body, err := newTestClient().Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "OK", body.Text())
	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/api/fever.php", captured.URL.Path)
	assert.Equal(t, "api&items&since_id=42", captured.URL.RawQuery)
	assert.Equal(t, "api_key=secret", capturedBody)
	assert.Equal(t, "application/x-www-form-urlencoded", captured.Header.Get("Content-Type"))
	assert.Equal(t, "GoogleLogin auth=xyz", captured.Header.Get("Authorization"))
	assert.Contains(t, captured.Header.Get("User-Agent"), "feedsync")
	assert.NotEmpty(t, captured.Header.Get("X-Request-ID"))
}

func TestExecute_Retry503(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("done"))
	}))
	defer server.Close()

	body, err := newTestClient().Execute(context.Background(), &interfaces.Request{URL: server.URL})

	require.NoError(t, err)
	assert.Equal(t, "done", body.Text())
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestExecute_RetryResendsForm(t *testing.T) {
	var attempts int32
	var lastBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		lastBody = string(raw)
		if atomic.AddInt32(&attempts, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	req := &interfaces.Request{
		Method: http.MethodPost,
		URL:    server.URL,
		Form:   url.Values{"api_key": {"k"}},
	}
	_, err := newTestClient().Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "api_key=k", lastBody)
}

func TestExecute_MaxRetriesReturnsHTTPError(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("maintenance"))
	}))
	defer server.Close()

	_, err := newTestClient().Execute(context.Background(), &interfaces.Request{URL: server.URL})

	require.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, coreerrors.StatusCode(err))
	assert.Contains(t, err.Error(), "maintenance")
	assert.Equal(t, int32(3), atomic.LoadInt32(&attempts))
}

func TestExecute_NoRetryOn4xx(t *testing.T) {
	var attempts int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&attempts, 1)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTestClient().Execute(context.Background(), &interfaces.Request{URL: server.URL})

	assert.True(t, coreerrors.IsHTTP(err))
	assert.Equal(t, http.StatusUnauthorized, coreerrors.StatusCode(err))
	assert.Equal(t, int32(1), atomic.LoadInt32(&attempts))
}

func TestExecute_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := newTestClient().Execute(ctx, &interfaces.Request{URL: server.URL})

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "context deadline exceeded"), "got %v", err)
}

func TestExecute_InvalidURL(t *testing.T) {
	_, err := newTestClient().Execute(context.Background(), &interfaces.Request{URL: "://bad url"})

	assert.Error(t, err)
}

func TestEncodeQuery_Flags(t *testing.T) {
	values := url.Values{"api": {""}, "with_ids": {"1,2"}}

	assert.Equal(t, "api&with_ids=1%2C2", encodeQuery(values))
}

func TestRedactURL(t *testing.T) {
	assert.Equal(t, "https://example.com/api", redactURL("https://example.com/api?T=secret"))
	assert.Equal(t, "https://example.com/api", redactURL("https://example.com/api"))
}

func TestRetryBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{6, 3200 * time.Millisecond},
		{7, 3200 * time.Millisecond},
		{64, 3200 * time.Millisecond},
		{1000, 3200 * time.Millisecond},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, retryBackoff(tt.attempt), "attempt %d", tt.attempt)
	}
}
