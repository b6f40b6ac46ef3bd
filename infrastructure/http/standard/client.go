// ABOUTME: Standard HTTP transport with retry logic, rate limiting and timeout support
// ABOUTME: Decodes response bodies by content type for the protocol sessions

package standard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	coreerrors "feedsync/core/errors"
	"feedsync/core/interfaces"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	defaultMaxRetries = 3
	defaultUserAgent  = "feedsync/1.0"
	bodySnippetLimit  = 512

	baseBackoff     = 100 * time.Millisecond
	maxBackoffShift = 5
)

// Config holds transport settings
type Config struct {
	// Timeout bounds a single attempt
	Timeout time.Duration

	// MaxRetries is the number of attempts for network errors and 5xx responses
	MaxRetries int

	// RateLimit caps outgoing requests per second. Zero disables limiting.
	RateLimit float64

	// Burst is the limiter bucket size
	Burst int

	UserAgent string
}

// DefaultConfig returns the transport defaults
func DefaultConfig() Config {
	return Config{
		Timeout:    30 * time.Second,
		MaxRetries: defaultMaxRetries,
		UserAgent:  defaultUserAgent,
	}
}

var errInvalidJSON = errors.New("invalid JSON document")

// StandardHTTPClient implements interfaces.Transport using net/http
type StandardHTTPClient struct {
	client     *http.Client
	maxRetries int
	userAgent  string
	limiter    *rate.Limiter
	logger     interfaces.Logger
}

// NewStandardHTTPClient creates a transport from cfg. logger may be nil.
func NewStandardHTTPClient(cfg Config, logger interfaces.Logger) *StandardHTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	c := &StandardHTTPClient{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		maxRetries: cfg.MaxRetries,
		userAgent:  cfg.UserAgent,
		logger:     logger,
	}

	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return c
}

// Execute performs req, retrying network failures and 5xx responses
func (c *StandardHTTPClient) Execute(ctx context.Context, req *interfaces.Request) (*interfaces.Body, error) {
	target, err := buildURL(req.URL, req.Query)
	if err != nil {
		return nil, err
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var payload []byte
	if req.Form != nil {
		payload = []byte(req.Form.Encode())
	}

	requestID := uuid.New().String()
	start := time.Now()

	// Perform request with retry logic
	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryBackoff(attempt)):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		httpReq, err := c.newRequest(ctx, method, target, payload, req, requestID)
		if err != nil {
			return nil, err
		}

		resp, err = c.client.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			c.debug("Request attempt failed", requestID, method, target, map[string]interface{}{
				"attempt": attempt + 1,
				"error":   err.Error(),
			})
			continue
		}

		// Don't retry on success or 4xx errors
		if resp.StatusCode < 500 {
			break
		}

		lastErr = statusError(resp)
		resp.Body.Close()
		resp = nil
		c.debug("Server error, retrying", requestID, method, target, map[string]interface{}{
			"attempt": attempt + 1,
			"error":   lastErr.Error(),
		})
	}

	if resp == nil {
		return nil, lastErr
	}
	defer resp.Body.Close()

	c.debug("Request completed", requestID, method, target, map[string]interface{}{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode >= 400 {
		return nil, statusError(resp)
	}

	return decodeBody(resp)
}

// retryBackoff doubles from 100ms per attempt and levels off at 3.2s
func retryBackoff(attempt int) time.Duration {
	shift := attempt - 1
	if shift < 0 {
		shift = 0
	}
	if shift > maxBackoffShift {
		shift = maxBackoffShift
	}
	return baseBackoff << shift
}

func (c *StandardHTTPClient) newRequest(ctx context.Context, method, target string, payload []byte, req *interfaces.Request, requestID string) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}

	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	return httpReq, nil
}

func (c *StandardHTTPClient) debug(msg, requestID, method, target string, fields map[string]interface{}) {
	if c.logger == nil {
		return
	}
	fields["request_id"] = requestID
	fields["method"] = method
	fields["url"] = redactURL(target)
	c.logger.Debug(msg, fields)
}

// buildURL merges query into the query string already present on rawURL
func buildURL(rawURL string, query url.Values) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid request URL: %w", err)
	}
	if len(query) == 0 {
		return u.String(), nil
	}

	merged := u.Query()
	for key, values := range query {
		if len(values) == 0 {
			// flag parameter, e.g. ?items
			merged[key] = []string{""}
			continue
		}
		for _, v := range values {
			merged.Add(key, v)
		}
	}
	u.RawQuery = encodeQuery(merged)
	return u.String(), nil
}

// encodeQuery renders flag parameters without a trailing '='
func encodeQuery(values url.Values) string {
	encoded := values.Encode()
	if encoded == "" {
		return encoded
	}
	parts := strings.Split(encoded, "&")
	for i, part := range parts {
		parts[i] = strings.TrimSuffix(part, "=")
	}
	return strings.Join(parts, "&")
}

// redactURL drops the query string, which may carry session tokens
func redactURL(target string) string {
	if i := strings.IndexByte(target, '?'); i >= 0 {
		return target[:i]
	}
	return target
}

func statusError(resp *http.Response) *coreerrors.HTTPError {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, bodySnippetLimit))
	return &coreerrors.HTTPError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(snippet)),
	}
}

func decodeBody(resp *http.Response) (*interfaces.Body, error) {
	contentType := resp.Header.Get("Content-Type")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &coreerrors.DecodeError{ContentType: contentType, Cause: err}
	}

	body := &interfaces.Body{
		Kind:        classify(contentType),
		ContentType: contentType,
		Raw:         raw,
	}

	if body.Kind == interfaces.BodyJSON && !json.Valid(raw) {
		return nil, &coreerrors.DecodeError{
			ContentType: contentType,
			Cause:       errInvalidJSON,
		}
	}

	return body, nil
}

func classify(contentType string) interfaces.BodyKind {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return interfaces.BodyBlob
	}
	switch {
	case mediaType == "application/json", strings.HasSuffix(mediaType, "+json"):
		return interfaces.BodyJSON
	case strings.HasPrefix(mediaType, "text/"):
		return interfaces.BodyText
	}
	return interfaces.BodyBlob
}
