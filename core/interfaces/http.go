package interfaces

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	coreerrors "feedsync/core/errors"
)

// Transport performs a single HTTP exchange on behalf of the protocol sessions.
// Implementations own retries, timeouts and rate limiting; callers never retry.
type Transport interface {
	// Execute sends req and returns the decoded body.
	// A failing status code is reported as *errors.HTTPError and an undecodable
	// body as *errors.DecodeError.
	Execute(ctx context.Context, req *Request) (*Body, error)
}

// Request describes one HTTP call. A non-nil Form is sent url-encoded as the body.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Form   url.Values
	Header http.Header
}

// BodyKind classifies a response body by its content type
type BodyKind int

const (
	// BodyBlob is any body that is neither JSON nor text. It is passed through unopened.
	BodyBlob BodyKind = iota
	// BodyJSON is a syntactically valid JSON document
	BodyJSON
	// BodyText is a plain text body
	BodyText
)

// String implements fmt.Stringer
func (k BodyKind) String() string {
	switch k {
	case BodyJSON:
		return "json"
	case BodyText:
		return "text"
	}
	return "blob"
}

// Body is a response body tagged with its kind
type Body struct {
	Kind        BodyKind
	ContentType string
	Raw         []byte
}

// Decode unmarshals a JSON body into v.
// Any other kind, or a document that does not fit v, yields a *errors.DecodeError.
func (b *Body) Decode(v interface{}) error {
	if b == nil || b.Kind != BodyJSON {
		contentType := ""
		if b != nil {
			contentType = b.ContentType
		}
		return &coreerrors.DecodeError{ContentType: contentType, Cause: errNotJSON}
	}
	if err := json.Unmarshal(b.Raw, v); err != nil {
		return &coreerrors.DecodeError{ContentType: b.ContentType, Cause: err}
	}
	return nil
}

// Text returns the body as a string, whatever its kind
func (b *Body) Text() string {
	if b == nil {
		return ""
	}
	return string(b.Raw)
}

var errNotJSON = errors.New("body is not JSON")
