// ABOUTME: Credential values produced by the two authenticators
// ABOUTME: Both are created once per client and are read-only afterwards

package domain

import (
	"net/url"
	"strings"

	coreerrors "feedsync/core/errors"
)

// Protocol names a wire protocol supported by the client
type Protocol string

const (
	// ProtocolFever is the stateless, API-key authenticated protocol
	ProtocolFever Protocol = "fever"

	// ProtocolGReader is the login and token based protocol
	ProtocolGReader Protocol = "greader"
)

// Valid reports whether p names a known protocol
func (p Protocol) Valid() bool {
	return p == ProtocolFever || p == ProtocolGReader
}

// KeyedCredential is the derived API key used by the fever protocol.
// It carries no server-side state and has no expiry.
type KeyedCredential struct {
	Key string
}

// SessionCredential is the outcome of a complete login and token exchange.
// It is only ever constructed whole.
type SessionCredential struct {
	SID   string
	Auth  string
	Token string
}

// Credentials are the user supplied inputs shared by both authenticators
type Credentials struct {
	Host     string
	Username string
	Password string
}

// Validate rejects missing inputs and hosts that are not http(s) URLs
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return &coreerrors.ConfigurationError{Field: "host", Message: "host is required"}
	}
	u, err := url.Parse(strings.TrimSpace(c.Host))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &coreerrors.ConfigurationError{Field: "host", Message: "host must be an http or https URL"}
	}
	if c.Username == "" {
		return &coreerrors.ConfigurationError{Field: "username", Message: "username is required"}
	}
	if c.Password == "" {
		return &coreerrors.ConfigurationError{Field: "password", Message: "password is required"}
	}
	return nil
}

// BaseURL returns the host with exactly one trailing slash
func (c Credentials) BaseURL() string {
	return strings.TrimRight(strings.TrimSpace(c.Host), "/") + "/"
}
