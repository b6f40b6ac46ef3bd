// ABOUTME: Keyed authenticator for the fever protocol
// ABOUTME: Derives the API key from the user credentials and validates it with one probe

package fever

import (
	"context"
	"crypto/md5"
	"encoding/hex"

	"feedsync/core/domain"
	coreerrors "feedsync/core/errors"
	"feedsync/core/interfaces"
)

// DefaultPath is the fever endpoint below the server root
const DefaultPath = "api/fever.php"

// Authenticator produces a fever Session. It holds no state besides its inputs.
type Authenticator struct {
	creds     domain.Credentials
	path      string
	transport interfaces.Transport
	logger    interfaces.Logger
}

// NewAuthenticator creates an authenticator. An empty path selects DefaultPath.
func NewAuthenticator(creds domain.Credentials, path string, deps interfaces.Dependencies) *Authenticator {
	if path == "" {
		path = DefaultPath
	}
	return &Authenticator{
		creds:     creds,
		path:      path,
		transport: deps.Transport,
		logger:    deps.Logger,
	}
}

// Authenticate derives the key and issues the probe call
func (a *Authenticator) Authenticate(ctx context.Context) (interfaces.Session, error) {
	if err := a.creds.Validate(); err != nil {
		return nil, err
	}
	if a.transport == nil {
		return nil, &coreerrors.ConfigurationError{Field: "transport", Message: "transport is required"}
	}

	session := &Session{
		endpoint:   a.creds.BaseURL() + a.path,
		credential: domain.KeyedCredential{Key: DeriveKey(a.creds.Username, a.creds.Password)},
		transport:  a.transport,
		logger:     a.logger,
	}

	// Call checks the auth flag of the envelope
	if _, err := session.Call(ctx, "", nil); err != nil {
		return nil, err
	}

	if a.logger != nil {
		a.logger.Debug("Fever authentication succeeded", map[string]interface{}{
			"endpoint": session.endpoint,
		})
	}

	return session, nil
}

// DeriveKey computes the fever api_key: md5 of "username:password" in hex.
// This is a wire protocol requirement, not a security boundary.
func DeriveKey(username, password string) string {
	sum := md5.Sum([]byte(username + ":" + password))
	return hex.EncodeToString(sum[:])
}
