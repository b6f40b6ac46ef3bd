// ABOUTME: Session authenticator for the greader protocol
// ABOUTME: Runs the login and token exchange as an explicit state machine

package greader

import (
	"bufio"
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"feedsync/core/domain"
	coreerrors "feedsync/core/errors"
	"feedsync/core/interfaces"
)

// DefaultPath is the greader API root below the server root
const DefaultPath = "api/greader.php/"

// State is a step of the authentication state machine
type State int

const (
	// StateUnauthenticated holds before the login call succeeds
	StateUnauthenticated State = iota
	// StateLoggedIn holds once Auth and SID are known but the token is not
	StateLoggedIn
	// StateTokenized is terminal and successful: the credential is complete
	StateTokenized
	// StateFailed is terminal: any error moves the machine here
	StateFailed
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateLoggedIn:
		return "logged_in"
	case StateTokenized:
		return "tokenized"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Authenticator produces a greader Session through login and token calls
type Authenticator struct {
	creds     domain.Credentials
	path      string
	transport interfaces.Transport
	logger    interfaces.Logger

	mu    sync.Mutex
	state State
}

// NewAuthenticator creates an authenticator. An empty path selects DefaultPath.
func NewAuthenticator(creds domain.Credentials, path string, deps interfaces.Dependencies) *Authenticator {
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return &Authenticator{
		creds:     creds,
		path:      strings.TrimLeft(path, "/"),
		transport: deps.Transport,
		logger:    deps.Logger,
	}
}

// State returns the current state of the machine
func (a *Authenticator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *Authenticator) setState(s State) {
	a.mu.Lock()
	a.state = s
	a.mu.Unlock()
}

// Authenticate logs in, fetches the write token and returns the session.
// The session is only built once all three credential parts are known.
func (a *Authenticator) Authenticate(ctx context.Context) (interfaces.Session, error) {
	if err := a.creds.Validate(); err != nil {
		return nil, err
	}
	if a.transport == nil {
		return nil, &coreerrors.ConfigurationError{Field: "transport", Message: "transport is required"}
	}

	a.setState(StateUnauthenticated)
	root := a.creds.BaseURL() + a.path

	sid, auth, err := a.login(ctx, root)
	if err != nil {
		return nil, a.fail(err)
	}
	a.setState(StateLoggedIn)

	token, err := a.token(ctx, root, auth)
	if err != nil {
		return nil, a.fail(err)
	}

	session := &Session{
		root:       root,
		credential: domain.SessionCredential{SID: sid, Auth: auth, Token: token},
		transport:  a.transport,
		logger:     a.logger,
	}
	a.setState(StateTokenized)

	if a.logger != nil {
		a.logger.Debug("GReader authentication succeeded", map[string]interface{}{
			"root": root,
		})
	}

	return session, nil
}

func (a *Authenticator) login(ctx context.Context, root string) (sid, auth string, err error) {
	body, err := a.transport.Execute(ctx, &interfaces.Request{
		Method: http.MethodPost,
		URL:    root + "accounts/ClientLogin",
		Form: url.Values{
			"Email":  {a.creds.Username},
			"Passwd": {a.creds.Password},
		},
	})
	if err != nil {
		return "", "", rejected("login", "server rejected credentials", err)
	}

	fields := parseKeyValues(body.Text())
	if fields["Auth"] == "" {
		return "", "", &coreerrors.AuthenticationError{Stage: "login", Message: "login response missing Auth"}
	}
	if fields["SID"] == "" {
		return "", "", &coreerrors.AuthenticationError{Stage: "login", Message: "login response missing SID"}
	}
	return fields["SID"], fields["Auth"], nil
}

func (a *Authenticator) token(ctx context.Context, root, auth string) (string, error) {
	body, err := a.transport.Execute(ctx, &interfaces.Request{
		Method: http.MethodGet,
		URL:    root + "reader/api/0/token",
		Header: http.Header{"Authorization": {authorization(auth)}},
	})
	if err != nil {
		return "", rejected("token", "server rejected auth token", err)
	}

	token := strings.TrimSpace(body.Text())
	if token == "" {
		return "", &coreerrors.AuthenticationError{Stage: "token", Message: "token response is empty"}
	}
	return token, nil
}

func (a *Authenticator) fail(err error) error {
	a.setState(StateFailed)
	if a.logger != nil {
		a.logger.Debug("GReader authentication failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return err
}

// rejected maps 401 and 403 to an AuthenticationError and passes anything else through
func rejected(stage, message string, err error) error {
	if code := coreerrors.StatusCode(err); code == http.StatusUnauthorized || code == http.StatusForbidden {
		return &coreerrors.AuthenticationError{Stage: stage, Message: message, Cause: err}
	}
	return err
}

func authorization(auth string) string {
	return "GoogleLogin auth=" + auth
}

// parseKeyValues reads newline separated KEY=VALUE pairs. Lines without '=' are skipped.
func parseKeyValues(body string) map[string]string {
	fields := make(map[string]string)
	scanner := bufio.NewScanner(strings.NewReader(body))
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fields
}
