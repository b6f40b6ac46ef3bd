package interfaces

import (
	"context"
	"net/url"

	"feedsync/core/domain"
)

// ItemSource is the data surface the sync engine drives. Each method is one
// protocol-level exchange, or a fixed sequence of them for ID listings.
type ItemSource interface {
	// Protocol identifies the wire protocol behind the source
	Protocol() domain.Protocol

	// ItemsByIDs fetches the items with the given IDs in a single call.
	// Callers keep len(ids) within the protocol batch ceiling.
	ItemsByIDs(ctx context.Context, ids []int64) ([]domain.Item, error)

	// ItemsSince fetches one page of items above sinceID
	ItemsSince(ctx context.Context, sinceID int64) ([]domain.Item, error)

	// UnreadItemIDs lists the IDs of all unread items
	UnreadItemIDs(ctx context.Context) ([]int64, error)

	// SavedItemIDs lists the IDs of all saved items
	SavedItemIDs(ctx context.Context) ([]int64, error)

	// Mark applies action to the item. Unsupported actions fail with a
	// *errors.CapabilityError before any call is issued.
	Mark(ctx context.Context, action domain.MarkAction, id int64) (*MarkResult, error)
}

// Session is an authenticated connection to the server. Sessions are immutable:
// the credential they carry is fixed when the authenticator returns them.
type Session interface {
	ItemSource

	// Call issues one authenticated data call. For the fever protocol operation
	// is a query flag; for the greader protocol it is a path below the API root.
	Call(ctx context.Context, operation string, params url.Values) (*Body, error)
}

// Authenticator turns credentials into a validated Session
type Authenticator interface {
	Authenticate(ctx context.Context) (Session, error)
}

// MarkResult is the outcome of a mark call
type MarkResult struct {
	Action domain.MarkAction
	ID     int64

	// Acknowledged is false when the response lacks the shape the protocol
	// promises for this action. The call itself still succeeded.
	Acknowledged bool

	// Expected names the response element that was looked for
	Expected string

	// Body is the raw server response
	Body *Body
}
