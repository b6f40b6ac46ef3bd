// ABOUTME: Public types for the feedsync library API
// ABOUTME: Aliases of the core domain so callers need only this package

package feedsync

import (
	"time"

	"feedsync/core/domain"
	"feedsync/core/interfaces"
	coresync "feedsync/core/sync"
)

type (
	// Item is one article as reported by the server
	Item = domain.Item

	// Bound is one end of a date-range window
	Bound = domain.Bound

	// MarkAction is the state change requested for an item
	MarkAction = domain.MarkAction

	// MarkResult is the outcome of SetMark
	MarkResult = interfaces.MarkResult

	// Protocol names a wire protocol
	Protocol = domain.Protocol

	// Checkpoint records the progress of a named Pull
	Checkpoint = coresync.Checkpoint
)

const (
	ProtocolFever   = domain.ProtocolFever
	ProtocolGReader = domain.ProtocolGReader

	MarkRead    = domain.MarkRead
	MarkUnread  = domain.MarkUnread
	MarkSaved   = domain.MarkSaved
	MarkUnsaved = domain.MarkUnsaved
)

// FromID is a bound at an item ID
func FromID(id int64) Bound { return domain.BoundFromID(id) }

// FromTime is a bound at t
func FromTime(t time.Time) Bound { return domain.BoundFromTime(t) }

// FromString parses a numeric ID, a calendar date or a timestamp
func FromString(s string) Bound { return domain.BoundFromString(s) }

// ParseMarkAction converts user input into a MarkAction
func ParseMarkAction(s string) (MarkAction, error) { return domain.ParseMarkAction(s) }
