// ABOUTME: Bound is one end of a date-range sync window, normalized to a cursor
// ABOUTME: Cursors live in the item ID domain, which is microseconds since the epoch

package domain

import (
	"strconv"
	"strings"
	"time"

	coreerrors "feedsync/core/errors"
	timeutil "feedsync/pkg/utils/time"
)

type boundKind int

const (
	boundUnset boundKind = iota
	boundID
	boundTime
	boundString
)

// Bound is an endpoint of a date-range window. The zero value means "absent".
type Bound struct {
	kind boundKind
	id   int64
	at   time.Time
	raw  string
}

// BoundFromID uses id directly as a cursor
func BoundFromID(id int64) Bound {
	return Bound{kind: boundID, id: id}
}

// BoundFromTime converts t to a cursor at microsecond resolution
func BoundFromTime(t time.Time) Bound {
	return Bound{kind: boundTime, at: t}
}

// BoundFromString accepts a numeric ID, a calendar date or a full timestamp
func BoundFromString(s string) Bound {
	return Bound{kind: boundString, raw: s}
}

// IsZero reports whether the bound was left unset
func (b Bound) IsZero() bool {
	return b.kind == boundUnset
}

// Cursor normalizes the bound into the item ID domain
func (b Bound) Cursor() (int64, error) {
	switch b.kind {
	case boundID:
		return b.id, nil
	case boundTime:
		return CursorFromTime(b.at), nil
	case boundString:
		raw := strings.TrimSpace(b.raw)
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return id, nil
		}
		t, err := timeutil.ParseFlexibleTime(raw)
		if err != nil {
			return 0, &coreerrors.ValidationError{Field: "date", Message: err.Error()}
		}
		return CursorFromTime(t), nil
	}
	return 0, &coreerrors.ConfigurationError{Field: "date", Message: "bound is not set"}
}

// String renders the bound the way it was supplied
func (b Bound) String() string {
	switch b.kind {
	case boundID:
		return strconv.FormatInt(b.id, 10)
	case boundTime:
		return b.at.UTC().Format(time.RFC3339Nano)
	case boundString:
		return b.raw
	}
	return ""
}

// CursorFromTime converts t into the item ID domain
func CursorFromTime(t time.Time) int64 {
	return t.UnixMicro()
}

// TimeFromCursor is the inverse of CursorFromTime
func TimeFromCursor(cursor int64) time.Time {
	return time.UnixMicro(cursor).UTC()
}
