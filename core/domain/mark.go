package domain

import (
	"strings"

	coreerrors "feedsync/core/errors"
)

// MarkAction is the state change requested for an item
type MarkAction string

const (
	MarkRead    MarkAction = "read"
	MarkUnread  MarkAction = "unread"
	MarkSaved   MarkAction = "saved"
	MarkUnsaved MarkAction = "unsaved"
)

// ParseMarkAction converts user input into a MarkAction
func ParseMarkAction(s string) (MarkAction, error) {
	action := MarkAction(strings.ToLower(strings.TrimSpace(s)))
	if !action.Valid() {
		return "", &coreerrors.ValidationError{
			Field:   "action",
			Message: "must be one of read, unread, saved, unsaved",
		}
	}
	return action, nil
}

// Valid reports whether a is a known action
func (a MarkAction) Valid() bool {
	switch a {
	case MarkRead, MarkUnread, MarkSaved, MarkUnsaved:
		return true
	}
	return false
}

// String implements fmt.Stringer
func (a MarkAction) String() string {
	return string(a)
}
