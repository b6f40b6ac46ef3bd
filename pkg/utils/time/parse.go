// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Turns user supplied dates and timestamps into time values for sync windows

package time

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Accepted layouts, most specific first. Layouts without a zone are read as UTC.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
}

// ParseFlexibleTime parses timeStr using the accepted layouts.
// A calendar date yields midnight UTC of that date.
func ParseFlexibleTime(timeStr string) (time.Time, error) {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}, errors.New("empty time string")
	}

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %q", timeStr)
}
