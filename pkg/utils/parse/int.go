// ABOUTME: Utility functions for parsing integers from strings and loose JSON
// ABOUTME: Aggregation servers encode the same counter as a number, a string or a bool

package parse

import (
	"bytes"
	"fmt"
	"strconv"
)

// Int64OrZero safely parses an integer from a string, returning 0 if parsing fails
func Int64OrZero(s string) int64 {
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

// FlexInt accepts the integer encodings seen in the wild: JSON numbers,
// quoted numbers, booleans and null.
type FlexInt int64

// UnmarshalJSON implements json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "null", `""`, "false":
		*f = 0
		return nil
	case "true":
		*f = 1
		return nil
	}

	raw := string(bytes.Trim(data, `"`))
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		// some servers send floats for counters
		fl, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return fmt.Errorf("invalid integer %s", data)
		}
		n = int64(fl)
	}
	*f = FlexInt(n)
	return nil
}

// Int64 returns the value as an int64
func (f FlexInt) Int64() int64 {
	return int64(f)
}

// Bool reports whether the value is non-zero
func (f FlexInt) Bool() bool {
	return f != 0
}
