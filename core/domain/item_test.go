package domain

import (
	"errors"
	"testing"
	"time"

	coreerrors "feedsync/core/errors"
)

func TestSortByID(t *testing.T) {
	items := []Item{{ID: 30}, {ID: 10}, {ID: 20}}

	SortByID(items)

	for i, want := range []int64{10, 20, 30} {
		if items[i].ID != want {
			t.Errorf("items[%d].ID = %d, want %d", i, items[i].ID, want)
		}
	}
}

func TestMaxID(t *testing.T) {
	if MaxID(nil) != 0 {
		t.Error("MaxID(nil) should be 0")
	}
	if got := MaxID([]Item{{ID: 4}, {ID: 9}, {ID: 2}}); got != 9 {
		t.Errorf("MaxID = %d, want 9", got)
	}
}

func TestItem_CreatedAt(t *testing.T) {
	item := Item{CreatedOnTime: 1709251200}

	expected := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !item.CreatedAt().Equal(expected) {
		t.Errorf("CreatedAt() = %v, want %v", item.CreatedAt(), expected)
	}
}

func TestBound_Cursor(t *testing.T) {
	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		bound    Bound
		expected int64
	}{
		{"id is used as-is", BoundFromID(1709251200000123), 1709251200000123},
		{"numeric string is an id", BoundFromString("42"), 42},
		{"calendar date is midnight UTC", BoundFromString("2024-03-01"), march.UnixMicro()},
		{"timestamp string", BoundFromString("2024-03-01T00:00:01Z"), march.Add(time.Second).UnixMicro()},
		{"time value", BoundFromTime(march.Add(1500 * time.Microsecond)), march.UnixMicro() + 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.bound.Cursor()
			if err != nil {
				t.Fatalf("Cursor() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Cursor() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestBound_Zero(t *testing.T) {
	var b Bound
	if !b.IsZero() {
		t.Error("zero Bound should report IsZero")
	}

	_, err := b.Cursor()
	if !coreerrors.IsConfiguration(err) {
		t.Errorf("Cursor() on zero bound error = %v, want ConfigurationError", err)
	}
}

func TestBound_InvalidString(t *testing.T) {
	_, err := BoundFromString("last tuesday").Cursor()
	if !coreerrors.IsValidation(err) {
		t.Errorf("Cursor() error = %v, want ValidationError", err)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 6, 7, 8, 9, 123456000, time.UTC)
	if got := TimeFromCursor(CursorFromTime(now)); !got.Equal(now) {
		t.Errorf("TimeFromCursor(CursorFromTime(t)) = %v, want %v", got, now)
	}
}

func TestParseMarkAction(t *testing.T) {
	tests := []struct {
		input    string
		expected MarkAction
		wantErr  bool
	}{
		{"read", MarkRead, false},
		{" Saved ", MarkSaved, false},
		{"UNREAD", MarkUnread, false},
		{"unsaved", MarkUnsaved, false},
		{"starred", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMarkAction(tt.input)
			if tt.wantErr {
				if !coreerrors.IsValidation(err) {
					t.Errorf("ParseMarkAction(%q) error = %v, want ValidationError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMarkAction(%q) error = %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseMarkAction(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestProtocol_Valid(t *testing.T) {
	if !ProtocolFever.Valid() || !ProtocolGReader.Valid() {
		t.Error("known protocols should be valid")
	}
	if Protocol("rss").Valid() {
		t.Error("unknown protocol should be invalid")
	}
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		field string
	}{
		{"missing host", Credentials{Username: "u", Password: "p"}, "host"},
		{"host without scheme", Credentials{Host: "rss.example.com", Username: "u", Password: "p"}, "host"},
		{"ftp host", Credentials{Host: "ftp://rss.example.com", Username: "u", Password: "p"}, "host"},
		{"missing username", Credentials{Host: "https://rss.example.com", Password: "p"}, "username"},
		{"missing password", Credentials{Host: "https://rss.example.com", Username: "u"}, "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			var cfgErr *coreerrors.ConfigurationError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Validate() error = %v, want ConfigurationError", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", cfgErr.Field, tt.field)
			}
		})
	}

	valid := Credentials{Host: "https://rss.example.com/", Username: "u", Password: "p"}
	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() error = %v for valid credentials", err)
	}
}

func TestCredentials_BaseURL(t *testing.T) {
	for _, host := range []string{"https://rss.example.com", "https://rss.example.com/", "https://rss.example.com///"} {
		got := Credentials{Host: host}.BaseURL()
		if got != "https://rss.example.com/" {
			t.Errorf("BaseURL(%q) = %q", host, got)
		}
	}
}
