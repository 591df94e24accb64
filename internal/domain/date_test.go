package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"calendar day", "2026-10-16", time.Date(2026, time.October, 16, 0, 0, 0, 0, time.Local), false},
		{"surrounding space", " 2026-10-16 ", time.Date(2026, time.October, 16, 0, 0, 0, 0, time.Local), false},
		{"browser timestamp", "2023-10-02T10:00:00.000Z", time.Date(2023, time.October, 2, 10, 0, 0, 0, time.UTC), false},
		{"timestamp with offset", "2026-10-16T09:15:00+05:30", time.Date(2026, time.October, 16, 3, 45, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, false},
		{"day first", "16/10/2026", time.Time{}, true},
		{"junk", "yesterday", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected an error", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got.Time, tt.want)
			}
		})
	}
}

func TestDateString(t *testing.T) {
	tests := []struct {
		name string
		in   Date
		want string
	}{
		{"zero", Date{}, ""},
		{"local midnight", NewDate(time.Date(2026, time.October, 16, 0, 0, 0, 0, time.Local)), "2026-10-16"},
		{"time of day", NewDate(time.Date(2026, time.October, 16, 13, 45, 12, 123456789, time.UTC)), "2026-10-16T13:45:12.123Z"},
		{"browser timestamp", MustParseDate("2023-10-02T10:00:07.250Z"), "2023-10-02T10:00:07.250Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

type dated struct {
	Start Date  `json:"start"`
	End   *Date `json:"end,omitempty"`
}

func TestDateJSON(t *testing.T) {
	paidAt := time.Date(2026, time.October, 16, 13, 45, 12, 123456789, time.Local)
	in := dated{Start: MustParseDate("2023-10-01"), End: &Date{Time: paidAt}}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out dated
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal of %s failed: %v", data, err)
	}
	if out.Start.String() != "2023-10-01" {
		t.Errorf("expected start 2023-10-01, got %q", out.Start.String())
	}
	if out.End == nil || !out.End.Equal(paidAt.Truncate(time.Millisecond)) {
		t.Errorf("expected end %v at millisecond precision, got %v", paidAt, out.End)
	}
}

func TestDateJSON_BrowserDocument(t *testing.T) {
	var out dated
	if err := json.Unmarshal([]byte(`{"start":"2023-10-02T10:00:00.000Z","end":null}`), &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !out.Start.Equal(time.Date(2023, time.October, 2, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start %v", out.Start.Time)
	}
	if out.End != nil {
		t.Errorf("expected no end date, got %v", out.End)
	}

	var cleared dated
	if err := json.Unmarshal([]byte(`{"start":null}`), &cleared); err != nil {
		t.Fatalf("Unmarshal of null failed: %v", err)
	}
	if !cleared.Start.IsZero() {
		t.Errorf("expected null to read as a zero date, got %v", cleared.Start.Time)
	}

	if err := json.Unmarshal([]byte(`{"start":20231002}`), &out); err == nil {
		t.Error("expected an error for a numeric date")
	}
	if err := json.Unmarshal([]byte(`{"start":"02-10-2023"}`), &out); err == nil {
		t.Error("expected an error for an unknown date format")
	}
}
