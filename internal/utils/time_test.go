package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{"empty means local", "", false},
		{"explicit local", "Local", false},
		{"valid iana zone", "America/New_York", false},
		{"utc", "UTC", false},
		{"garbage", "Not/AZone", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation(%q) error = %v, wantErr %v", tt.timezone, err, tt.wantErr)
			}
		})
	}
}

func TestDateOf_CrossesDayBoundary(t *testing.T) {
	// 2025-06-11 03:00 UTC is still 2025-06-10 in New York
	instant := time.Date(2025, 6, 11, 3, 0, 0, 0, time.UTC)

	utcDate, err := DateOf(instant, "UTC")
	if err != nil {
		t.Fatal(err)
	}
	if utcDate != "2025-06-11" {
		t.Errorf("expected 2025-06-11 in UTC, got %s", utcDate)
	}

	nyDate, err := DateOf(instant, "America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	if nyDate != "2025-06-10" {
		t.Errorf("expected 2025-06-10 in New York, got %s", nyDate)
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-06-10")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.June || d.Day() != 10 {
		t.Errorf("unexpected parse result: %v", d)
	}

	if _, err := ParseDate("10/06/2025"); err == nil {
		t.Error("expected non-ISO date to fail")
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds  float64
		expected string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{1, "00:01"},
		{59.2, "01:00"}, // partial seconds round up
		{60, "01:00"},
		{90, "01:30"},
		{600, "10:00"},
		{7200, "120:00"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.seconds); got != tt.expected {
			t.Errorf("FormatClock(%v) = %q, want %q", tt.seconds, got, tt.expected)
		}
	}
}
