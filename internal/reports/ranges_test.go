package reports

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func TestResolveRangeNamedKey(t *testing.T) {
	window := ResolveRange(RangeParams{Key: "last_7_days"}, testNow, time.UTC)

	if window.Start == nil {
		t.Fatal("expected bounded start")
	}
	wantStart := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	if !window.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", window.Start, wantStart)
	}
	if window.End.Before(testNow) {
		t.Fatalf("end %v should cover now %v", window.End, testNow)
	}
	if window.Label != "Last 7 Days" {
		t.Fatalf("unexpected label %q", window.Label)
	}
}

func TestResolveRangeYearToDate(t *testing.T) {
	window := ResolveRange(RangeParams{Key: "year_to_date"}, testNow, time.UTC)

	wantStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if window.Start == nil || !window.Start.Equal(wantStart) {
		t.Fatalf("start = %v, want %v", window.Start, wantStart)
	}
}

func TestResolveRangeAllTimeIsUnbounded(t *testing.T) {
	window := ResolveRange(RangeParams{Key: "all_time"}, testNow, time.UTC)
	if window.Start != nil {
		t.Fatalf("expected nil start, got %v", window.Start)
	}
}

func TestResolveRangeCustomOverridesKey(t *testing.T) {
	from := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)

	window := ResolveRange(RangeParams{Key: "last_30_days", From: &from, To: &to}, testNow, time.UTC)

	if window.Start == nil || !window.Start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("start = %v, want midnight Feb 1", window.Start)
	}
	if window.End.Day() != 3 {
		t.Fatalf("end = %v, want end of Feb 3", window.End)
	}
	if window.Label != "Custom Range" {
		t.Fatalf("unexpected label %q", window.Label)
	}
}

func TestResolveRangeHalfCustomFallsBackToKey(t *testing.T) {
	from := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	window := ResolveRange(RangeParams{Key: "last_30_days", From: &from}, testNow, time.UTC)

	if window.Label != "Last 30 Days" {
		t.Fatalf("expected fallback to named key, got %q", window.Label)
	}
}

func TestResolveRangeUnknownKeyFallsBackToDefault(t *testing.T) {
	window := ResolveRange(RangeParams{Key: "bogus"}, testNow, time.UTC)

	if window.Label != "Last 7 Days" {
		t.Fatalf("expected default window, got %q", window.Label)
	}
}
