package validators

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseQueryInt(t *testing.T) {
	r := httptest.NewRequest("GET", "/?limit=10", nil)
	got, err := ParseQueryInt(r, "limit", 25, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	got, err = ParseQueryInt(r, "limit", 25, 1, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 25 {
		t.Fatalf("expected default 25, got %d", got)
	}

	r = httptest.NewRequest("GET", "/?limit=abc", nil)
	if _, err := ParseQueryInt(r, "limit", 25, 1, 100); err == nil {
		t.Fatal("expected error for non-numeric input")
	}

	r = httptest.NewRequest("GET", "/?limit=500", nil)
	if _, err := ParseQueryInt(r, "limit", 25, 1, 100); err == nil {
		t.Fatal("expected error for out-of-range input")
	}
}

func TestParseQueryDate(t *testing.T) {
	r := httptest.NewRequest("GET", "/?from=2026-03-01", nil)
	got, err := ParseQueryDate(r, "from", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || !got.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date %v", got)
	}

	r = httptest.NewRequest("GET", "/", nil)
	got, err = ParseQueryDate(r, "from", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent parameter, got %v", got)
	}

	r = httptest.NewRequest("GET", "/?from=03-01-2026", nil)
	if _, err := ParseQueryDate(r, "from", time.UTC); err == nil {
		t.Fatal("expected error for wrong layout")
	}
}
