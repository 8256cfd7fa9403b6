package aoc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(server *httptest.Server, session string) *Client {
	return NewClient(session).
		WithBaseURL(server.URL).
		WithHTTPClient(server.Client()).
		WithRateLimit(0)
}

func TestNewClient(t *testing.T) {
	client := NewClient("abc")
	if client.baseURL != BaseURL {
		t.Errorf("expected baseURL %s, got %s", BaseURL, client.baseURL)
	}
	if client.rateLimit != RateLimit {
		t.Errorf("expected rate limit %v, got %v", RateLimit, client.rateLimit)
	}
}

func TestInput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2025/day/10/input" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		cookie, err := r.Cookie("session")
		if err != nil || cookie.Value != "secret" {
			t.Errorf("expected session cookie, got %v", cookie)
		}
		if r.UserAgent() != UserAgent {
			t.Errorf("expected user agent %q, got %q", UserAgent, r.UserAgent())
		}
		w.Write([]byte("[#] (0) {1}\n"))
	}))
	defer server.Close()

	data, err := newTestClient(server, "secret").Input(context.Background(), Puzzle{2025, 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "[#] (0) {1}\n" {
		t.Errorf("unexpected body %q", data)
	}
}

func TestInputRequiresSession(t *testing.T) {
	client := NewClient("")
	if _, err := client.Input(context.Background(), Puzzle{2025, 10}); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}

func TestDescriptionWithoutSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("session"); err == nil {
			t.Error("unexpected session cookie")
		}
		w.Write([]byte("<html></html>"))
	}))
	defer server.Close()

	if _, err := newTestClient(server, "").Description(context.Background(), Puzzle{2025, 10}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStatusErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNotFound, ErrNotFound},
		{http.StatusBadRequest, ErrUnauthorized},
	}
	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		_, err := newTestClient(server, "secret").Input(context.Background(), Puzzle{2025, 10})
		server.Close()
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: expected %v, got %v", tt.status, tt.want, err)
		}
	}
}

func TestCache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("cached body"))
	}))
	defer server.Close()

	dir := t.TempDir()
	client := newTestClient(server, "secret").WithCacheDir(dir)
	for range 3 {
		data, err := client.Input(context.Background(), Puzzle{2025, 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "cached body" {
			t.Errorf("unexpected body %q", data)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("expected 1 request, got %d", hits.Load())
	}

	info, err := os.Stat(filepath.Join(dir, "2025", "10.input"))
	if err != nil {
		t.Fatalf("cache file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("cache file mode = %o, want 600", info.Mode().Perm())
	}
}

func TestRateLimitHonoursContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := newTestClient(server, "").WithRateLimit(time.Hour)
	if _, err := client.Description(context.Background(), Puzzle{2025, 10}); err != nil {
		t.Fatalf("first request: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if _, err := client.Description(ctx, Puzzle{2025, 11}); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestPuzzleValidate(t *testing.T) {
	if err := (Puzzle{2025, 10}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := (Puzzle{2025, 26}).Validate(); err == nil {
		t.Error("expected error for day 26")
	}
	if err := (Puzzle{2014, 1}).Validate(); err == nil {
		t.Error("expected error for 2014")
	}
	if got := (Puzzle{2025, 10}).String(); got != "2025/10" {
		t.Errorf("String() = %q", got)
	}
}

func TestParsePuzzle(t *testing.T) {
	p, err := ParsePuzzle("2025/10")
	if err != nil || p != (Puzzle{2025, 10}) {
		t.Errorf("ParsePuzzle(2025/10) = (%v, %v)", p, err)
	}
	if _, err := ParsePuzzle("2025-10"); err == nil {
		t.Error("expected error for 2025-10")
	}
}
