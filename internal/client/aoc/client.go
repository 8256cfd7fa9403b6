// Package aoc fetches puzzle inputs and descriptions for the panel solver.
package aoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	BaseURL   = "https://adventofcode.com"
	RateLimit = 3 * time.Second
	UserAgent = "github.com/henrytill/panels-go"
)

var (
	ErrNoSession    = errors.New("no session token")
	ErrNotFound     = errors.New("puzzle not found or not unlocked yet")
	ErrUnauthorized = errors.New("session rejected")
)

// Puzzle names a single day of an event.
type Puzzle struct {
	Year int
	Day  int
}

func (p Puzzle) Validate() error {
	if p.Year < 2015 {
		return fmt.Errorf("invalid year: %d", p.Year)
	}
	if p.Day < 1 || p.Day > 25 {
		return fmt.Errorf("invalid day: %d", p.Day)
	}
	return nil
}

// ParsePuzzle reads "YEAR/DAY".
func ParsePuzzle(s string) (Puzzle, error) {
	year, day, ok := strings.Cut(s, "/")
	if !ok {
		return Puzzle{}, fmt.Errorf("invalid puzzle %q: want YEAR/DAY", s)
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return Puzzle{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return Puzzle{}, fmt.Errorf("invalid day in %q: %w", s, err)
	}
	p := Puzzle{Year: y, Day: d}
	return p, p.Validate()
}

func (p Puzzle) String() string {
	return fmt.Sprintf("%d/%d", p.Year, p.Day)
}

type Client struct {
	httpClient  *http.Client
	session     string
	baseURL     string
	cacheDir    string
	rateLimit   time.Duration
	mu          sync.Mutex
	lastRequest time.Time
}

func NewClient(session string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		session:    session,
		baseURL:    BaseURL,
		rateLimit:  RateLimit,
	}
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

func (c *Client) WithBaseURL(baseURL string) *Client {
	c.baseURL = baseURL
	return c
}

// WithCacheDir makes the client read responses from dir when present and
// store fetched responses there.
func (c *Client) WithCacheDir(dir string) *Client {
	c.cacheDir = dir
	return c
}

func (c *Client) WithRateLimit(d time.Duration) *Client {
	c.rateLimit = d
	return c
}

func (c *Client) wait(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elapsed := time.Since(c.lastRequest); elapsed < c.rateLimit {
		select {
		case <-time.After(c.rateLimit - elapsed):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	c.lastRequest = time.Now()
	return nil
}

func (c *Client) makeRequest(ctx context.Context, path string, needsSession bool) ([]byte, error) {
	if needsSession && c.session == "" {
		return nil, ErrNoSession
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: "session", Value: c.session})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	case http.StatusTooManyRequests:
		backoff := 5 * time.Second
		select {
		case <-time.After(backoff):
			return c.makeRequest(ctx, path, needsSession)
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrUnauthorized, resp.StatusCode)
	default:
		return nil, fmt.Errorf("request %s failed with status %d", path, resp.StatusCode)
	}
}

func (c *Client) cached(ctx context.Context, name, path string, needsSession bool) ([]byte, error) {
	var cacheFile string
	if c.cacheDir != "" {
		cacheFile = filepath.Join(c.cacheDir, name)
		if data, err := os.ReadFile(cacheFile); err == nil {
			return data, nil
		}
	}

	data, err := c.makeRequest(ctx, path, needsSession)
	if err != nil {
		return nil, err
	}

	if cacheFile != "" {
		if err := os.MkdirAll(filepath.Dir(cacheFile), 0700); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
		if err := os.WriteFile(cacheFile, data, 0600); err != nil {
			return nil, fmt.Errorf("failed to write cache file: %w", err)
		}
	}
	return data, nil
}

// Input returns the personal puzzle input. It requires a session.
func (c *Client) Input(ctx context.Context, p Puzzle) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.cached(ctx,
		fmt.Sprintf("%d/%d.input", p.Year, p.Day),
		fmt.Sprintf("/%d/day/%d/input", p.Year, p.Day),
		true)
}

// Description returns the puzzle page as HTML.
func (c *Client) Description(ctx context.Context, p Puzzle) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return c.cached(ctx,
		fmt.Sprintf("%d/%d.html", p.Year, p.Day),
		fmt.Sprintf("/%d/day/%d", p.Year, p.Day),
		false)
}
