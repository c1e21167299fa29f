// Package matchclient is a Go client for the matching cache API. It mirrors
// the web client's fetching policy: a 5-minute freshness window, 30-minute
// retention, no background revalidation — the server data is itself a cache,
// so aggressive refetching buys nothing.
package matchclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/prepmatch/backend/pkg/matching"
)

const (
	defaultStaleAfter = 5 * time.Minute
	defaultEvictAfter = 30 * time.Minute
)

// Client wraps the cache-read endpoint and the regenerate endpoint.
type Client struct {
	baseURL string
	token   string
	httpDo  *http.Client

	staleAfter time.Duration
	evictAfter time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	result    matching.CacheResult
	fetchedAt time.Time
}

// Option tweaks client policy.
type Option func(*Client)

// WithFreshness overrides the stale and eviction windows.
func WithFreshness(staleAfter, evictAfter time.Duration) Option {
	return func(c *Client) {
		c.staleAfter = staleAfter
		c.evictAfter = evictAfter
	}
}

// WithHTTPClient substitutes the transport, mainly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpDo = h }
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		token:      token,
		httpDo:     &http.Client{Timeout: 30 * time.Second},
		staleAfter: defaultStaleAfter,
		evictAfter: defaultEvictAfter,
		entries:    map[string]cacheEntry{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CachedMatches returns matches for a posting, served from the local cache
// while fresh.
func (c *Client) CachedMatches(ctx context.Context, jobPostingID string) (matching.CacheResult, error) {
	now := time.Now()

	c.mu.Lock()
	c.evictExpired(now)
	if entry, ok := c.entries[jobPostingID]; ok && now.Sub(entry.fetchedAt) < c.staleAfter {
		c.mu.Unlock()
		return entry.result, nil
	}
	c.mu.Unlock()

	result, err := c.fetch(ctx, jobPostingID)
	if err != nil {
		return matching.CacheResult{}, err
	}

	c.mu.Lock()
	c.entries[jobPostingID] = cacheEntry{result: result, fetchedAt: now}
	c.mu.Unlock()
	return result, nil
}

// Regenerate asks the server to recompute a posting's matches and, on
// success, invalidates the local entry so the next read refetches.
func (c *Client) Regenerate(ctx context.Context, jobPostingID string) error {
	endpoint := fmt.Sprintf("%s/api/matching/generate?jobPostingId=%s", c.baseURL, url.QueryEscape(jobPostingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("regenerate: http %d: %s", resp.StatusCode, readBody(resp.Body))
	}

	c.mu.Lock()
	delete(c.entries, jobPostingID)
	c.mu.Unlock()
	return nil
}

// Invalidate drops the local entry for a posting.
func (c *Client) Invalidate(jobPostingID string) {
	c.mu.Lock()
	delete(c.entries, jobPostingID)
	c.mu.Unlock()
}

func (c *Client) fetch(ctx context.Context, jobPostingID string) (matching.CacheResult, error) {
	endpoint := fmt.Sprintf("%s/api/matching/cache?jobPostingId=%s", c.baseURL, url.QueryEscape(jobPostingID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return matching.CacheResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return matching.CacheResult{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return matching.CacheResult{}, fmt.Errorf("cache read: http %d: %s", resp.StatusCode, readBody(resp.Body))
	}

	var payload struct {
		Success bool `json:"success"`
		matching.CacheResult
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return matching.CacheResult{}, fmt.Errorf("decode cache response: %w", err)
	}
	return payload.CacheResult, nil
}

func (c *Client) evictExpired(now time.Time) {
	for key, entry := range c.entries {
		if now.Sub(entry.fetchedAt) >= c.evictAfter {
			delete(c.entries, key)
		}
	}
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 512))
	return string(b)
}
