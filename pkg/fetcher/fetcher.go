// Package fetcher downloads review listing pages, optionally through a
// page cache.
package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/dtnitsch/reviewstats/pkg/caching"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "reviewstats/1.0 (+https://github.com/dtnitsch/reviewstats)"
	maxPageBytes     = 32 << 20
)

type Fetcher struct {
	client    *http.Client
	cache     *caching.PageCache
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCache serves and stores pages through c.
func WithCache(c *caching.PageCache) Option {
	return func(f *Fetcher) { f.cache = c }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithClient replaces the HTTP client, e.g. for tests.
func WithClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

func NewFetcher(timeout time.Duration, opts ...Option) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f := &Fetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Page is a fetched page body.
type Page struct {
	URL       string
	Body      []byte
	FromCache bool
}

// GetHtml fetches url and parses it.
func (f *Fetcher) GetHtml(ctx context.Context, url string) (*goquery.Document, *Page, error) {
	page, err := f.GetHtmlBytes(ctx, url)
	if err != nil {
		return nil, nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page.Body))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, page, nil
}

// GetHtmlBytes returns the page body, from the cache when a fresh entry
// exists. Only 200 responses are cached.
func (f *Fetcher) GetHtmlBytes(ctx context.Context, url string) (*Page, error) {
	if f.cache != nil {
		if body, age, ok := f.cache.Get(url); ok {
			slog.Debug("page cache hit", "url", url, "age", age.Round(time.Second).String())
			return &Page{URL: url, Body: body, FromCache: true}, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch HTML, status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if f.cache != nil {
		if err := f.cache.Set(url, body); err != nil {
			slog.Warn("failed to cache page", "url", url, "error", err)
		}
	}
	return &Page{URL: url, Body: body}, nil
}
