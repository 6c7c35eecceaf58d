// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package arxiv queries the arXiv Atom API for paper metadata.
package arxiv

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"
	"golang.org/x/time/rate"

	"github.com/pdiddy/research-server/internal/httputil"
	"github.com/pdiddy/research-server/pkg/types"
)

// pdfBase is used when an entry carries no PDF link.
const pdfBase = "https://arxiv.org/pdf/"

// ErrNotFound is returned by Lookup when arXiv has no entry for the identifier.
var ErrNotFound = errors.New("paper not found")

// APIError is an error entry returned by arXiv in place of results, for
// example for a malformed identifier.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return "arXiv API error: " + e.Message }

// Client queries the arXiv API. It is safe for concurrent use; all requests
// share one pacing limiter.
type Client struct {
	cfg     types.ArxivConfig
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a client with its own HTTP client using cfg.Timeout.
func New(cfg types.ArxivConfig) *Client {
	return NewWithHTTPClient(cfg, &http.Client{Timeout: cfg.Timeout})
}

// NewWithHTTPClient creates a client that sends requests through hc.
func NewWithHTTPClient(cfg types.ArxivConfig, hc *http.Client) *Client {
	return &Client{
		cfg:     cfg,
		http:    hc,
		limiter: httputil.NewLimiter(cfg.RequestInterval, cfg.Burst),
	}
}

// Search returns up to maxResults papers for query, in arXiv relevance order.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]types.Paper, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty arXiv query")
	}
	if maxResults <= 0 {
		return nil, fmt.Errorf("max results must be positive, got %d", maxResults)
	}

	params := url.Values{
		"search_query": {query},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(maxResults)},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	}
	entries, err := c.query(ctx, params)
	if err != nil {
		return nil, err
	}

	papers := make([]types.Paper, 0, len(entries))
	for _, entry := range entries {
		p, ok := toPaper(entry)
		if !ok {
			continue
		}
		papers = append(papers, p)
		if len(papers) == maxResults {
			break
		}
	}
	return papers, nil
}

// Lookup returns the paper with the given identifier.
func (c *Client) Lookup(ctx context.Context, id string) (types.Paper, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return types.Paper{}, fmt.Errorf("empty arXiv identifier")
	}

	entries, err := c.query(ctx, url.Values{"id_list": {id}, "max_results": {"1"}})
	if err != nil {
		return types.Paper{}, err
	}
	for _, entry := range entries {
		if p, ok := toPaper(entry); ok {
			return p, nil
		}
	}
	return types.Paper{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (c *Client) query(ctx context.Context, params url.Values) ([]*atom.Entry, error) {
	u := c.cfg.BaseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoPaced(ctx, c.http, c.limiter, req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	feed, err := (&atom.Parser{}).Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	for _, entry := range feed.Entries {
		if isErrorEntry(entry) {
			return nil, &APIError{Message: normalizeWhitespace(entry.Summary)}
		}
	}
	return feed.Entries, nil
}

// isErrorEntry reports whether arXiv answered with an error document, whose
// single entry has an id under http://arxiv.org/api/errors.
func isErrorEntry(e *atom.Entry) bool {
	return strings.Contains(e.ID, "arxiv.org/api/errors")
}

func toPaper(e *atom.Entry) (types.Paper, bool) {
	id := EntryID(e.ID)
	if id == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		ID:        id,
		Title:     normalizeWhitespace(e.Title),
		Summary:   normalizeWhitespace(e.Summary),
		Published: publishedDate(e),
		PDFURL:    pdfLink(e, id),
		Authors:   []string{},
	}
	for _, a := range e.Authors {
		if a == nil {
			continue
		}
		if name := strings.TrimSpace(a.Name); name != "" {
			p.Authors = append(p.Authors, name)
		}
	}
	return p, true
}

// EntryID returns the trailing path segment of an entry URI
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041v1"). The version
// suffix is kept.
func EntryID(entryURI string) string {
	entryURI = strings.TrimRight(strings.TrimSpace(entryURI), "/")
	if entryURI == "" {
		return ""
	}
	return entryURI[strings.LastIndex(entryURI, "/")+1:]
}

func publishedDate(e *atom.Entry) string {
	if e.PublishedParsed != nil {
		return e.PublishedParsed.UTC().Format(types.DateLayout)
	}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(e.Published)); err == nil {
		return t.UTC().Format(types.DateLayout)
	}
	return ""
}

func pdfLink(e *atom.Entry, id string) string {
	for _, l := range e.Links {
		if l == nil {
			continue
		}
		if l.Title == "pdf" || l.Type == "application/pdf" {
			return l.Href
		}
	}
	return pdfBase + id
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
