// Package feed fetches raw feed documents and turns them into tabular rows.
// Sources with different wire formats (CSV export, HTML table page) hide
// behind the same Source interface so the rest of the pipeline never sees
// source-format churn.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/catalog-ingest-api/internal/tabular"
)

const (
	userAgent     = "Mozilla/5.0 (AffiliateBot/1.0)"
	acceptHeader  = "text/csv,application/csv,text/plain,*/*"
	excerptLength = 120
)

// FetchError is a non-success feed response. It carries the status code and
// a truncated body excerpt for diagnostics.
type FetchError struct {
	StatusCode int
	Excerpt    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("feed HTTP %d | head: %s", e.StatusCode, e.Excerpt)
}

// Source yields one parsed feed table per call
type Source interface {
	FetchTable(ctx context.Context) (*tabular.Table, error)
}

// Client performs single bounded-timeout GETs against feed URLs.
// No retries here: retrying is the scheduler's business.
type Client struct {
	http *http.Client
}

// NewClient creates a feed client with the given per-request timeout
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Fetch performs a single GET and returns the response body as text.
// Any non-2xx status is a *FetchError; timeout aborts the in-flight request.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read feed body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt := string(body)
		if len(excerpt) > excerptLength {
			excerpt = excerpt[:excerptLength]
		}
		return "", &FetchError{StatusCode: resp.StatusCode, Excerpt: excerpt}
	}

	return string(body), nil
}

// CSVSource fetches a delimited text feed and parses it
type CSVSource struct {
	client *Client
	url    string
}

// NewCSVSource creates a Source for a delimited text feed URL
func NewCSVSource(client *Client, url string) *CSVSource {
	return &CSVSource{client: client, url: url}
}

// FetchTable implements Source
func (s *CSVSource) FetchTable(ctx context.Context) (*tabular.Table, error) {
	text, err := s.client.Fetch(ctx, s.url)
	if err != nil {
		return nil, err
	}
	return tabular.Parse(text)
}
