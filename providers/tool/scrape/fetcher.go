package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DJSquale/gpt-langchain-agent/internal/utils"
	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
)

// Document is the raw result of one GET.
type Document struct {
	URL        string
	StatusCode int
	Body       string
}

// TransportError reports that no response body could be obtained: DNS,
// connection, TLS, cancellation or a failed body read.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Fetcher performs single, unretried GET requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// WithTimeout bounds each fetch. Zero, the default, means the request lives
// as long as the caller's context.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header. Without it requests carry Go's
// default header and nothing else.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher returns a Fetcher using a plain http.Client with no timeout.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{client: &http.Client{}}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch issues a GET for url, with no extra headers unless WithUserAgent was
// given, and returns the body for any status code. The URL is not validated beforehand; a malformed URL
// surfaces as a TransportError.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Document, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Document{}, &TransportError{URL: url, Err: err}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Document{}, &TransportError{URL: url, Err: err}
	}
	defer utils.CloseWithLog(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Document{}, &TransportError{URL: url, Err: err}
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventPageFetched,
			observability.String(observability.AttrScrapeURL, url),
			observability.Int(observability.AttrScrapeStatusCode, resp.StatusCode),
			observability.Int(observability.AttrScrapeBodySize, len(body)),
		)
	}

	return Document{URL: url, StatusCode: resp.StatusCode, Body: string(body)}, nil
}
