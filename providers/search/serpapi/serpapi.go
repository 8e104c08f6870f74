// Package serpapi is a minimal client for the SerpAPI Google engine, used to
// find candidate pages for code-snippet harvesting.
package serpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/DJSquale/gpt-langchain-agent/internal/utils"
	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
)

const (
	DefaultBaseURL = "https://serpapi.com"

	searchEndpoint = "/search.json"
	engineGoogle   = "google"

	// MaxOrganicCandidates is how many organic links CandidateLinks considers.
	MaxOrganicCandidates = 3
)

// ErrMissingAPIKey is returned by Search when no API key was configured.
var ErrMissingAPIKey = errors.New("serpapi: API key is not set")

// Client queries SerpAPI. The zero value is not usable; call New.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides DefaultBaseURL. An empty value is ignored.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimSuffix(baseURL, "/")
		}
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// New returns a Client authenticating with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{apiKey: apiKey, baseURL: DefaultBaseURL, client: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response holds the parts of a SerpAPI result page that are used. Pointer
// fields stay nil when SerpAPI omits them.
type Response struct {
	SearchParameters  *SearchParameters  `json:"search_parameters,omitempty"`
	SearchInformation *SearchInformation `json:"search_information,omitempty"`
	AnswerBox         *AnswerBox         `json:"answer_box,omitempty"`
	OrganicResults    []OrganicResult    `json:"organic_results,omitempty"`

	// Error is set on 200 responses too, e.g. when Google returned nothing.
	Error string `json:"error,omitempty"`
}

type SearchParameters struct {
	Q *string `json:"q,omitempty"`
}

type SearchInformation struct {
	TotalResults *int64 `json:"total_results,omitempty"`
}

type AnswerBox struct {
	Link string `json:"link,omitempty"`
}

type OrganicResult struct {
	Position int     `json:"position,omitempty"`
	Title    *string `json:"title,omitempty"`
	Link     *string `json:"link,omitempty"`
}

// CandidateLinks returns the answer box link followed by the first
// MaxOrganicCandidates organic links, skipping empty ones.
func (r *Response) CandidateLinks() []string {
	links := make([]string, 0, MaxOrganicCandidates+1)
	if r.AnswerBox != nil && r.AnswerBox.Link != "" {
		links = append(links, r.AnswerBox.Link)
	}
	for i, result := range r.OrganicResults {
		if i >= MaxOrganicCandidates {
			break
		}
		if result.Link != nil && *result.Link != "" {
			links = append(links, *result.Link)
		}
	}
	return links
}

// Search runs query on the Google engine: ten results, English, US.
func (c *Client) Search(ctx context.Context, query string) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("engine", engineGoogle)
	params.Set("q", query)
	params.Set("api_key", c.apiKey)
	params.Set("num", "10")
	params.Set("hl", "en")
	params.Set("gl", "us")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// The request URL carries the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("serpapi request: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr Response
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("serpapi error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("serpapi: unexpected status code %d: %s", resp.StatusCode, utils.TruncateString(string(body), 200))
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventSearchCompleted,
			observability.String(observability.AttrSearchEngine, engineGoogle),
			observability.Int(observability.AttrSearchResultsCount, len(out.OrganicResults)),
		)
	}
	return &out, nil
}
