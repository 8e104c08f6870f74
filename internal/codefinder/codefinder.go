// Package codefinder answers "find me code for X" without the model: it
// searches Google through SerpAPI, then walks the top result pages until one
// yields code snippets.
package codefinder

import (
	"context"

	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
	"github.com/DJSquale/gpt-langchain-agent/providers/search/serpapi"
	"github.com/DJSquale/gpt-langchain-agent/providers/tool/scrape"
)

// UserAgent is sent with every page fetch; some sites refuse Go's default.
const UserAgent = "Mozilla/5.0"

// Searcher is the part of serpapi.Client the finder depends on.
type Searcher interface {
	Search(ctx context.Context, query string) (*serpapi.Response, error)
}

// Result is the /fetchCode response body. TopURL is the page the snippets
// came from, else the first candidate, else null.
type Result struct {
	Query        string   `json:"query"`
	TopURL       *string  `json:"topUrl"`
	CodeSnippets []string `json:"codeSnippets"`
	SerpMeta     SerpMeta `json:"serpMeta"`
}

// SerpMeta echoes search metadata; each field is null when SerpAPI left it
// out.
type SerpMeta struct {
	Query        *string `json:"query"`
	TotalResults *int64  `json:"totalResults"`
	TopTitle     *string `json:"topTitle"`
	TopLink      *string `json:"topLink"`
}

// Finder is safe for concurrent use.
type Finder struct {
	searcher Searcher
	fetcher  *scrape.Fetcher
	observer observability.Provider
}

// Option configures a Finder.
type Option func(*Finder)

// WithFetcher replaces the default fetcher, which sends UserAgent.
func WithFetcher(fetcher *scrape.Fetcher) Option {
	return func(f *Finder) {
		if fetcher != nil {
			f.fetcher = fetcher
		}
	}
}

func WithObserver(observer observability.Provider) Option {
	return func(f *Finder) { f.observer = observer }
}

// New returns a Finder that searches with searcher.
func New(searcher Searcher, opts ...Option) *Finder {
	f := &Finder{
		searcher: searcher,
		fetcher:  scrape.NewFetcher(scrape.WithUserAgent(UserAgent)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FindCode searches for query and tries each candidate link in order,
// stopping at the first page with code. A page that cannot be fetched or
// parsed is skipped. Only a failed search is returned as an error; finding
// nothing is a Result with no snippets.
func (f *Finder) FindCode(ctx context.Context, query string) (*Result, error) {
	var span observability.Span
	if f.observer != nil {
		ctx, span = f.observer.StartSpan(ctx, observability.SpanCodeFind,
			observability.String(observability.AttrSearchQuery, query),
		)
		defer span.End()
	}

	serp, err := f.searcher.Search(ctx, query)
	if err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "search failed")
		}
		return nil, err
	}
	if serp == nil {
		serp = &serpapi.Response{}
	}

	candidates := serp.CandidateLinks()
	if span != nil {
		span.SetAttributes(observability.Int(observability.AttrCodeCandidates, len(candidates)))
	}

	result := &Result{
		Query:        query,
		CodeSnippets: []string{},
		SerpMeta:     serpMeta(serp),
	}

	for _, link := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		snippets, err := f.harvest(ctx, link)
		if span != nil {
			span.AddEvent(observability.EventCodeCandidateTried,
				observability.String(observability.AttrScrapeURL, link),
				observability.Int(observability.AttrCodeSnippetsCount, len(snippets)),
			)
		}
		if err != nil {
			if f.observer != nil {
				f.observer.Warn(ctx, "scrape failed",
					observability.String(observability.AttrScrapeURL, link),
					observability.Error(err),
				)
			}
			continue
		}
		if len(snippets) > 0 {
			result.CodeSnippets = snippets
			result.TopURL = &link
			break
		}
	}

	if result.TopURL == nil && len(candidates) > 0 {
		result.TopURL = &candidates[0]
	}

	if span != nil {
		span.SetAttributes(observability.Int(observability.AttrCodeSnippetsCount, len(result.CodeSnippets)))
		span.SetStatus(observability.StatusOK, "success")
	}
	return result, nil
}

func (f *Finder) harvest(ctx context.Context, link string) ([]string, error) {
	doc, err := f.fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, err
	}
	return scrape.ExtractCode(doc)
}

func serpMeta(serp *serpapi.Response) SerpMeta {
	var meta SerpMeta
	if serp.SearchParameters != nil {
		meta.Query = serp.SearchParameters.Q
	}
	if serp.SearchInformation != nil {
		meta.TotalResults = serp.SearchInformation.TotalResults
	}
	if len(serp.OrganicResults) > 0 {
		meta.TopTitle = serp.OrganicResults[0].Title
		meta.TopLink = serp.OrganicResults[0].Link
	}
	return meta
}
