// Package toolset assembles the default tool registry: WebSearchTool
// followed by ScrapeAndFormatTool.
package toolset

import (
	"time"

	"github.com/DJSquale/gpt-langchain-agent/providers/tool"
	"github.com/DJSquale/gpt-langchain-agent/providers/tool/scrape"
	"github.com/DJSquale/gpt-langchain-agent/providers/tool/websearch"
)

type options struct {
	format       scrape.Format
	fetchTimeout time.Duration
	fetcherOpts  []scrape.FetcherOption
}

// Option configures New.
type Option func(*options)

// WithScrapeFormat selects the ScrapeAndFormatTool rendering.
func WithScrapeFormat(format scrape.Format) Option {
	return func(o *options) { o.format = format }
}

// WithFetchTimeout bounds each page fetch. Zero means no bound.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(o *options) { o.fetchTimeout = timeout }
}

// WithFetcherOptions forwards options to the page fetcher, e.g. a test
// HTTP client.
func WithFetcherOptions(opts ...scrape.FetcherOption) Option {
	return func(o *options) { o.fetcherOpts = append(o.fetcherOpts, opts...) }
}

// New returns a registry holding exactly the two agent tools, in order.
func New(opts ...Option) *tool.Registry {
	o := &options{format: scrape.FormatText}
	for _, opt := range opts {
		opt(o)
	}

	fetcherOpts := append([]scrape.FetcherOption{scrape.WithTimeout(o.fetchTimeout)}, o.fetcherOpts...)
	scraper := scrape.New(scrape.NewFetcher(fetcherOpts...), scrape.NewExtractor(o.format))

	return tool.NewRegistry(
		websearch.NewWebSearchTool(),
		scrape.NewScrapeAndFormatTool(scraper),
	)
}
