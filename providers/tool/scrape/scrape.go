package scrape

import (
	"context"

	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
	"github.com/DJSquale/gpt-langchain-agent/providers/tool"
)

const (
	// Name is the tool name advertised to the model.
	Name = "ScrapeAndFormatTool"
	// Description is the tool description advertised to the model.
	Description = "Scrapes and formats content into HTML or Markdown."
)

// Input is the argument object the model supplies.
type Input struct {
	URL string `json:"url" jsonschema:"description=Address of the page to scrape,required"`
}

// Scraper chains a Fetcher and an Extractor.
type Scraper struct {
	fetcher   *Fetcher
	extractor *Extractor
}

// New builds a Scraper. Nil arguments fall back to NewFetcher() and
// NewExtractor(FormatText).
func New(fetcher *Fetcher, extractor *Extractor) *Scraper {
	if fetcher == nil {
		fetcher = NewFetcher()
	}
	if extractor == nil {
		extractor = NewExtractor(FormatText)
	}
	return &Scraper{fetcher: fetcher, extractor: extractor}
}

// Scrape fetches url and extracts it. A *TransportError or *ParseError is
// returned as-is.
func (s *Scraper) Scrape(ctx context.Context, url string) (string, error) {
	doc, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}

	content, textSize, err := s.extractor.extract(doc, url)
	if err != nil {
		return "", err
	}

	if span := observability.SpanFromContext(ctx); span != nil {
		span.AddEvent(observability.EventContentExtracted,
			observability.String(observability.AttrScrapeURL, url),
			observability.String(observability.AttrScrapeFormat, string(s.extractor.Format())),
			observability.Int(observability.AttrScrapeTextSize, textSize),
			observability.Bool(observability.AttrScrapeTruncated, textSize > MaxChars),
		)
	}

	return content, nil
}

// NewScrapeAndFormatTool exposes s as ScrapeAndFormatTool.
func NewScrapeAndFormatTool(s *Scraper) *tool.Tool[Input, string] {
	if s == nil {
		s = New(nil, nil)
	}
	return tool.NewTool(Name, func(ctx context.Context, in Input) (string, error) {
		return s.Scrape(ctx, in.URL)
	}, tool.WithDescription(Description))
}
