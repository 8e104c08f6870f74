// Package scrape provides ScrapeAndFormatTool: fetch a page, strip script
// and style elements, normalise the text and cap it at [MaxChars]
// characters behind a provenance comment.
//
// [Fetcher] performs one GET with no retry and returns the body for any
// status code; transport failures are reported as [*TransportError].
// [Extractor] is pure; tree construction or rendering failures are reported
// as [*ParseError]. With [FormatMarkdown] the cleaned tree is rendered
// through html-to-markdown instead of flattened to text.
//
// [ExtractCode] is a separate pass over a fetched page that collects
// code-looking blocks for the /fetchCode endpoint.
//
// Example:
//
//	s := scrape.New(scrape.NewFetcher(), scrape.NewExtractor(scrape.FormatText))
//	content, err := s.Scrape(ctx, "https://example.com")
package scrape
