package scrape

import (
	"fmt"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// MaxChars bounds the cleaned body, in characters.
const MaxChars = 5000

// Format selects how the cleaned document is rendered.
type Format string

const (
	// FormatText concatenates the visible text nodes.
	FormatText Format = "text"
	// FormatMarkdown renders the cleaned tree as Markdown.
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts "text" and "markdown", ignoring case. The empty string
// is FormatText.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown scrape format %q (want text or markdown)", s)
	}
}

// ParseError reports that a body could not be turned into a document tree
// or rendered.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Extractor cleans fetched documents. It holds no state besides its format
// and is safe for concurrent use.
type Extractor struct {
	format Format
}

// NewExtractor returns an Extractor for format. An empty format means
// FormatText.
func NewExtractor(format Format) *Extractor {
	if format == "" {
		format = FormatText
	}
	return &Extractor{format: format}
}

// Format returns the rendering used by e.
func (e *Extractor) Format() Format {
	return e.format
}

// Extract removes script and style elements from doc, normalises the
// remaining text line by line, cuts it to MaxChars characters and prefixes
// a provenance comment naming sourceURL.
func (e *Extractor) Extract(doc Document, sourceURL string) (string, error) {
	content, _, err := e.extract(doc, sourceURL)
	return content, err
}

// extract is Extract that also reports the cleaned body length in
// characters before truncation.
func (e *Extractor) extract(doc Document, sourceURL string) (string, int, error) {
	body, err := e.clean(doc.Body)
	if err != nil {
		return "", 0, &ParseError{URL: sourceURL, Err: err}
	}
	return Provenance(sourceURL) + Truncate(body, MaxChars), utf8.RuneCountInString(body), nil
}

// Provenance is the header every extraction starts with.
func Provenance(sourceURL string) string {
	return "<!-- source: " + sourceURL + " -->\n\n"
}

// parseDocument builds the tree with scripting disabled, so <noscript>
// content is parsed as elements instead of one raw text node.
func parseDocument(markup string) (*goquery.Document, error) {
	root, err := html.ParseWithOptions(strings.NewReader(markup), html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromNode(root), nil
}

func (e *Extractor) clean(markup string) (string, error) {
	doc, err := parseDocument(markup)
	if err != nil {
		return "", err
	}

	// Must happen before any text is read.
	doc.Find("script, style").Remove()

	if e.format == FormatMarkdown {
		rendered, err := doc.Html()
		if err != nil {
			return "", err
		}
		md, err := htmltomarkdown.ConvertString(rendered)
		if err != nil {
			return "", err
		}
		return normalizeMarkdown(md), nil
	}

	return normalizeText(doc.Text()), nil
}

// normalizeText trims every line, drops the empty ones and joins the rest
// with single newlines.
func normalizeText(text string) string {
	lines := strings.FieldsFunc(text, isLineBreak)
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// normalizeMarkdown trims trailing whitespace and collapses runs of blank
// lines to one, keeping indentation and paragraph breaks.
func normalizeMarkdown(md string) string {
	var b strings.Builder
	blank := false
	for _, line := range strings.Split(strings.ReplaceAll(md, "\r\n", "\n"), "\n") {
		line = strings.TrimRight(line, " \t\r\f\v")
		if line == "" {
			blank = b.Len() > 0
			continue
		}
		if blank {
			b.WriteString("\n")
			blank = false
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(line)
	}
	return b.String()
}

// isLineBreak matches the separators a line-oriented reader recognises,
// including vertical tab, form feed and the Unicode line/paragraph
// separators.
func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', 0x1c, 0x1d, 0x1e, 0x85, 0x2028, 0x2029:
		return true
	}
	return false
}

// Truncate keeps the first limit characters of s.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
