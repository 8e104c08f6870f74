package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxCodeSnippets caps what ExtractCode returns for one page.
const MaxCodeSnippets = 20

// codeSelectors are visited in order; the first occurrence of a snippet
// fixes its position in the result.
var codeSelectors = []string{
	"pre code",
	"pre",
	"code",
	".code",
	".codesample",
	".highlight",
	".hljs",
	".prettyprint",
	".language-js",
	".language-html",
	".language-css",
	"[class*='code']",
	"[class*='snippet']",
	"[class*='example']",
	".w3-code",
	".w3-example",
}

var (
	fencedBlock = regexp.MustCompile("(?s)```.*?```")
	fenceOpen   = regexp.MustCompile("^```[a-zA-Z0-9-]*\\s*")
	fenceClose  = regexp.MustCompile("```$")
	lineSplit   = regexp.MustCompile(`\r?\n`)
	codeyLine   = regexp.MustCompile(`(?i)[{;}<>\[\]()]|function\s|\b(const|let|var|class|return)\b|</?[a-z][^>]*>`)
)

// ExtractCode collects code-looking blocks from a page: the text of common
// code containers plus ``` fenced blocks found anywhere in the raw markup.
// Duplicates are dropped and at most MaxCodeSnippets are returned. The
// result is never nil.
func ExtractCode(page Document) ([]string, error) {
	doc, err := parseDocument(page.Body)
	if err != nil {
		return nil, &ParseError{URL: page.URL, Err: err}
	}

	seen := make(map[string]struct{})
	snippets := make([]string, 0)
	add := func(text string) {
		text = strings.TrimSpace(text)
		if !looksLikeCode(text) {
			return
		}
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}
		snippets = append(snippets, text)
	}

	for _, sel := range codeSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			add(s.Text())
		})
	}

	for _, block := range fencedBlock.FindAllString(page.Body, -1) {
		block = fenceOpen.ReplaceAllString(block, "")
		add(fenceClose.ReplaceAllString(block, ""))
	}

	if len(snippets) > MaxCodeSnippets {
		snippets = snippets[:MaxCodeSnippets]
	}
	return snippets, nil
}

// looksLikeCode reports whether at least a quarter of the lines, and never
// fewer than two, carry punctuation or keywords typical of source code.
func looksLikeCode(text string) bool {
	if text == "" {
		return false
	}
	lines := lineSplit.Split(text, -1)
	codey := 0
	for _, line := range lines {
		if codeyLine.MatchString(line) {
			codey++
		}
	}
	return codey >= max(2, (len(lines)+3)/4)
}
