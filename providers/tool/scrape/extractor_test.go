package scrape

import (
	"errors"
	"strings"
	"testing"
)

func extractBody(t *testing.T, e *Extractor, html, url string) string {
	t.Helper()
	got, err := e.Extract(Document{URL: url, Body: html}, url)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	prefix := Provenance(url)
	if !strings.HasPrefix(got, prefix) {
		t.Fatalf("missing provenance header in %q", got)
	}
	return strings.TrimPrefix(got, prefix)
}

// TestExtractor_RemovesScriptAndStyle verifies script and style text never
// reaches the output.
func TestExtractor_RemovesScriptAndStyle(t *testing.T) {
	html := `<html><head><style>body { color: red }</style></head>` +
		`<script>secret()</script><p>Hello world</p><script type="module">import x from "y"</script></html>`

	body := extractBody(t, NewExtractor(FormatText), html, "http://x")
	if body != "Hello world" {
		t.Errorf("body = %q, want %q", body, "Hello world")
	}
	for _, leaked := range []string{"secret()", "color: red", "import x"} {
		if strings.Contains(body, leaked) {
			t.Errorf("output leaked %q", leaked)
		}
	}
}

// TestExtractor_DropsBlankLines verifies whitespace-only lines disappear and
// surviving lines are trimmed.
func TestExtractor_DropsBlankLines(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{name: "plain text", html: "  \n\nHello\n   \n", want: "Hello"},
		{name: "indented block", html: "<div>\n   first  \n\n\t second\n</div>", want: "first\nsecond"},
		{name: "crlf", html: "<pre>a\r\n\r\nb\r\n</pre>", want: "a\nb"},
		{name: "inline elements stay joined", html: "<p>Hello <b>bold</b> world</p>", want: "Hello bold world"},
		{name: "title included", html: "<title>Page</title><p>Body</p>", want: "PageBody"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractBody(t, NewExtractor(FormatText), tt.html, "http://x"); got != tt.want {
				t.Errorf("body = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestExtractor_NoscriptContentIsText verifies markup inside <noscript> is
// parsed as elements, so only its text survives.
func TestExtractor_NoscriptContentIsText(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "body noscript",
			html: `<html><body><noscript><img src="track.gif"><p>Enable JS</p></noscript><p>Hello</p></body></html>`,
			want: "Enable JSHello",
		},
		{
			name: "tag manager iframe",
			html: `<body><noscript><iframe src="https://www.googletagmanager.com/ns.html?id=GTM-X" height="0" width="0"></iframe></noscript><h1>Docs</h1></body>`,
			want: "Docs",
		},
		{
			name: "head noscript",
			html: `<html><head><noscript><link rel="stylesheet" href="x.css"></noscript></head><body><p>Body</p></body></html>`,
			want: "Body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := extractBody(t, NewExtractor(FormatText), tt.html, "u")
			if body != tt.want {
				t.Errorf("body = %q, want %q", body, tt.want)
			}
			if strings.Contains(body, "<") {
				t.Errorf("markup leaked into %q", body)
			}
		})
	}
}

func TestExtractor_NoscriptMarkdown(t *testing.T) {
	body := extractBody(t, NewExtractor(FormatMarkdown), `<noscript><p>Enable JS</p></noscript><p>Hello</p>`, "u")
	if strings.Contains(body, "&lt;p&gt;") || strings.Contains(body, "<p>") {
		t.Errorf("noscript markup leaked into %q", body)
	}
	if !strings.Contains(body, "Hello") {
		t.Errorf("unexpected markdown %q", body)
	}
}

// TestExtractor_Truncates verifies the body is cut to exactly MaxChars
// characters.
func TestExtractor_Truncates(t *testing.T) {
	text := strings.Repeat("abcdefghij", 600) // 6000 characters, one line
	body := extractBody(t, NewExtractor(FormatText), "<p>"+text+"</p>", "http://x")

	if len([]rune(body)) != MaxChars {
		t.Fatalf("expected %d characters, got %d", MaxChars, len([]rune(body)))
	}
	if body != text[:MaxChars] {
		t.Error("expected the first MaxChars characters of the cleaned text")
	}
}

// TestExtractor_TruncatesByCharacter verifies multi-byte text is never cut
// inside a character.
func TestExtractor_TruncatesByCharacter(t *testing.T) {
	text := strings.Repeat("é", MaxChars+10)
	body := extractBody(t, NewExtractor(FormatText), "<p>"+text+"</p>", "http://x")

	if body != strings.Repeat("é", MaxChars) {
		t.Errorf("expected %d runes, got %d (%d bytes)", MaxChars, len([]rune(body)), len(body))
	}
}

// TestExtractor_ProvenanceAlwaysPresent covers empty and malformed input.
func TestExtractor_ProvenanceAlwaysPresent(t *testing.T) {
	url := "https://example.com/a?b=c&d=<e>"
	for _, html := range []string{"", "   ", "<<<>>>", "<div><p>unclosed", "\x00\xff binary"} {
		got, err := NewExtractor(FormatText).Extract(Document{Body: html}, url)
		if err != nil {
			t.Fatalf("Extract(%q) error = %v", html, err)
		}
		if !strings.HasPrefix(got, "<!-- source: "+url+" -->\n\n") {
			t.Errorf("Extract(%q) = %q", html, got)
		}
	}

	got, _ := NewExtractor(FormatText).Extract(Document{}, "u")
	if got != "<!-- source: u -->\n\n" {
		t.Errorf("empty document gave %q", got)
	}
}

// TestExtractor_Deterministic verifies repeated extraction yields identical
// output.
func TestExtractor_Deterministic(t *testing.T) {
	doc := Document{Body: "<ul><li>one</li>\n<li>two</li></ul><script>x()</script>"}
	e := NewExtractor(FormatText)
	first, _ := e.Extract(doc, "http://x")
	second, _ := e.Extract(doc, "http://x")
	if first != second {
		t.Errorf("outputs differ: %q vs %q", first, second)
	}
}

// TestExtractor_Markdown verifies the markdown rendering keeps structure and
// still drops scripts.
func TestExtractor_Markdown(t *testing.T) {
	html := `<html><body><h1>Title</h1><script>secret()</script>` +
		`<p>Intro <a href="https://example.com">link</a></p><ul><li>one</li><li>two</li></ul></body></html>`

	body := extractBody(t, NewExtractor(FormatMarkdown), html, "http://x")
	for _, want := range []string{"# Title", "[link](https://example.com)", "- one"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in markdown, got:\n%s", want, body)
		}
	}
	if strings.Contains(body, "secret()") {
		t.Error("markdown leaked script content")
	}
	if strings.Contains(body, "\n\n\n") {
		t.Error("expected blank lines collapsed to one")
	}
}

func TestNormalizeMarkdown(t *testing.T) {
	got := normalizeMarkdown("\n\n# A   \n\n\n\n  - b\t\n\nc\n\n")
	want := "# A\n\n  - b\n\nc"
	if got != want {
		t.Errorf("normalizeMarkdown() = %q, want %q", got, want)
	}
}

func TestParseFormat(t *testing.T) {
	for input, want := range map[string]Format{"": FormatText, "TEXT": FormatText, " markdown ": FormatMarkdown} {
		got, err := ParseFormat(input)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseFormat("html"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestParseError_Unwrap(t *testing.T) {
	cause := errors.New("bad tree")
	var err error = &ParseError{URL: "u", Err: cause}

	var pe *ParseError
	if !errors.As(err, &pe) || !errors.Is(err, cause) {
		t.Errorf("expected ParseError wrapping cause, got %v", err)
	}
}
