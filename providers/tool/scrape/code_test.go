package scrape

import (
	"fmt"
	"slices"
	"strings"
	"testing"
)

func extractCode(t *testing.T, markup string) []string {
	t.Helper()
	got, err := ExtractCode(Document{URL: "http://x", Body: markup})
	if err != nil {
		t.Fatalf("ExtractCode() error = %v", err)
	}
	if got == nil {
		t.Fatal("ExtractCode() returned nil, want empty slice")
	}
	return got
}

// TestExtractCode_NestedContainersCollapse verifies a block matched by
// "pre code", "pre" and "code" is reported once.
func TestExtractCode_NestedContainersCollapse(t *testing.T) {
	markup := `<html><body><p>Intro text.</p>` +
		`<pre><code>function add(a, b) {
  return a + b;
}</code></pre></body></html>`

	got := extractCode(t, markup)
	want := []string{"function add(a, b) {\n  return a + b;\n}"}
	if !slices.Equal(got, want) {
		t.Errorf("ExtractCode() = %q, want %q", got, want)
	}
}

func TestExtractCode_SkipsProse(t *testing.T) {
	markup := `<div class="example">This example shows nothing technical.
It is just two lines of prose.</div><code>x</code>`

	if got := extractCode(t, markup); len(got) != 0 {
		t.Errorf("expected no snippets, got %q", got)
	}
}

// TestExtractCode_FencedBlocks verifies ``` blocks in the raw markup are
// unwrapped, language tag included.
func TestExtractCode_FencedBlocks(t *testing.T) {
	markup := "<p>```css\nbody { margin: 0; }\nh1 { color: red; }\n```</p>"

	got := extractCode(t, markup)
	want := "body { margin: 0; }\nh1 { color: red; }"
	if !slices.Contains(got, want) {
		t.Errorf("ExtractCode() = %q, want it to contain %q", got, want)
	}
	for _, s := range got {
		if strings.Contains(s, "```") {
			t.Errorf("fence leaked into %q", s)
		}
	}
}

// TestExtractCode_Order verifies snippets keep selector order, then document
// order within a selector.
func TestExtractCode_Order(t *testing.T) {
	markup := `<div class="highlight">let a = 1;
let b = 2;</div>` +
		`<pre>const first = 1;
const second = 2;</pre>` +
		`<pre>var third = 3;
var fourth = 4;</pre>`

	got := extractCode(t, markup)
	want := []string{
		"const first = 1;\nconst second = 2;",
		"var third = 3;\nvar fourth = 4;",
		"let a = 1;\nlet b = 2;",
	}
	if !slices.Equal(got, want) {
		t.Errorf("ExtractCode() = %q, want %q", got, want)
	}
}

func TestExtractCode_Cap(t *testing.T) {
	var b strings.Builder
	for i := range MaxCodeSnippets + 5 {
		fmt.Fprintf(&b, "<pre>const v%d = %d;\nreturn v%d;</pre>", i, i, i)
	}

	got := extractCode(t, b.String())
	if len(got) != MaxCodeSnippets {
		t.Fatalf("expected %d snippets, got %d", MaxCodeSnippets, len(got))
	}
	if got[0] != "const v0 = 0;\nreturn v0;" {
		t.Errorf("first snippet = %q", got[0])
	}
}

func TestLooksLikeCode(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "empty", text: "", want: false},
		{name: "single code line", text: "x = foo();", want: false},
		{name: "two code lines", text: "a();\nb();", want: true},
		{name: "crlf lines", text: "a();\r\nb();", want: true},
		{name: "markup", text: "<div>\n<span>hi</span>", want: true},
		{name: "keywords", text: "const x = 1\nreturn x", want: true},
		{name: "prose", text: "Hello there\nGeneral Kenobi", want: false},
		{name: "sparse code in long text", text: "a();\nb();\n" + strings.Repeat("plain words\n", 8) + "end", want: false},
		{name: "quarter threshold met", text: "a();\nb();\nc();\n" + strings.Repeat("plain words\n", 8) + "end", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeCode(tt.text); got != tt.want {
				t.Errorf("looksLikeCode(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
