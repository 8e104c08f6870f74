package toolset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DJSquale/gpt-langchain-agent/providers/tool/scrape"
)

// TestNew_ExactToolsInOrder verifies the registry advertises exactly the two
// tools with their descriptions.
func TestNew_ExactToolsInOrder(t *testing.T) {
	descs := New().Descriptions()

	want := []struct{ name, description string }{
		{"WebSearchTool", "Performs a web search based on a query."},
		{"ScrapeAndFormatTool", "Scrapes and formats content into HTML or Markdown."},
	}
	if len(descs) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(descs))
	}
	for i, w := range want {
		if descs[i].Name != w.name || descs[i].Description != w.description {
			t.Errorf("tool %d = %s %q, want %s %q", i, descs[i].Name, descs[i].Description, w.name, w.description)
		}
	}
}

// TestNew_DispatchByName verifies both tools are reachable through the
// registry.
func TestNew_DispatchByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<h1>Hero</h1><p>Section</p>"))
	}))
	defer server.Close()

	reg := New(WithScrapeFormat(scrape.FormatMarkdown), WithFetcherOptions(scrape.WithHTTPClient(server.Client())))

	got, err := reg.Call(context.Background(), "websearchtool", `{"query":"hero section"}`)
	if err != nil || got != "https://www.google.com/search?q=hero+section" {
		t.Errorf("WebSearchTool = %q, %v", got, err)
	}

	got, err = reg.Call(context.Background(), "ScrapeAndFormatTool", `{"url":"`+server.URL+`"}`)
	if err != nil {
		t.Fatalf("ScrapeAndFormatTool error = %v", err)
	}
	if !strings.HasPrefix(got, "<!-- source: "+server.URL+" -->\n\n# Hero") {
		t.Errorf("unexpected scrape output %q", got)
	}
}
