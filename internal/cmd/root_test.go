package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DJSquale/gpt-langchain-agent/internal/config"
)

func run(t *testing.T, cfg config.Config, cfgErr error, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(BuildInfo{Version: "test"}, cfg, cfgErr)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func quietConfig() config.Config {
	cfg := config.Default()
	cfg.LogLevel = "error"
	return cfg
}

func TestSearchCmd(t *testing.T) {
	out, err := run(t, quietConfig(), nil, "search", "hero", "section", "a&b")
	if err != nil {
		t.Fatalf("search error = %v", err)
	}
	if strings.TrimSpace(out) != "https://www.google.com/search?q=hero+section+a&b" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestScrapeCmd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><script>x()</script><h1>Footer</h1></html>"))
	}))
	defer server.Close()

	out, err := run(t, quietConfig(), nil, "scrape", server.URL)
	if err != nil {
		t.Fatalf("scrape error = %v", err)
	}
	if out != "<!-- source: "+server.URL+" -->\n\nFooter\n" {
		t.Errorf("unexpected output %q", out)
	}

	out, err = run(t, quietConfig(), nil, "scrape", "--format", "markdown", server.URL)
	if err != nil || !strings.Contains(out, "# Footer") {
		t.Errorf("markdown output = %q, err = %v", out, err)
	}
}

func TestScrapeCmd_BadFormat(t *testing.T) {
	if _, err := run(t, quietConfig(), nil, "scrape", "--format", "pdf", "http://x"); err == nil {
		t.Error("expected format error")
	}
}

// TestAskCmd_RequiresAPIKey verifies model commands fail before any request
// without a key.
func TestAskCmd_RequiresAPIKey(t *testing.T) {
	_, err := run(t, quietConfig(), nil, "ask", "navbar")
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
	_, err = run(t, quietConfig(), nil, "serve")
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey from serve, got %v", err)
	}
}

// TestFetchCodeCmd runs search and harvest against one local server that
// plays both SerpAPI and the result page.
func TestFetchCodeCmd(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search.json":
			_, _ = fmt.Fprintf(w, `{"search_parameters":{"q":%q},"organic_results":[{"title":"Demo","link":%q}]}`,
				r.URL.Query().Get("q"), server.URL+"/page")
		case "/page":
			_, _ = w.Write([]byte("<pre>let x = 1;\nreturn x;</pre>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfg := quietConfig()
	cfg.SerpAPIKey = "serp-test"
	cfg.SerpAPIBaseURL = server.URL
	out, err := run(t, cfg, nil, "fetch-code", "js", "return")
	if err != nil {
		t.Fatalf("fetch-code error = %v", err)
	}

	var result struct {
		Query        string   `json:"query"`
		TopURL       string   `json:"topUrl"`
		CodeSnippets []string `json:"codeSnippets"`
		SerpMeta     struct {
			Query    string `json:"query"`
			TopTitle string `json:"topTitle"`
		} `json:"serpMeta"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if result.Query != "js return" || result.TopURL != server.URL+"/page" || result.SerpMeta.TopTitle != "Demo" {
		t.Errorf("unexpected result %+v", result)
	}
	if len(result.CodeSnippets) != 1 || result.CodeSnippets[0] != "let x = 1;\nreturn x;" {
		t.Errorf("unexpected snippets %q", result.CodeSnippets)
	}
}

func TestFetchCodeCmd_RequiresSerpAPIKey(t *testing.T) {
	_, err := run(t, quietConfig(), nil, "fetch-code", "navbar")
	if !errors.Is(err, config.ErrMissingSerpAPIKey) {
		t.Errorf("expected ErrMissingSerpAPIKey, got %v", err)
	}
}

func TestRootCmd_ConfigError(t *testing.T) {
	cause := errors.New("bad yaml")
	_, err := run(t, quietConfig(), cause, "search", "x")
	if !errors.Is(err, cause) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestRootCmd_Version(t *testing.T) {
	tests := []struct {
		build BuildInfo
		want  string
	}{
		{build: BuildInfo{Version: "1.2.0", CommitSHA: "abc1234"}, want: "gpt-langchain-agent version 1.2.0 (abc1234)\n"},
		{build: BuildInfo{Version: "1.2.0"}, want: "gpt-langchain-agent version 1.2.0\n"},
		{build: BuildInfo{}, want: "gpt-langchain-agent version dev\n"},
	}

	for _, tt := range tests {
		root := NewRootCmd(tt.build, quietConfig(), nil)
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetArgs([]string{"--version"})
		if err := root.Execute(); err != nil {
			t.Fatalf("--version error = %v", err)
		}
		if out.String() != tt.want {
			t.Errorf("version output = %q, want %q", out.String(), tt.want)
		}
	}
}
