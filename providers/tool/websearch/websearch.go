package websearch

import (
	"context"
	"strings"

	"github.com/DJSquale/gpt-langchain-agent/providers/tool"
)

const (
	// Name is the tool name advertised to the model.
	Name = "WebSearchTool"
	// Description is the tool description advertised to the model.
	Description = "Performs a web search based on a query."

	// SearchURLPrefix is prepended to every query.
	SearchURLPrefix = "https://www.google.com/search?q="
)

// Input is the argument object the model supplies.
type Input struct {
	Query string `json:"query" jsonschema:"description=Free-text search query,required"`
}

// BuildSearchURL replaces every space in query with '+' and prepends
// SearchURLPrefix. No other character is escaped, so '&', '#' and non-ASCII
// text reach the URL unchanged.
func BuildSearchURL(query string) string {
	return SearchURLPrefix + strings.ReplaceAll(query, " ", "+")
}

// NewWebSearchTool returns the tool that answers with the search URL for
// a query. It performs no network access.
func NewWebSearchTool() *tool.Tool[Input, string] {
	return tool.NewTool(Name, Search, tool.WithDescription(Description))
}

// Search is the tool function behind NewWebSearchTool.
func Search(_ context.Context, in Input) (string, error) {
	return BuildSearchURL(in.Query), nil
}
