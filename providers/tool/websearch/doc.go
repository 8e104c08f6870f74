// Package websearch provides WebSearchTool, which turns a free-text query
// into a Google search URL.
//
// The mapping is intentionally minimal: spaces become '+' and nothing else is
// encoded. [BuildSearchURL] is pure; the tool built by [NewWebSearchTool]
// wraps it for the agent.
package websearch
