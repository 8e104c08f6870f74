// Package mcpserver exposes a tool registry over the Model Context Protocol
// so other agents can call WebSearchTool and ScrapeAndFormatTool directly.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/DJSquale/gpt-langchain-agent/providers/tool"
)

const Name = "gpt-langchain-agent"

// New returns an MCP server advertising every tool in registry, in
// registry order.
func New(registry *tool.Registry, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(Name, version, server.WithToolCapabilities(false))

	for _, t := range registry.Tools() {
		info := t.ToolInfo()
		schema, err := json.Marshal(info.Parameters)
		if err != nil {
			return nil, fmt.Errorf("encode %s schema: %w", info.Name, err)
		}
		s.AddTool(mcp.NewToolWithRawSchema(info.Name, info.Description, schema), handler(registry, info.Name))
	}
	return s, nil
}

// ServeStdio serves registry on stdin/stdout until the stream closes.
func ServeStdio(registry *tool.Registry, version string) error {
	s, err := New(registry, version)
	if err != nil {
		return err
	}
	return server.ServeStdio(s)
}

// handler dispatches an MCP call through the registry. Tool failures are
// reported as error results, not protocol errors.
func handler(registry *tool.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode arguments: %v", err)), nil
		}

		output, err := registry.Call(ctx, name, string(args))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(output), nil
	}
}
