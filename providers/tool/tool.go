package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/DJSquale/gpt-langchain-agent/core/parse"
	"github.com/DJSquale/gpt-langchain-agent/internal/jsonschema"
	"github.com/DJSquale/gpt-langchain-agent/providers/ai"
	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
)

// Tool binds a name and description to a typed function. The parameter
// schema is derived from I by reflection.
type Tool[I, O any] struct {
	Name        string
	Description string
	Parameters  *jsonschema.Schema
	Function    func(ctx context.Context, input I) (O, error)
}

// GenericTool is a Tool with its type parameters erased, so tools of
// different shapes can live in one Registry.
type GenericTool interface {
	// ToolInfo describes the tool to a model.
	ToolInfo() ai.ToolDescription

	// Call parses inputJson into the tool input, runs the tool and encodes the
	// output. String outputs are returned verbatim, anything else as JSON.
	Call(ctx context.Context, inputJson string) (string, error)
}

type funcToolOptions struct {
	Description string
}

// WithDescription sets the text the model sees when choosing a tool.
func WithDescription(description string) func(tool *funcToolOptions) {
	return func(s *funcToolOptions) {
		s.Description = description
	}
}

// NewTool wraps function as a Tool.
//
// Example:
//
//	search := tool.NewTool("WebSearchTool", searchFunc,
//	    tool.WithDescription("Performs a web search based on a query."),
//	)
func NewTool[I, O any](name string, function func(ctx context.Context, input I) (O, error), options ...func(tool *funcToolOptions)) *Tool[I, O] {
	opts := &funcToolOptions{}
	for _, option := range options {
		option(opts)
	}

	return &Tool[I, O]{
		Name:        name,
		Description: opts.Description,
		Parameters:  jsonschema.GenerateJSONSchema[I](),
		Function:    function,
	}
}

func (t *Tool[I, O]) ToolInfo() ai.ToolDescription {
	return ai.ToolDescription{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Call runs the tool. Errors returned by the function are passed through
// unwrapped so callers can match them with errors.As.
func (t *Tool[I, O]) Call(ctx context.Context, inputJson string) (string, error) {
	span := observability.SpanFromContext(ctx)
	if span != nil {
		span.AddEvent(observability.EventToolExecutionStart,
			observability.String(observability.AttrToolName, t.Name),
			observability.String(observability.AttrToolInput, inputJson),
		)
	}

	start := time.Now()
	output, err := t.run(ctx, inputJson)
	duration := time.Since(start)

	if span != nil {
		attrs := []observability.Attribute{
			observability.String(observability.AttrToolName, t.Name),
			observability.Duration(observability.AttrToolDuration, duration),
		}
		if err != nil {
			span.RecordError(err)
			attrs = append(attrs, observability.String(observability.AttrToolError, err.Error()))
		} else {
			attrs = append(attrs, observability.Int(observability.AttrToolOutput+".size", len(output)))
		}
		span.AddEvent(observability.EventToolExecutionEnd, attrs...)
	}

	return output, err
}

func (t *Tool[I, O]) run(ctx context.Context, inputJson string) (string, error) {
	input, err := parse.ParseStringAs[I](inputJson)
	if err != nil {
		return "", fmt.Errorf("parse %s input: %w", t.Name, err)
	}

	output, err := t.Function(ctx, input)
	if err != nil {
		return "", err
	}

	if s, ok := any(output).(string); ok {
		return s, nil
	}

	encoded, err := json.Marshal(output)
	if err != nil {
		return "", fmt.Errorf("encode %s output: %w", t.Name, err)
	}
	return string(encoded), nil
}
