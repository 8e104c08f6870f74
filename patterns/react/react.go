package react

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DJSquale/gpt-langchain-agent/internal/utils"
	"github.com/DJSquale/gpt-langchain-agent/providers/ai"
	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
	"github.com/DJSquale/gpt-langchain-agent/providers/tool"
)

const DefaultMaxIterations = 10

// DefaultSystemPrompt asks the model to work through the tools before
// answering.
const DefaultSystemPrompt = "You are a helpful assistant that finds web templates and code snippets. " +
	"Use WebSearchTool to locate candidate pages and ScrapeAndFormatTool to read them. " +
	"When you have enough information, answer with the template or snippet and where it came from."

// ErrMaxIterations is returned when the model keeps requesting tools past the
// configured limit.
var ErrMaxIterations = errors.New("react: max iterations reached")

// Tool error codes reported back to the model.
const (
	errorTypeToolNotFound  = "tool_not_found"
	errorTypeToolExecution = "tool_execution_failed"
)

// Result is the outcome of one Execute call.
type Result struct {
	Content    string
	Iterations int
	ToolCalls  int
	Usage      ai.Usage
	Messages   []ai.Message
}

// Agent drives the tool loop. It holds no per-call state.
type Agent struct {
	provider      ai.Provider
	registry      *tool.Registry
	observer      observability.Provider
	systemPrompt  string
	model         string
	maxIterations int
	stopOnError   bool
}

type Option func(*Agent)

// WithMaxIterations bounds the number of tool rounds. Values below 1 are
// ignored.
func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.maxIterations = n
		}
	}
}

// WithStopOnError makes a failing tool abort Execute instead of being
// reported to the model.
func WithStopOnError(stop bool) Option {
	return func(a *Agent) { a.stopOnError = stop }
}

func WithSystemPrompt(prompt string) Option {
	return func(a *Agent) { a.systemPrompt = prompt }
}

// WithModel overrides the provider's default model.
func WithModel(model string) Option {
	return func(a *Agent) { a.model = model }
}

func WithObserver(observer observability.Provider) Option {
	return func(a *Agent) { a.observer = observer }
}

// New creates an agent. A nil registry behaves as an empty one.
func New(provider ai.Provider, registry *tool.Registry, opts ...Option) *Agent {
	if registry == nil {
		registry = tool.NewRegistry()
	}
	a := &Agent{
		provider:      provider,
		registry:      registry,
		systemPrompt:  DefaultSystemPrompt,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Execute runs the loop for prompt and returns the model's final answer.
func (a *Agent) Execute(ctx context.Context, prompt string) (*Result, error) {
	start := time.Now()

	var span observability.Span
	if a.observer != nil {
		ctx, span = a.observer.StartSpan(ctx, observability.SpanAgentExecute,
			observability.String(observability.AttrAgentPrompt, utils.TruncateString(prompt, utils.DefaultMaxStringLength)),
			observability.Int(observability.AttrAgentToolsCount, a.registry.Len()),
		)
		defer span.End()
		ctx = observability.ContextWithObserver(ctx, a.observer)
	}

	result, err := a.run(ctx, prompt)

	if a.observer != nil {
		a.record(ctx, span, result, err, time.Since(start))
	}
	return result, err
}

func (a *Agent) run(ctx context.Context, prompt string) (*Result, error) {
	result := &Result{
		Messages: []ai.Message{{Role: ai.RoleUser, Content: prompt}},
	}
	tools := a.registry.Descriptions()

	for {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if a.observer != nil {
			a.observer.Debug(ctx, "agent iteration",
				observability.Int(observability.AttrAgentIteration, result.Iterations),
			)
		}

		response, err := a.provider.SendMessage(ctx, ai.ChatRequest{
			Model:        a.model,
			SystemPrompt: a.systemPrompt,
			Messages:     result.Messages,
			Tools:        tools,
		})
		if err != nil {
			return result, fmt.Errorf("send message: %w", err)
		}
		result.Usage.Add(response.Usage)

		result.Messages = append(result.Messages, ai.Message{
			Role:      ai.RoleAssistant,
			Content:   response.Content,
			ToolCalls: response.ToolCalls,
		})

		if len(response.ToolCalls) == 0 || a.provider.IsStopMessage(response) {
			result.Content = response.Content
			return result, nil
		}

		if result.Iterations >= a.maxIterations {
			return result, fmt.Errorf("%w (%d)", ErrMaxIterations, a.maxIterations)
		}
		result.Iterations++

		for _, call := range response.ToolCalls {
			output, err := a.callTool(ctx, call)
			if err != nil {
				return result, err
			}
			result.ToolCalls++
			result.Messages = append(result.Messages, ai.Message{
				Role:       ai.RoleTool,
				Content:    output,
				ToolCallID: call.ID,
				Name:       call.Function.Name,
			})
		}
	}
}

// callTool dispatches one call. Unless stopOnError is set, failures are
// returned as a ToolResult envelope for the model instead of an error.
func (a *Agent) callTool(ctx context.Context, call ai.ToolCall) (string, error) {
	output, err := a.registry.Call(ctx, call.Function.Name, call.Function.Arguments)
	if err == nil {
		return output, nil
	}

	if a.observer != nil {
		a.observer.Warn(ctx, "tool call failed",
			observability.String(observability.AttrToolName, call.Function.Name),
			observability.Error(err),
		)
	}
	if a.stopOnError {
		return "", fmt.Errorf("tool %s: %w", call.Function.Name, err)
	}

	errorType := errorTypeToolExecution
	if errors.Is(err, tool.ErrToolNotFound) {
		errorType = errorTypeToolNotFound
	}
	encoded, encErr := ai.NewToolResultError(errorType, err.Error()).ToJSON()
	if encErr != nil {
		return "", fmt.Errorf("encode tool error: %w", encErr)
	}
	return encoded, nil
}

func (a *Agent) record(ctx context.Context, span observability.Span, result *Result, err error, elapsed time.Duration) {
	status := "success"
	if err != nil {
		status = "error"
	}

	a.observer.Counter(observability.MetricAgentRequestCount).Add(ctx, 1,
		observability.String(observability.AttrStatus, status),
	)
	a.observer.Histogram(observability.MetricAgentRequestDuration).Record(ctx, elapsed.Seconds(),
		observability.String(observability.AttrStatus, status),
	)

	if result != nil {
		a.observer.Counter(observability.MetricAgentToolCallCount).Add(ctx, int64(result.ToolCalls))
		a.observer.Counter(observability.MetricAgentTokensTotal).Add(ctx, int64(result.Usage.TotalTokens))
		span.SetAttributes(
			observability.Int(observability.AttrAgentIteration, result.Iterations),
			observability.Int(observability.AttrAgentToolCalls, result.ToolCalls),
			observability.Int(observability.AttrLLMTokensTotal, result.Usage.TotalTokens),
		)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(observability.StatusError, "agent execution failed")
		a.observer.Error(ctx, "agent execution failed",
			observability.Error(err),
			observability.Duration(observability.AttrDuration, elapsed),
		)
		return
	}

	span.SetStatus(observability.StatusOK, "success")
	a.observer.Info(ctx, "agent execution completed",
		observability.Int(observability.AttrAgentIteration, result.Iterations),
		observability.Int(observability.AttrAgentToolCalls, result.ToolCalls),
		observability.Duration(observability.AttrDuration, elapsed),
	)
}
