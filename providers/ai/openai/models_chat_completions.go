package openai

import (
	"encoding/json"
	"strings"

	"github.com/DJSquale/gpt-langchain-agent/core/parse"
	"github.com/DJSquale/gpt-langchain-agent/internal/jsonschema"
	"github.com/DJSquale/gpt-langchain-agent/providers/ai"
)

/*
	CHAT COMPLETIONS API - INPUT
*/

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Tools       []chatTool    `json:"tools,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
}

type chatMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	Name       string         `json:"name,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
	ToolCalls  []chatToolCall `json:"tool_calls,omitempty"`
}

type chatTool struct {
	Type     string       `json:"type"` // "function"
	Function chatFunction `json:"function"`
}

type chatFunction struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Parameters  *jsonschema.Schema `json:"parameters,omitempty"`
}

type chatToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

/*
	CHAT COMPLETIONS API - OUTPUT
*/

type chatCompletionResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Usage   *chatUsage   `json:"usage,omitempty"`
}

type chatChoice struct {
	Index        int                 `json:"index"`
	Message      chatResponseMessage `json:"message"`
	FinishReason string              `json:"finish_reason"` // stop, length, tool_calls, content_filter
}

type chatResponseMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content,omitempty"`
	ToolCalls []chatToolCall `json:"tool_calls,omitempty"`
	Refusal   string         `json:"refusal,omitempty"`
	Reasoning string         `json:"reasoning,omitempty"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

/*
	CONVERSION FUNCTIONS
*/

func requestToChatCompletion(request ai.ChatRequest) chatCompletionRequest {
	req := chatCompletionRequest{
		Model:    request.Model,
		Messages: make([]chatMessage, 0, len(request.Messages)+1),
	}

	if request.SystemPrompt != "" {
		req.Messages = append(req.Messages, chatMessage{
			Role:    string(ai.RoleSystem),
			Content: request.SystemPrompt,
		})
	}

	for _, msg := range request.Messages {
		chatMsg := chatMessage{
			Role:       string(msg.Role),
			Content:    msg.Content,
			Name:       msg.Name,
			ToolCallID: msg.ToolCallID,
		}
		for _, tc := range msg.ToolCalls {
			call := chatToolCall{ID: tc.ID, Type: tc.Type}
			if call.Type == "" {
				call.Type = "function"
			}
			call.Function.Name = tc.Function.Name
			call.Function.Arguments = tc.Function.Arguments
			chatMsg.ToolCalls = append(chatMsg.ToolCalls, call)
		}
		req.Messages = append(req.Messages, chatMsg)
	}

	if cfg := request.GenerationConfig; cfg != nil {
		if cfg.Temperature != nil {
			temperature := float64(*cfg.Temperature)
			req.Temperature = &temperature
		}
		if cfg.MaxTokens > 0 {
			maxTokens := cfg.MaxTokens
			req.MaxTokens = &maxTokens
		}
	}

	if len(request.Tools) > 0 {
		for _, tl := range request.Tools {
			params := tl.Parameters
			if params == nil {
				params = &jsonschema.Schema{Type: "object"}
			}
			req.Tools = append(req.Tools, chatTool{
				Type: "function",
				Function: chatFunction{
					Name:        tl.Name,
					Description: tl.Description,
					Parameters:  params,
				},
			})
		}
		req.ToolChoice = "auto"
	}

	return req
}

func chatCompletionToGeneric(resp chatCompletionResponse) *ai.ChatResponse {
	out := &ai.ChatResponse{
		Id:    resp.ID,
		Model: resp.Model,
	}
	if resp.Usage != nil {
		out.Usage = &ai.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	}
	if len(resp.Choices) == 0 {
		out.FinishReason = "error"
		return out
	}

	choice := resp.Choices[0]
	out.FinishReason = choice.FinishReason
	out.Refusal = choice.Message.Refusal

	content := strings.TrimSpace(choice.Message.Content)
	reasoning := strings.TrimSpace(choice.Message.Reasoning)
	if content == "" && reasoning != "" {
		// some hosts put the whole answer in the reasoning field
		content = reasoning
		reasoning = ""
	}
	if thought := extractThinkTag(content); thought != "" {
		reasoning = strings.TrimSpace(reasoning + "\n" + thought)
		content = removeThinkTag(content)
	}
	out.Content = content
	out.Reasoning = reasoning

	for _, tc := range choice.Message.ToolCalls {
		out.ToolCalls = append(out.ToolCalls, ai.ToolCall{
			ID:   tc.ID,
			Type: tc.Type,
			Function: ai.ToolCallFunction{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}

	if len(out.ToolCalls) == 0 && content != "" {
		if parsed := parseToolCallsFromContent(content); len(parsed) > 0 {
			out.ToolCalls = parsed
			out.Content = ""
			out.FinishReason = "tool_calls"
		}
	}

	return out
}

var contentMarkers = []string{
	"<|END OF THOUGHT|>",
	"<|END_OF_THOUGHT|>",
	"[/TOOLCALL]",
}

// parseToolCallsFromContent recovers tool calls some models write into the
// message body, either wrapped in <TOOLCALL>...</TOOLCALL> or as a bare
// JSON array of {"name", "arguments"} objects.
func parseToolCallsFromContent(content string) []ai.ToolCall {
	cleaned := strings.TrimSpace(content)
	for _, marker := range contentMarkers {
		cleaned = strings.ReplaceAll(cleaned, marker, "")
	}

	if start := strings.Index(cleaned, "<TOOLCALL>"); start >= 0 {
		rest := cleaned[start+len("<TOOLCALL>"):]
		if end := strings.Index(rest, "</TOOLCALL>"); end >= 0 {
			return parseToolCallsJSON(rest[:end])
		}
		return parseToolCallsJSON(rest)
	}

	if !strings.HasPrefix(cleaned, "[") {
		return nil
	}
	return parseToolCallsJSON(cleaned)
}

func parseToolCallsJSON(raw string) []ai.ToolCall {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	type parsedCall struct {
		Name      string          `json:"name"`
		Arguments json.RawMessage `json:"arguments"`
	}
	calls, err := parse.ParseStringAs[[]parsedCall](raw)
	if err != nil {
		return nil
	}

	var toolCalls []ai.ToolCall
	for _, call := range calls {
		if call.Name == "" {
			continue
		}
		args := string(call.Arguments)
		if args == "" || args == "null" {
			args = "{}"
		}
		toolCalls = append(toolCalls, ai.ToolCall{
			Type:     "function",
			Function: ai.ToolCallFunction{Name: call.Name, Arguments: args},
		})
	}
	return toolCalls
}

// extractThinkTag returns the text inside a leading <think>...</think> block.
func extractThinkTag(content string) string {
	start := strings.Index(content, "<think>")
	end := strings.Index(content, "</think>")
	if start < 0 || end <= start {
		return ""
	}
	return strings.TrimSpace(content[start+len("<think>") : end])
}

func removeThinkTag(content string) string {
	start := strings.Index(content, "<think>")
	end := strings.Index(content, "</think>")
	if start < 0 || end <= start {
		return content
	}
	return strings.TrimSpace(content[:start] + content[end+len("</think>"):])
}
