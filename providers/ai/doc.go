// Package ai defines the provider-agnostic chat types shared by the agent and
// the LLM provider implementations.
//
// A [Provider] turns a [ChatRequest] (system prompt, conversation and tool
// descriptions) into a [ChatResponse] that either carries final content or a
// list of [ToolCall] values the caller is expected to execute and answer with
// [RoleTool] messages.
package ai
