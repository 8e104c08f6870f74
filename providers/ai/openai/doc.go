// Package openai implements ai.Provider for OpenAI-compatible
// /chat/completions endpoints (OpenAI, Azure deployments, OpenRouter,
// Ollama and similar).
//
// Build a provider with [New] and functional options. The sampling
// temperature defaults to 0 and is always sent. Tool calls that some models
// emit inside the message content are recovered leniently.
package openai
