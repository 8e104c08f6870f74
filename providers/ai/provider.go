package ai

import "context"

// Provider is implemented by every LLM backend.
type Provider interface {
	// SendMessage sends the whole conversation and returns the model's reply.
	SendMessage(ctx context.Context, request ChatRequest) (*ChatResponse, error)

	// IsStopMessage reports whether the reply ends the exchange, i.e. the
	// model produced an answer instead of asking for tools.
	IsStopMessage(message *ChatResponse) bool
}
