// Package observability defines the tracing, metrics and logging interfaces
// used across the agent, its tools and the HTTP layer, together with the
// attribute keys they share (semconv.go).
//
// A [Provider] and the active [Span] travel through [context.Context]; see
// [ContextWithObserver], [ObserverFromContext], [ContextWithSpan] and
// [SpanFromContext]. The slog-backed implementation lives in package slogobs.
package observability
