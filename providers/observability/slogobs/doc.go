// Package slogobs implements observability.Provider on top of log/slog.
//
// Spans, span events and metric updates are emitted as debug-level log
// records; regular log calls keep their level. Output goes through a [Handler]
// that renders compact single-line, pretty multi-line or JSON records.
// The main entry point is [New].
package slogobs
