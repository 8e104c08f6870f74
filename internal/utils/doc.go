// Package utils holds small helpers shared by the provider and tool packages:
// a synchronous JSON POST with tracing events ([DoPostSync]), body cleanup
// ([CloseWithLog]) and string helpers for log output.
package utils
