package utils

import (
	"encoding/json"
	"fmt"
)

// DefaultMaxStringLength bounds previews written to logs and errors.
const DefaultMaxStringLength = 500

// ToString returns the compact JSON encoding of v, or a JSON error object if
// v cannot be marshalled. The result is always safe to log.
func ToString(v any) string {
	encoded, err := json.Marshal(v)
	if err != nil {
		return `{"error": "failed to marshal to JSON: ` + err.Error() + `"}`
	}
	return string(encoded)
}

// TruncateString shortens s to maxLen bytes and records the original length.
// A non-positive maxLen means DefaultMaxStringLength.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if len(s) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s... (truncated, total: %d chars)", s[:maxLen], len(s))
}
