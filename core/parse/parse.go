package parse

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseStringAs converts raw model output into T.
//
// Strings are returned as-is unless the content is a {"type": ..., "value": ...}
// envelope, in which case the value is unwrapped. Booleans and numbers are
// parsed with strconv. Everything else is decoded as JSON; when decoding fails
// the content is stripped of markdown code fences, repaired with jsonrepair
// and decoded again, finally unwrapping schema-style envelopes.
//
// Example:
//
//	args, err := parse.ParseStringAs[Input](`{query: 'web template'}`)
func ParseStringAs[T any](content string) (T, error) {
	var result T
	target := reflect.ValueOf(&result).Elem()

	switch target.Kind() {
	case reflect.String:
		if strings.HasPrefix(content, "{") {
			if unwrapped, err := unwrapPrimitive(content); err == nil {
				target.SetString(unwrapped)
				return result, nil
			}
		}
		target.SetString(content)
		return result, nil

	case reflect.Bool:
		v, err := strconv.ParseBool(primitiveText(content))
		if err != nil {
			return result, fmt.Errorf("failed to parse content as bool: %w", err)
		}
		target.SetBool(v)
		return result, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(primitiveText(content), 10, 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as int: %w", err)
		}
		target.SetInt(v)
		return result, nil

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(primitiveText(content), 64)
		if err != nil {
			return result, fmt.Errorf("failed to parse content as float: %w", err)
		}
		target.SetFloat(v)
		return result, nil
	}

	if err := json.Unmarshal([]byte(content), &result); err == nil {
		return result, nil
	}

	repaired, err := jsonrepair.JSONRepair(stripCodeFence(content))
	if err != nil {
		return result, fmt.Errorf("failed to repair JSON for %T: %w", result, err)
	}
	if err := json.Unmarshal([]byte(repaired), &result); err == nil {
		return result, nil
	}

	unwrapped, err := unwrapSchemaValues(repaired)
	if err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w", result, err)
	}
	if err := json.Unmarshal([]byte(unwrapped), &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal repaired JSON as %T: %w (repaired: %s)", result, err, repaired)
	}
	return result, nil
}

// primitiveText trims whitespace and unwraps a schema envelope if present.
func primitiveText(content string) string {
	content = strings.TrimSpace(content)
	if unwrapped, err := unwrapPrimitive(content); err == nil {
		return unwrapped
	}
	return content
}

// stripCodeFence removes a surrounding ```json ... ``` block.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return content
	}
	trimmed = strings.TrimPrefix(trimmed, "```")
	if nl := strings.IndexByte(trimmed, '\n'); nl >= 0 {
		trimmed = trimmed[nl+1:]
	}
	return strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
}

// unwrapPrimitive extracts the value of a {"type": ..., "value": ...} object,
// which models sometimes emit when they confuse a schema with data.
func unwrapPrimitive(content string) (string, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", err
	}
	value, ok := envelopeValue(data)
	if !ok {
		return "", fmt.Errorf("not a schema-wrapped value")
	}
	if s, isString := value.(string); isString {
		return s, nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unwrapSchemaValues(content string) (string, error) {
	var data any
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return "", err
	}
	b, err := json.Marshal(recursiveUnwrap(data))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func recursiveUnwrap(data any) any {
	switch v := data.(type) {
	case map[string]any:
		if value, ok := envelopeValue(v); ok {
			return recursiveUnwrap(value)
		}
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = recursiveUnwrap(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = recursiveUnwrap(val)
		}
		return out
	default:
		return data
	}
}

func envelopeValue(m map[string]any) (any, bool) {
	if len(m) != 2 {
		return nil, false
	}
	if _, hasType := m["type"]; !hasType {
		return nil, false
	}
	value, hasValue := m["value"]
	return value, hasValue
}
