// Package parse converts raw language-model output into Go values.
//
// Models frequently return slightly malformed JSON for tool arguments:
// unquoted keys, single quotes, trailing commas, markdown fences, or
// schema-style {"type","value"} envelopes. [ParseStringAs] repairs and
// unwraps these before decoding.
package parse
