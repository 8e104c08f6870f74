package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
)

// DoPostSync marshals body to JSON, POSTs it to url with a bearer token and
// decodes a 2xx response into OutputStruct.
//
// Non-2xx responses are returned as an error carrying the status and the
// (truncated) body. The response is returned whenever one was received so
// callers can inspect headers.
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any) (*http.Response, *OutputStruct, error) {
	span := observability.SpanFromContext(ctx)

	if client == nil {
		client = http.DefaultClient
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	if span != nil {
		span.AddEvent("http.request.sent",
			observability.String(observability.AttrHTTPMethod, http.MethodPost),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, len(payload)),
		)
	}

	start := time.Now()
	res, err := client.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		if span != nil {
			span.AddEvent("http.request.error", observability.Error(err), observability.Duration(observability.AttrDuration, elapsed))
		}
		return nil, nil, fmt.Errorf("send request: %w", err)
	}
	defer CloseWithLog(res.Body)

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return res, nil, fmt.Errorf("read response body: %w", err)
	}

	if span != nil {
		span.AddEvent("http.response.received",
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(raw)),
			observability.Duration(observability.AttrDuration, elapsed),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, fmt.Errorf("non-2xx status %d: %s", res.StatusCode, TruncateString(string(raw), DefaultMaxStringLength))
	}

	var out OutputStruct
	if err := json.Unmarshal(raw, &out); err != nil {
		return res, nil, fmt.Errorf("decode response body (status %d): %w; preview: %s", res.StatusCode, err, TruncateString(string(raw), DefaultMaxStringLength))
	}

	return res, &out, nil
}

// CloseWithLog closes c and logs a warning if that fails. Meant for defer.
func CloseWithLog(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		slog.Warn("failed to close", "error", err.Error())
	}
}
