package slogobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
)

func newDebugObserver(buf *bytes.Buffer) *Observer {
	return New(WithOutput(buf), WithLevel(slog.LevelDebug), WithFormat(FormatJSON))
}

// TestObserver_StartSpan verifies the span start is logged and the span is
// reachable from the returned context.
func TestObserver_StartSpan(t *testing.T) {
	var buf bytes.Buffer
	obs := newDebugObserver(&buf)

	ctx, span := obs.StartSpan(context.Background(), "test-span", observability.String("key", "value"))
	if span == nil {
		t.Fatal("StartSpan returned nil span")
	}
	if observability.SpanFromContext(ctx) != span {
		t.Error("expected span to be stored in context")
	}

	output := buf.String()
	if !strings.Contains(output, "test-span") || !strings.Contains(output, `"key":"value"`) {
		t.Errorf("unexpected output: %s", output)
	}
}

// TestObserver_SpanEnd verifies End logs accumulated attributes once.
func TestObserver_SpanEnd(t *testing.T) {
	var buf bytes.Buffer
	obs := newDebugObserver(&buf)

	_, span := obs.StartSpan(context.Background(), "work")
	span.SetAttributes(observability.Int("items", 3))
	span.SetStatus(observability.StatusOK, "done")
	buf.Reset()

	span.End()
	span.End()

	output := buf.String()
	if strings.Count(output, "span ended") != 1 {
		t.Errorf("expected exactly one span end record, got: %s", output)
	}
	for _, want := range []string{`"items":3`, `"status":"ok"`, `"status_description":"done"`, observability.AttrDuration} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output, got: %s", want, output)
		}
	}
}

// TestObserver_RecordError verifies errors are logged at ERROR level and nil
// errors are ignored.
func TestObserver_RecordError(t *testing.T) {
	var buf bytes.Buffer
	obs := New(WithOutput(&buf), WithLevel(slog.LevelError), WithFormat(FormatJSON))

	_, span := obs.StartSpan(context.Background(), "failing")
	span.RecordError(nil)
	if buf.Len() != 0 {
		t.Fatalf("expected no output for nil error, got: %s", buf.String())
	}

	span.RecordError(errors.New("boom"))
	if !strings.Contains(buf.String(), "boom") || !strings.Contains(buf.String(), `"level":"ERROR"`) {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

// TestObserver_Counter verifies counters accumulate and are shared by name.
func TestObserver_Counter(t *testing.T) {
	obs := New(WithOutput(&bytes.Buffer{}))
	ctx := context.Background()

	obs.Counter("requests").Add(ctx, 2)
	obs.Counter("requests").Add(ctx, 3)

	if got := obs.CounterValue("requests"); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := obs.CounterValue("missing"); got != 0 {
		t.Errorf("expected 0 for unknown counter, got %d", got)
	}
}

// TestObserver_LogLevels verifies the configured level filters log calls.
func TestObserver_LogLevels(t *testing.T) {
	var buf bytes.Buffer
	obs := New(WithOutput(&buf), WithLevel(slog.LevelWarn), WithFormat(FormatJSON))
	ctx := context.Background()

	obs.Trace(ctx, "trace message")
	obs.Debug(ctx, "debug message")
	obs.Info(ctx, "info message")
	obs.Warn(ctx, "warn message", observability.String("k", "v"))
	obs.Error(ctx, "error message")

	output := buf.String()
	for _, hidden := range []string{"trace message", "debug message", "info message"} {
		if strings.Contains(output, hidden) {
			t.Errorf("did not expect %q in output", hidden)
		}
	}
	for _, shown := range []string{"warn message", "error message", `"k":"v"`} {
		if !strings.Contains(output, shown) {
			t.Errorf("expected %q in output, got: %s", shown, output)
		}
	}
}

// TestObserver_WithLogger verifies an injected logger receives all records.
func TestObserver_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	obs := New(WithLogger(logger), WithOutput(nil))

	obs.Info(context.Background(), "hello")
	if obs.Logger() != logger {
		t.Error("expected the injected logger")
	}
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

// TestObserver_WithSettings verifies configuration strings map onto level
// and format, and bad values keep the defaults.
func TestObserver_WithSettings(t *testing.T) {
	var buf bytes.Buffer
	obs := New(WithOutput(&buf), WithSettings("warn", "json"))
	obs.Info(context.Background(), "hidden")
	obs.Warn(context.Background(), "shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("unexpected output: %s", out)
	}

	buf.Reset()
	obs = New(WithOutput(&buf), WithSettings("loud", "fancy"))
	obs.Info(context.Background(), "default level")
	if !strings.Contains(buf.String(), "default level") || strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected compact INFO output, got: %s", buf.String())
	}
}

func TestObserver_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	obs := New(WithOutput(&buf), WithFormat(FormatJSON), WithComponent("mcp"))
	obs.Info(context.Background(), "tool served")

	if !strings.Contains(buf.String(), `"component":"mcp"`) {
		t.Errorf("expected component attribute, got: %s", buf.String())
	}
}
