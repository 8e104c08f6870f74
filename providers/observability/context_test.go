package observability

import (
	"context"
	"errors"
	"testing"
)

type mockSpan struct {
	name   string
	events []string
}

func (m *mockSpan) End()                                     {}
func (m *mockSpan) SetAttributes(attrs ...Attribute)         {}
func (m *mockSpan) SetStatus(code StatusCode, desc string)   {}
func (m *mockSpan) RecordError(err error)                    {}
func (m *mockSpan) AddEvent(name string, attrs ...Attribute) { m.events = append(m.events, name) }

func TestSpanFromContext_Empty(t *testing.T) {
	if span := SpanFromContext(context.Background()); span != nil {
		t.Errorf("expected nil span from empty context, got %v", span)
	}
}

func TestSpanFromContext_WithSpan(t *testing.T) {
	span := &mockSpan{name: "test-span"}
	ctx := ContextWithSpan(context.Background(), span)

	if got := SpanFromContext(ctx); got != span {
		t.Errorf("expected same span instance, got %v", got)
	}
}

func TestObserverFromContext_Empty(t *testing.T) {
	if observer := ObserverFromContext(context.Background()); observer != nil {
		t.Errorf("expected nil observer, got %v", observer)
	}
}

func TestContextKeys_DoNotCollide(t *testing.T) {
	ctx := ContextWithSpan(context.Background(), &mockSpan{name: "s"})
	if observer := ObserverFromContext(ctx); observer != nil {
		t.Errorf("span must not be readable as observer, got %v", observer)
	}
}

func TestError_Attribute(t *testing.T) {
	if got := Error(nil); got.Key != AttrError || got.Value != "" {
		t.Errorf("unexpected nil error attribute: %+v", got)
	}
	if got := Error(errors.New("boom")); got.Value != "boom" {
		t.Errorf("unexpected error attribute: %+v", got)
	}
}
