package tool

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func named(name string) GenericTool {
	return NewTool(name, echo, WithDescription(name+" description"))
}

// TestRegistry_Order verifies iteration follows registration order.
func TestRegistry_Order(t *testing.T) {
	r := NewRegistry(named("Beta"), named("Alpha"), named("Gamma"))

	descs := r.Descriptions()
	want := []string{"Beta", "Alpha", "Gamma"}
	if len(descs) != len(want) {
		t.Fatalf("expected %d tools, got %d", len(want), len(descs))
	}
	for i, name := range want {
		if descs[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, descs[i].Name)
		}
	}
	if r.Len() != 3 || len(r.Tools()) != 3 {
		t.Errorf("unexpected length %d", r.Len())
	}
}

// TestRegistry_CaseInsensitiveLookup verifies Get ignores case.
func TestRegistry_CaseInsensitiveLookup(t *testing.T) {
	r := NewRegistry(named("WebSearchTool"))

	for _, name := range []string{"WebSearchTool", "websearchtool", "WEBSEARCHTOOL"} {
		if _, ok := r.Get(name); !ok {
			t.Errorf("expected %q to be found", name)
		}
	}
	if _, ok := r.Get("Other"); ok {
		t.Error("did not expect unknown tool to be found")
	}
}

// TestRegistry_ReplaceKeepsPosition verifies re-registering a name replaces
// the tool without moving it.
func TestRegistry_ReplaceKeepsPosition(t *testing.T) {
	r := NewRegistry(named("A"), named("B"))
	replacement := NewTool("a", echo, WithDescription("new"))
	r.Register(replacement)

	descs := r.Descriptions()
	if len(descs) != 2 || descs[0].Description != "new" || descs[1].Name != "B" {
		t.Errorf("unexpected registry contents %+v", descs)
	}
}

func TestRegistry_Call(t *testing.T) {
	r := NewRegistry(named("Echo"))

	got, err := r.Call(context.Background(), "echo", `{"text":"hi"}`)
	if err != nil || got != "hi" {
		t.Errorf("Call() = %q, %v", got, err)
	}

	_, err = r.Call(context.Background(), "Missing", `{}`)
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry(named("Echo"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = r.Call(context.Background(), "Echo", `{"text":"x"}`)
		}()
		go func() {
			defer wg.Done()
			_ = r.Descriptions()
		}()
	}
	wg.Wait()
}
