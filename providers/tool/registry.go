package tool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/DJSquale/gpt-langchain-agent/providers/ai"
)

// ErrToolNotFound is returned by Registry.Call for unknown tool names.
var ErrToolNotFound = errors.New("tool not found")

// Registry is an ordered, concurrency-safe set of tools. Lookups ignore
// case; iteration follows registration order.
type Registry struct {
	mu    sync.RWMutex
	order []GenericTool
	index map[string]int
}

// NewRegistry creates a registry holding tools in the given order.
func NewRegistry(tools ...GenericTool) *Registry {
	r := &Registry{index: make(map[string]int)}
	r.Register(tools...)
	return r
}

// Register appends tools. A tool whose name is already registered replaces
// the earlier one in place.
func (r *Registry) Register(tools ...GenericTool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tools {
		key := strings.ToLower(t.ToolInfo().Name)
		if i, ok := r.index[key]; ok {
			r.order[i] = t
			continue
		}
		r.index[key] = len(r.order)
		r.order = append(r.order, t)
	}
}

// Get looks a tool up by name, ignoring case.
func (r *Registry) Get(name string) (GenericTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i, ok := r.index[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return r.order[i], true
}

// Tools returns a copy of the registered tools in order.
func (r *Registry) Tools() []GenericTool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]GenericTool, len(r.order))
	copy(out, r.order)
	return out
}

// Descriptions returns the tool list advertised to the model.
func (r *Registry) Descriptions() []ai.ToolDescription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ai.ToolDescription, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, t.ToolInfo())
	}
	return out
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Call dispatches to the named tool. Unknown names yield an error wrapping
// ErrToolNotFound.
func (r *Registry) Call(ctx context.Context, name, inputJson string) (string, error) {
	t, ok := r.Get(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return t.Call(ctx, inputJson)
}
