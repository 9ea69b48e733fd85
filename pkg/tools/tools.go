// Package tools exposes WordPress operations as named, callable tools.
// Each tool takes loosely-typed JSON params and returns a textual report;
// the HTTP surface serves them without knowing anything about WordPress.
package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
)

// HandlerFunc executes one tool call.
type HandlerFunc func(ctx context.Context, params map[string]any) (string, error)

type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Handler     HandlerFunc `json:"-"`
}

// Registry is a name-keyed store of tools.
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]Tool
	logger *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		tools:  make(map[string]Tool),
		logger: logger.With(slog.String("component", "tools")),
	}
}

func (r *Registry) Register(t Tool) error {
	if t.Name == "" || t.Handler == nil {
		return fmt.Errorf("tool needs a name and a handler")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool %q already registered", t.Name)
	}
	r.tools[t.Name] = t
	return nil
}

// List returns every tool sorted by name, handlers omitted.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}

// UnknownToolError names a tool that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool %q", e.Name)
}

// Call looks the tool up and runs it.
func (r *Registry) Call(ctx context.Context, name string, params map[string]any) (string, error) {
	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return "", &UnknownToolError{Name: name}
	}

	r.logger.Debug("tool call", slog.String("tool", name))
	report, err := t.Handler(ctx, params)
	if err != nil {
		r.logger.Warn("tool call failed",
			slog.String("tool", name),
			slog.Any("error", err),
		)
		return "", err
	}
	return report, nil
}
