// Package local provides an in-process tool backend whose tools are plain
// Go handler functions.
package local

import (
	"context"
	"sync"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/toolscene/backend"
)

// HandlerFunc is the function signature for tool handlers. Arguments arrive
// as decoded JSON; the result must be JSON-serializable.
type HandlerFunc func(ctx context.Context, args map[string]any) (any, error)

// ToolDef defines a local tool with its handler.
type ToolDef struct {
	Name         string
	Title        string
	Description  string
	InputSchema  map[string]any
	OutputSchema map[string]any
	Annotations  *mcp.ToolAnnotations
	Tags         []string
	Handler      HandlerFunc
}

// Backend implements backend.Backend for local tool handlers. Tools are
// listed in registration order.
type Backend struct {
	name     string
	enabled  bool
	order    []string
	handlers map[string]ToolDef
	mu       sync.RWMutex
}

// New creates a new local backend. The name doubles as the tool namespace.
func New(name string) *Backend {
	return &Backend{
		name:     name,
		enabled:  true,
		handlers: make(map[string]ToolDef),
	}
}

// Kind returns the backend kind.
func (b *Backend) Kind() string {
	return "local"
}

// Name returns the backend instance name.
func (b *Backend) Name() string {
	return b.name
}

// Enabled returns whether the backend is enabled.
func (b *Backend) Enabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.enabled
}

// SetEnabled enables or disables the backend.
func (b *Backend) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.enabled = enabled
}

// RegisterHandler registers a tool handler. Registering an existing name
// replaces its definition and keeps its position.
func (b *Backend) RegisterHandler(name string, def ToolDef) {
	if def.Name == "" {
		def.Name = name
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.handlers[name]; !exists {
		b.order = append(b.order, name)
	}
	b.handlers[name] = def
}

// UnregisterHandler removes a tool handler.
func (b *Backend) UnregisterHandler(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.handlers[name]; !exists {
		return
	}
	delete(b.handlers, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// ListTools returns tools available from this backend.
func (b *Backend) ListTools(_ context.Context) ([]model.Tool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]model.Tool, 0, len(b.order))
	for _, name := range b.order {
		def := b.handlers[name]
		tool := model.Tool{
			Tool: mcp.Tool{
				Name:        def.Name,
				Title:       def.Title,
				Description: def.Description,
				InputSchema: def.InputSchema,
				Annotations: def.Annotations,
			},
			Namespace: b.name,
			Tags:      model.NormalizeTags(def.Tags),
		}
		if def.OutputSchema != nil {
			tool.OutputSchema = def.OutputSchema
		}
		out = append(out, tool)
	}
	return out, nil
}

// Execute invokes a tool handler.
func (b *Backend) Execute(ctx context.Context, tool string, args map[string]any) (any, error) {
	b.mu.RLock()
	enabled := b.enabled
	def, ok := b.handlers[tool]
	b.mu.RUnlock()

	if !enabled {
		return nil, backend.ErrBackendDisabled
	}
	if !ok || def.Handler == nil {
		return nil, backend.ErrToolNotFound
	}
	if args == nil {
		args = map[string]any{}
	}
	return def.Handler(ctx, args)
}
