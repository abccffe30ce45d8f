package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonwraymond/toolfoundation/model"
)

// ErrInvalidToolID is returned for malformed tool IDs.
var ErrInvalidToolID = errors.New("invalid tool ID format")

// Aggregator combines tools from multiple backends.
type Aggregator struct {
	registry *Registry
}

// NewAggregator creates a new tool aggregator.
func NewAggregator(registry *Registry) *Aggregator {
	return &Aggregator{registry: registry}
}

// ListAllTools returns tools from all enabled backends, ordered by backend
// name and then by each backend's own order. Tools without a namespace are
// assigned their backend's name.
func (a *Aggregator) ListAllTools(ctx context.Context) ([]model.Tool, error) {
	all := make([]model.Tool, 0)
	for _, b := range a.registry.ListEnabled() {
		tools, err := b.ListTools(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing tools of backend %s: %w", b.Name(), err)
		}
		for i := range tools {
			if tools[i].Namespace == "" {
				tools[i].Namespace = b.Name()
			}
			all = append(all, tools[i])
		}
	}
	return all, nil
}

// Execute invokes a tool through the backend registry.
func (a *Aggregator) Execute(ctx context.Context, toolID string, args map[string]any) (any, error) {
	backendName, tool, err := ParseToolID(toolID)
	if err != nil {
		return nil, err
	}
	if backendName == "" {
		return nil, ErrInvalidToolID
	}

	b, ok := a.registry.Get(backendName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBackendNotFound, backendName)
	}
	if !b.Enabled() {
		return nil, fmt.Errorf("%w: %s", ErrBackendDisabled, backendName)
	}
	return b.Execute(ctx, tool, args)
}

// ToolID returns the dispatch ID of a listed tool.
func ToolID(t model.Tool) string {
	return FormatToolID(t.Namespace, t.Name)
}

// ParseToolID splits a tool ID into backend and tool name.
func ParseToolID(id string) (backendName, tool string, err error) {
	backendName, tool, err = model.ParseToolID(id)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidToolID, id)
	}
	return backendName, tool, nil
}

// FormatToolID builds a tool ID from backend and tool name.
func FormatToolID(backendName, tool string) string {
	if backendName == "" {
		return tool
	}
	return fmt.Sprintf("%s:%s", backendName, tool)
}
