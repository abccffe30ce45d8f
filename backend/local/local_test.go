package local

import (
	"context"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/toolscene/backend"
)

func TestLocalBackend_Interface(t *testing.T) {
	t.Helper()
	var _ backend.Backend = (*Backend)(nil)
}

func TestLocalBackend_KindAndName(t *testing.T) {
	b := New("manim")
	if b.Kind() != "local" {
		t.Errorf("Kind() = %q, want %q", b.Kind(), "local")
	}
	if b.Name() != "manim" {
		t.Errorf("Name() = %q, want %q", b.Name(), "manim")
	}
}

func TestLocalBackend_ListToolsInRegistrationOrder(t *testing.T) {
	b := New("manim")
	for _, name := range []string{"create_project", "add_segment", "render"} {
		b.RegisterHandler(name, ToolDef{
			Description: name,
			InputSchema: map[string]any{"type": "object"},
			Tags:        []string{"Scene"},
			Annotations: &mcp.ToolAnnotations{ReadOnlyHint: name == "render"},
		})
	}
	// Re-registering keeps position.
	b.RegisterHandler("add_segment", ToolDef{Description: "updated", InputSchema: map[string]any{"type": "object"}})

	tools, err := b.ListTools(context.Background())
	if err != nil {
		t.Fatalf("ListTools() error = %v", err)
	}
	want := []string{"create_project", "add_segment", "render"}
	if len(tools) != len(want) {
		t.Fatalf("ListTools() returned %d tools, want %d", len(tools), len(want))
	}
	for i, name := range want {
		if tools[i].Name != name {
			t.Errorf("tools[%d].Name = %q, want %q", i, tools[i].Name, name)
		}
		if tools[i].Namespace != "manim" {
			t.Errorf("tools[%d].Namespace = %q, want manim", i, tools[i].Namespace)
		}
	}
	if tools[1].Description != "updated" {
		t.Errorf("re-registered description = %q", tools[1].Description)
	}
	if tools[0].OutputSchema != nil {
		t.Errorf("OutputSchema = %v, want nil when unset", tools[0].OutputSchema)
	}
}

func TestLocalBackend_Execute(t *testing.T) {
	b := New("manim")
	b.RegisterHandler("echo", ToolDef{
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			return args, nil
		},
	})

	got, err := b.Execute(context.Background(), "echo", nil)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if m, ok := got.(map[string]any); !ok || m == nil {
		t.Errorf("Execute() with nil args passed %#v, want empty map", got)
	}

	if _, err := b.Execute(context.Background(), "missing", nil); !errors.Is(err, backend.ErrToolNotFound) {
		t.Errorf("Execute() missing error = %v, want ErrToolNotFound", err)
	}

	b.SetEnabled(false)
	if _, err := b.Execute(context.Background(), "echo", nil); !errors.Is(err, backend.ErrBackendDisabled) {
		t.Errorf("Execute() disabled error = %v, want ErrBackendDisabled", err)
	}
}

func TestLocalBackend_UnregisterHandler(t *testing.T) {
	b := New("manim")
	b.RegisterHandler("a", ToolDef{})
	b.RegisterHandler("b", ToolDef{})
	b.UnregisterHandler("a")
	b.UnregisterHandler("never")

	tools, _ := b.ListTools(context.Background())
	if len(tools) != 1 || tools[0].Name != "b" {
		t.Errorf("ListTools() after unregister = %+v", tools)
	}
}
