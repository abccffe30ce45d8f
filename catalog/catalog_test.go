package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type staticLister struct {
	tools []model.Tool
	err   error
}

func (s staticLister) ListAllTools(context.Context) ([]model.Tool, error) {
	return s.tools, s.err
}

func testTools() []model.Tool {
	schema := map[string]any{"type": "object"}
	return []model.Tool{
		{
			Tool:      mcp.Tool{Name: "greet", Description: "Greets a user by name", InputSchema: schema},
			Namespace: "test",
			Tags:      []string{"greeting"},
		},
		{
			Tool:      mcp.Tool{Name: "forecast", Description: "Reports tomorrow's weather", InputSchema: schema},
			Namespace: "test",
			Tags:      []string{"weather"},
		},
	}
}

func TestBuild_ListError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := Build(context.Background(), staticLister{err: boom}, Options{}); !errors.Is(err, boom) {
		t.Errorf("Build() error = %v, want boom", err)
	}
}

func TestCatalog_Search(t *testing.T) {
	c, err := Build(context.Background(), staticLister{tools: testTools()}, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	results, err := c.Search("weather", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search() returned no results")
	}
	if results[0].ID != "test:forecast" {
		t.Errorf("results[0].ID = %q, want %q", results[0].ID, "test:forecast")
	}
}

func TestCatalog_DescribeWithDocs(t *testing.T) {
	c, err := Build(context.Background(), staticLister{tools: testTools()}, Options{
		Docs: map[string]tooldoc.DocEntry{
			"greet": {
				Summary: "A friendly greeting tool",
				Notes:   "Returns a greeting message",
				Examples: []tooldoc.ToolExample{{
					ID:          "greet-example",
					Title:       "Greet",
					Description: "Greet Ada.",
					Args:        map[string]any{"name": "Ada"},
				}},
			},
		},
	})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	doc, err := c.Describe("test:greet")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if doc.Summary != "A friendly greeting tool" {
		t.Errorf("doc.Summary = %q", doc.Summary)
	}
	if doc.Tool == nil || doc.Tool.Name != "greet" {
		t.Errorf("doc.Tool = %v, want greet", doc.Tool)
	}

	examples, err := c.Examples("test:greet", 5)
	if err != nil {
		t.Fatalf("Examples() error = %v", err)
	}
	if len(examples) != 1 || examples[0].Args["name"] != "Ada" {
		t.Errorf("Examples() = %+v", examples)
	}
}

func TestCatalog_DescribeDefaultsToDescription(t *testing.T) {
	c, err := Build(context.Background(), staticLister{tools: testTools()}, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	doc, err := c.Describe("test:forecast")
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if doc.Summary != "Reports tomorrow's weather" {
		t.Errorf("doc.Summary = %q", doc.Summary)
	}

	if _, err := c.Describe("test:missing"); err == nil {
		t.Error("Describe() of unknown tool should fail")
	}
}

func TestCatalog_Namespaces(t *testing.T) {
	c, err := Build(context.Background(), staticLister{tools: testTools()}, Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	ns, err := c.Namespaces()
	if err != nil {
		t.Fatalf("Namespaces() error = %v", err)
	}
	if len(ns) != 1 || ns[0] != "test" {
		t.Errorf("Namespaces() = %v, want [test]", ns)
	}
}
