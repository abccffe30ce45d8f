// Package catalog indexes the server's tools for search and documentation
// lookup.
package catalog

import (
	"context"
	"fmt"

	"github.com/jonwraymond/tooldiscovery/index"
	"github.com/jonwraymond/tooldiscovery/search"
	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/jonwraymond/toolfoundation/model"

	"github.com/jonwraymond/toolscene/backend"
)

// DefaultLimit bounds Search results when no limit is given.
const DefaultLimit = 10

// Lister lists tools. *backend.Aggregator satisfies it.
type Lister interface {
	ListAllTools(ctx context.Context) ([]model.Tool, error)
}

// Options configures Build.
type Options struct {
	// Docs holds documentation keyed by plain tool name. Tools without an
	// entry get their description as summary.
	Docs map[string]tooldoc.DocEntry
}

// Catalog is a searchable, documented view of a tool set.
type Catalog struct {
	idx  index.Index
	docs *tooldoc.InMemoryStore
}

// Build registers every tool from l in a BM25-backed index and a doc store.
func Build(ctx context.Context, l Lister, opts Options) (*Catalog, error) {
	tools, err := l.ListAllTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}

	idx := index.NewInMemoryIndex(index.IndexOptions{
		Searcher: search.NewBM25Searcher(search.BM25Config{}),
	})
	docs := tooldoc.NewInMemoryStore(tooldoc.StoreOptions{Index: idx})

	for _, t := range tools {
		if err := idx.RegisterTool(t, model.NewLocalBackend(t.Namespace)); err != nil {
			return nil, fmt.Errorf("indexing %s: %w", backend.ToolID(t), err)
		}
		entry, ok := opts.Docs[t.Name]
		if !ok {
			entry = tooldoc.DocEntry{Summary: t.Description}
		}
		if err := docs.RegisterDoc(backend.ToolID(t), entry); err != nil {
			return nil, fmt.Errorf("documenting %s: %w", backend.ToolID(t), err)
		}
	}
	return &Catalog{idx: idx, docs: docs}, nil
}

// Search returns tools matching query, best first.
func (c *Catalog) Search(query string, limit int) ([]index.Summary, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return c.idx.Search(query, limit)
}

// Describe returns full documentation for a tool ID ("manim:render").
func (c *Catalog) Describe(id string) (tooldoc.ToolDoc, error) {
	return c.docs.DescribeTool(id, tooldoc.DetailFull)
}

// Examples returns up to max usage examples for a tool ID.
func (c *Catalog) Examples(id string, max int) ([]tooldoc.ToolExample, error) {
	return c.docs.ListExamples(id, max)
}

// Namespaces lists the indexed tool namespaces.
func (c *Catalog) Namespaces() ([]string, error) {
	return c.idx.ListNamespaces()
}
