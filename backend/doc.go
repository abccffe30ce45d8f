// Package backend groups the tool sources that make up the server's tool
// surface and dispatches calls to them.
//
//   - [Backend]: a named source of tools (the scene tools live in a
//     local backend, see package local)
//   - [Registry]: holds backends by unique name
//   - [Aggregator]: lists every enabled backend's tools and routes
//     "backend:tool" IDs to the owning backend
//
// The MCP server (package mcpserver) and the tool catalog (package catalog)
// both consume the Aggregator, so a tool registered once is served and
// indexed without further wiring:
//
//	registry := backend.NewRegistry()
//	_ = registry.Register(sceneTools)
//	agg := backend.NewAggregator(registry)
//	result, err := agg.Execute(ctx, "manim:create_project", args)
package backend
