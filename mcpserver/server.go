// Package mcpserver exposes aggregated backend tools over the Model Context
// Protocol.
//
// Every tool result, including failures, is returned as a JSON object in a
// single text content block and mirrored as structured content.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonwraymond/toolfoundation/model"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/toolscene/backend"
)

// Default server identity.
const (
	DefaultName    = "manim-server"
	DefaultVersion = "dev"
)

// ErrDuplicateTool is returned when two backends expose the same tool name.
var ErrDuplicateTool = errors.New("duplicate tool name")

// ToolSource lists and executes tools. *backend.Aggregator satisfies it.
type ToolSource interface {
	ListAllTools(ctx context.Context) ([]model.Tool, error)
	Execute(ctx context.Context, toolID string, args map[string]any) (any, error)
}

// Logger is the interface for logging. *zap.SugaredLogger satisfies it.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: logging must be best-effort and must not panic.
type Logger interface {
	Infow(msg string, keysAndValues ...any)
	Warnw(msg string, keysAndValues ...any)
	Errorw(msg string, keysAndValues ...any)
}

type nopLogger struct{}

func (nopLogger) Infow(string, ...any)  {}
func (nopLogger) Warnw(string, ...any)  {}
func (nopLogger) Errorw(string, ...any) {}

// Options configures New.
type Options struct {
	// Name is the advertised implementation name.
	// Default: manim-server
	Name string

	// Version is the advertised implementation version.
	// Default: dev
	Version string

	// Logger is an optional logger for tool calls.
	Logger Logger
}

func (o *Options) applyDefaults() {
	if o.Name == "" {
		o.Name = DefaultName
	}
	if o.Version == "" {
		o.Version = DefaultVersion
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
}

// Server is an MCP server wired to a ToolSource.
type Server struct {
	mcp   *mcp.Server
	src   ToolSource
	log   Logger
	names []string
}

// New builds an MCP server exposing every tool from src under its plain
// name. Tool calls are routed back through src by namespaced ID.
func New(ctx context.Context, src ToolSource, opts Options) (*Server, error) {
	if src == nil {
		return nil, fmt.Errorf("tool source is required")
	}
	opts.applyDefaults()

	tools, err := src.ListAllTools(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}

	s := &Server{
		mcp: mcp.NewServer(&mcp.Implementation{Name: opts.Name, Version: opts.Version}, nil),
		src: src,
		log: opts.Logger,
	}
	seen := make(map[string]string, len(tools))
	for _, t := range tools {
		id := backend.ToolID(t)
		if prev, dup := seen[t.Name]; dup {
			return nil, fmt.Errorf("%w: %s (from %s and %s)", ErrDuplicateTool, t.Name, prev, id)
		}
		seen[t.Name] = id

		def := t.Tool
		s.mcp.AddTool(&def, s.handler(id))
		s.names = append(s.names, t.Name)
	}
	return s, nil
}

// MCP returns the underlying go-sdk server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Tools returns the exposed tool names in registration order.
func (s *Server) Tools() []string {
	return append([]string(nil), s.names...)
}

// Serve runs the server over stdin/stdout until ctx is done or the client
// disconnects.
func (s *Server) Serve(ctx context.Context) error {
	return s.Run(ctx, &mcp.StdioTransport{})
}

// Run runs the server over the given transport.
func (s *Server) Run(ctx context.Context, t mcp.Transport) error {
	s.log.Infow("mcp server starting", "tools", len(s.names))
	err := s.mcp.Run(ctx, t)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) handler(toolID string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args map[string]any
		if raw := req.Params.Arguments; len(raw) > 0 {
			if err := json.Unmarshal(raw, &args); err != nil {
				return errorResult(fmt.Sprintf("Invalid arguments for %s: %v", req.Params.Name, err)), nil
			}
		}

		out, err := s.src.Execute(ctx, toolID, args)
		if err != nil {
			s.log.Errorw("tool execution failed", "tool", toolID, "error", err)
			return errorResult(err.Error()), nil
		}
		return jsonResult(out)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResult(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(data)}},
		StructuredContent: json.RawMessage(data),
	}, nil
}

func errorResult(msg string) *mcp.CallToolResult {
	res, _ := jsonResult(map[string]string{"error": msg})
	return res
}
