// Command manim-server serves the manim scene tools over MCP stdio.
//
// Usage:
//
//	manim-server [serve]            run the MCP server on stdin/stdout
//	manim-server tools [query]      search the tool catalog
//	manim-server describe <tool>    show a tool's documentation
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/alecthomas/kong"
)

var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config  string   `name:"config" short:"c" help:"YAML settings file" type:"path"`
	EnvFile []string `name:"env-file" help:"Environment files to load (missing files are skipped)" default:".env"`
}

// CLI defines the command-line interface.
var CLI struct {
	Globals

	Serve    ServeCmd    `cmd:"" default:"1" help:"Run the MCP server on stdin/stdout"`
	Tools    ToolsCmd    `cmd:"" help:"Search the tool catalog"`
	Describe DescribeCmd `cmd:"" help:"Show documentation for a tool"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// ServeCmd runs the server until interrupted.
type ServeCmd struct{}

func (c *ServeCmd) Run(g *Globals) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, g)
	if err != nil {
		return err
	}
	defer a.close()

	a.log.Infow("serving",
		"version", version,
		"output_dir", a.settings.OutputDir,
		"code_dir", a.settings.CodeDir,
		"timeout_s", a.settings.Timeout,
	)
	return a.server.Serve(ctx)
}

// ToolsCmd searches the catalog.
type ToolsCmd struct {
	Query string `arg:"" optional:"" help:"Search terms (omit to list every tool)"`
	Limit int    `short:"n" default:"20" help:"Maximum number of results"`
}

func (c *ToolsCmd) Run(g *Globals) error {
	a, err := newApp(context.Background(), g)
	if err != nil {
		return err
	}
	defer a.close()

	query := c.Query
	if query == "" {
		query = backendName
	}
	results, err := a.catalog.Search(query, c.Limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTAGS\tSUMMARY")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, strings.Join(r.Tags, ","), r.ShortDescription)
	}
	return w.Flush()
}

// DescribeCmd prints a tool's documentation.
type DescribeCmd struct {
	Tool string `arg:"" help:"Tool name or ID (e.g. render or manim:render)"`
}

func (c *DescribeCmd) Run(g *Globals) error {
	a, err := newApp(context.Background(), g)
	if err != nil {
		return err
	}
	defer a.close()

	id := c.Tool
	if !strings.Contains(id, ":") {
		id = backendName + ":" + id
	}
	doc, err := a.catalog.Describe(id)
	if err != nil {
		return fmt.Errorf("describing %s: %w", id, err)
	}

	fmt.Printf("%s\n\n%s\n", id, doc.Summary)
	if doc.Notes != "" {
		fmt.Printf("\n%s\n", doc.Notes)
	}
	if doc.Tool != nil && doc.Tool.InputSchema != nil {
		schema, err := marshalIndent(doc.Tool.InputSchema)
		if err != nil {
			return err
		}
		fmt.Printf("\nInput schema:\n%s\n", schema)
	}
	examples, err := a.catalog.Examples(id, 3)
	if err != nil {
		return err
	}
	for _, ex := range examples {
		args, err := marshalIndent(ex.Args)
		if err != nil {
			return err
		}
		fmt.Printf("\nExample: %s\n%s\n", ex.Description, args)
	}
	return nil
}

// VersionCmd prints the version.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("manim-server", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("manim-server"),
		kong.Description("MCP tools for building and rendering manim scenes"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(&CLI.Globals)
	ctx.FatalIfErrorf(err)
}
