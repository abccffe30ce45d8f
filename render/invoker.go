package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Default configuration values.
const (
	DefaultBinary  = "manim"
	DefaultTimeout = 300 * time.Second
)

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

// Config configures an Invoker.
type Config struct {
	// OutputRoot is the media directory passed to the renderer and used to
	// resolve artifact paths.
	// Required.
	OutputRoot string

	// Binary is the renderer executable.
	// Default: manim (uses PATH)
	Binary string

	// Timeout bounds each invocation's wall-clock time.
	// Default: 300s
	Timeout time.Duration

	// Runner executes the renderer process.
	// Default: ExecRunner
	Runner Runner

	// Logger is an optional logger for invocation events.
	Logger Logger
}

// Validate checks that all required fields are set.
// Returns ErrConfiguration if any required field is missing or invalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputRoot) == "" {
		return fmt.Errorf("%w: missing required fields: OutputRoot", ErrConfiguration)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %v", ErrConfiguration, c.Timeout)
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Binary == "" {
		c.Binary = DefaultBinary
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Runner == nil {
		c.Runner = ExecRunner{}
	}
	if c.Logger == nil {
		c.Logger = nopLogger{}
	}
}

// Result is a successful render.
type Result struct {
	// Path is the resolved artifact location.
	Path string

	Stdout string
	Stderr string

	Duration time.Duration
}

// Invoker runs the external renderer.
//
// Contract:
// - Concurrency: safe for concurrent use when the Runner is.
// - Context: honors cancellation; the configured timeout is applied on top.
// - Errors: every failure is an *Error matching ErrRenderFailure.
// - Side effects: writes nothing itself beyond what the renderer produces.
type Invoker struct {
	cfg Config
}

// NewInvoker creates an Invoker with the given configuration.
// Returns ErrConfiguration if the configuration is invalid.
func NewInvoker(cfg Config) (*Invoker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Invoker{cfg: cfg}, nil
}

// OutputRoot returns the configured media directory.
func (i *Invoker) OutputRoot() string {
	return i.cfg.OutputRoot
}

// Timeout returns the configured invocation timeout.
func (i *Invoker) Timeout() time.Duration {
	return i.cfg.Timeout
}

// Command returns the process the invoker would run for req.
func (i *Invoker) Command(req Request) Command {
	return Command{
		Path: i.cfg.Binary,
		Args: req.Args(i.cfg.OutputRoot),
	}
}

// Invoke runs the renderer for req and resolves the produced artifact.
func (i *Invoker) Invoke(ctx context.Context, req Request) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()

	cmd := i.Command(req)
	log := i.cfg.Logger
	log.Infow("render started",
		"program", req.ProgramFile,
		"class", req.ClassName,
		"output", req.OutputName,
		"quality", string(req.Quality),
		"mode", string(req.Mode),
	)

	start := time.Now()
	out, err := i.cfg.Runner.Run(ctx, cmd)
	duration := time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Warnw("render timed out", "program", req.ProgramFile, "timeout", i.cfg.Timeout.String())
			return Result{}, timeoutError(i.cfg.Timeout, err)
		}
		log.Errorw("render invocation failed", "program", req.ProgramFile, "error", err)
		return Result{}, invocationError(err)
	}
	if out.ExitCode != 0 {
		log.Warnw("render exited non-zero",
			"program", req.ProgramFile,
			"exit_code", out.ExitCode,
			"duration_ms", duration.Milliseconds(),
		)
		return Result{}, exitError(out.ExitCode, out.Stderr)
	}

	path := ArtifactPath(i.cfg.OutputRoot, req)
	if _, statErr := os.Stat(path); statErr != nil {
		log.Warnw("render artifact missing", "path", path)
		return Result{}, missingArtifactError(path)
	}

	log.Infow("render finished", "path", path, "duration_ms", duration.Milliseconds())
	return Result{
		Path:     path,
		Stdout:   out.Stdout,
		Stderr:   out.Stderr,
		Duration: duration,
	}, nil
}
