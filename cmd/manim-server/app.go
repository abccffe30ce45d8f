package main

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonwraymond/toolscene/backend"
	"github.com/jonwraymond/toolscene/backend/local"
	"github.com/jonwraymond/toolscene/catalog"
	"github.com/jonwraymond/toolscene/config"
	"github.com/jonwraymond/toolscene/logging"
	"github.com/jonwraymond/toolscene/mcpserver"
	"github.com/jonwraymond/toolscene/project"
	"github.com/jonwraymond/toolscene/render"
	"github.com/jonwraymond/toolscene/tools"
)

// backendName is the namespace of the scene tools.
const backendName = "manim"

type app struct {
	settings config.Settings
	logger   *zap.Logger
	log      *zap.SugaredLogger
	server   *mcpserver.Server
	catalog  *catalog.Catalog
}

func newApp(ctx context.Context, g *Globals) (*app, error) {
	settings, err := config.Load(config.Options{
		ConfigFile: g.Config,
		EnvFiles:   g.EnvFile,
	})
	if err != nil {
		return nil, err
	}
	return build(ctx, settings, nil)
}

// build wires the service graph. A nil logger is built from settings.
func build(ctx context.Context, settings config.Settings, logger *zap.Logger) (*app, error) {
	if err := settings.EnsureDirectories(); err != nil {
		return nil, err
	}
	if logger == nil {
		var err error
		logger, err = logging.New(logging.Options{
			File:        settings.LogFile,
			Level:       settings.LogLevel,
			Development: settings.Development,
		})
		if err != nil {
			return nil, err
		}
	}
	log := logger.Sugar()

	invoker, err := render.NewInvoker(render.Config{
		OutputRoot: settings.OutputDir,
		Binary:     settings.Renderer,
		Timeout:    settings.TimeoutDuration(),
		Logger:     log.Named("render"),
	})
	if err != nil {
		return nil, err
	}

	svc, err := tools.NewService(tools.Config{
		Store:    project.NewInMemoryStore(),
		Renderer: invoker,
		CodeDir:  settings.CodeDir,
		Logger:   log.Named("tools"),
	})
	if err != nil {
		return nil, err
	}

	b := local.New(backendName)
	tools.Register(b, svc)

	registry := backend.NewRegistry()
	if err := registry.Register(b); err != nil {
		return nil, err
	}
	agg := backend.NewAggregator(registry)

	server, err := mcpserver.New(ctx, agg, mcpserver.Options{
		Name:    "manim-server",
		Version: version,
		Logger:  log.Named("mcp"),
	})
	if err != nil {
		return nil, err
	}

	cat, err := catalog.Build(ctx, agg, catalog.Options{Docs: tools.DocEntries()})
	if err != nil {
		return nil, err
	}

	return &app{
		settings: settings,
		logger:   logger,
		log:      log,
		server:   server,
		catalog:  cat,
	}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

func marshalIndent(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding: %w", err)
	}
	return string(data), nil
}
