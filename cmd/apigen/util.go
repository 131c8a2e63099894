package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/discoveregypt/apigen/internal/config"
	"github.com/discoveregypt/apigen/internal/diagnostic"
)

func configLogger(cctx *cli.Context, writer io.Writer) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cctx.String("log-level")) {
	case "error":
		level = slog.LevelError
	case "warn":
		level = slog.LevelWarn
	case "info":
		level = slog.LevelInfo
	case "debug":
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// loadConfig merges the config file (explicit or discovered) with flags.
// Flags win over the file, the file wins over defaults.
func loadConfig(cctx *cli.Context, logger *slog.Logger) (*config.Config, error) {
	path := cctx.String("config")
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		path = config.Discover(cwd)
	}

	cfg := config.DefaultConfig()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
		logger.Debug("loaded config", "path", path)
	}

	if cctx.IsSet("spec") {
		cfg.Input = cctx.String("spec")
	}
	if cctx.IsSet("out") {
		cfg.Output = cctx.String("out")
	}
	if cctx.IsSet("service-class") {
		cfg.ServiceClass = cctx.String("service-class")
	}
	if cctx.IsSet("source") {
		cfg.Source = cctx.String("source")
	}
	if cctx.IsSet("strict") {
		cfg.Strict = cctx.Bool("strict")
	}

	diags := diagnostic.NewCollector(false, false)
	r := cfg.ValidateDetailed()
	for _, w := range r.Warnings {
		diags.Warn(diagnostic.CategoryConfigInvalid, path, w)
	}
	for _, e := range r.Errors {
		diags.Error(diagnostic.CategoryConfigInvalid, path, e)
	}
	reportDiagnostics(cctx.Context, logger, diags)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func reportDiagnostics(ctx context.Context, logger *slog.Logger, c *diagnostic.Collector) {
	for _, d := range c.Diagnostics() {
		level := slog.LevelWarn
		switch d.Severity {
		case diagnostic.SeverityError:
			level = slog.LevelError
		case diagnostic.SeverityInfo:
			level = slog.LevelInfo
		}
		attrs := []any{"category", d.Category, "location", d.Location}
		if d.Hint != "" {
			attrs = append(attrs, "hint", d.Hint)
		}
		logger.Log(ctx, level, d.Message, attrs...)
	}
}
