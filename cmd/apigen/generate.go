package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/discoveregypt/apigen/internal/config"
	"github.com/discoveregypt/apigen/internal/dartgen"
	"github.com/discoveregypt/apigen/internal/diagnostic"
)

var cmdGenerate = &cli.Command{
	Name:   "generate",
	Usage:  "write models.dart, the service file and the source digest",
	Flags:  flags(commonFlags, pathFlags, generateFlags),
	Action: runGenerate,
}

func runGenerate(cctx *cli.Context) error {
	logger := configLogger(cctx, cctx.App.ErrWriter)

	cfg, err := loadConfig(cctx, logger)
	if err != nil {
		return err
	}

	return generate(cctx.Context, logger, cfg, cctx.App.Writer)
}

func generate(ctx context.Context, logger *slog.Logger, cfg *config.Config, stdout io.Writer) error {
	diags := diagnostic.NewCollector(cfg.Strict, false)
	res, err := dartgen.Generate(cfg.Input, cfg.Output, &dartgen.Options{
		ServiceClass: cfg.ServiceClass,
		Source:       cfg.Source,
		Diagnostics:  diags,
		Logger:       logger,
	})
	reportDiagnostics(ctx, logger, diags)
	if err != nil {
		return err
	}

	for _, f := range res.Files {
		if f.Changed {
			logger.Info("wrote file", "path", f.Path)
		} else {
			logger.Info("file unchanged", "path", f.Path)
		}
	}

	fmt.Fprintf(stdout, "generated %s (%d classes, %d operations) in %s\n",
		res.ServiceClass, res.Classes, res.Operations, cfg.Output)
	return nil
}
