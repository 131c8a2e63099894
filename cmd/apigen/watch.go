package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/discoveregypt/apigen/internal/watcher"
)

var cmdWatch = &cli.Command{
	Name:  "watch",
	Usage: "generate, then regenerate whenever the spec file content changes",
	Flags: flags(commonFlags, pathFlags, generateFlags, []cli.Flag{
		&cli.DurationFlag{
			Name:  "debounce",
			Usage: "quiet period after a change before regenerating",
			Value: watcher.DefaultPollInterval / 5,
		},
		&cli.DurationFlag{
			Name:  "poll-interval",
			Usage: "how often the spec file is checked",
			Value: watcher.DefaultPollInterval,
		},
	}),
	Action: runWatch,
}

func runWatch(cctx *cli.Context) error {
	logger := configLogger(cctx, cctx.App.ErrWriter)

	if d := cctx.Duration("poll-interval"); d <= 0 {
		return fmt.Errorf("--poll-interval must be positive, got %s", d)
	}
	if d := cctx.Duration("debounce"); d < 0 {
		return fmt.Errorf("--debounce must not be negative, got %s", d)
	}

	cfg, err := loadConfig(cctx, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cctx.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := generate(ctx, logger, cfg, cctx.App.Writer); err != nil {
		logger.Error("generation failed, waiting for changes", "err", err)
	}

	w := watcher.New([]string{cfg.Input}, cctx.Duration("debounce"), func(ctx context.Context, events []watcher.Event) {
		for _, e := range events {
			logger.Info("spec changed", "path", e.Path, "op", e.Op)
			if e.Op == watcher.OpRemove {
				return
			}
		}
		if err := generate(ctx, logger, cfg, cctx.App.Writer); err != nil {
			logger.Error("generation failed, waiting for changes", "err", err)
		}
	})
	w.SetPollInterval(cctx.Duration("poll-interval"))

	logger.Info("watching spec", "path", cfg.Input)
	return w.Watch(ctx)
}
