package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/discoveregypt/apigen/internal/buildcache"
	"github.com/discoveregypt/apigen/internal/dartgen"
)

var errStale = errors.New("generated files are stale")

var cmdCheck = &cli.Command{
	Name:   "check",
	Usage:  "exit non-zero when the generated files do not match the spec",
	Flags:  flags(commonFlags, pathFlags),
	Action: runCheck,
}

func runCheck(cctx *cli.Context) error {
	logger := configLogger(cctx, cctx.App.ErrWriter)

	cfg, err := loadConfig(cctx, logger)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("reading OpenAPI file: %w", err)
	}
	digest := buildcache.Digest(data)

	class := cfg.ServiceClass
	if class == "" {
		class = dartgen.ServiceClassFromPath(cfg.Input)
	}

	if !buildcache.IsFresh(cfg.Output, digest, dartgen.OutputNames(class)) {
		logger.Debug("digest mismatch", "want", digest, "have", buildcache.ReadDigest(cfg.Output))
		return fmt.Errorf("%w: run apigen generate --spec %s --out %s", errStale, cfg.Input, cfg.Output)
	}

	fmt.Fprintf(cctx.App.Writer, "%s is up to date\n", cfg.Output)
	return nil
}
