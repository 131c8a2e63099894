package main

import (
	"fmt"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/carlmjohnson/versioninfo"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var commonFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "config",
		Usage: "path to apigen.config.json (default: discovered in the working directory)",
	},
	&cli.StringFlag{
		Name:    "log-level",
		Usage:   "log verbosity level (error, warn, info, debug)",
		Value:   "info",
		EnvVars: []string{"APIGEN_LOG_LEVEL", "LOG_LEVEL"},
	},
}

var pathFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "spec",
		Usage:   "OpenAPI JSON document to read",
		EnvVars: []string{"APIGEN_SPEC"},
	},
	&cli.StringFlag{
		Name:    "out",
		Usage:   "directory receiving the generated Dart files",
		EnvVars: []string{"APIGEN_OUT"},
	},
	&cli.StringFlag{
		Name:  "service-class",
		Usage: "name of the generated service class (default: derived from the spec file name)",
	},
}

var generateFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "source",
		Usage: "path printed in the generated file header (default: --spec)",
	},
	&cli.BoolFlag{
		Name:  "strict",
		Usage: "fail when the document uses constructs that are only approximated",
	},
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := &cli.App{
		Name:      "apigen",
		Usage:     "generate a minimal Dart client from an OpenAPI JSON document",
		Version:   versioninfo.Short(),
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     flags(commonFlags, pathFlags, generateFlags),
		Action:    runGenerate,
	}
	app.Commands = []*cli.Command{
		cmdGenerate,
		cmdCheck,
		cmdWatch,
	}
	return app
}

func run(args []string) error {
	return newApp(os.Stdout, os.Stderr).Run(args)
}
