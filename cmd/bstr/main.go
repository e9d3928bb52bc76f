package main

import (
	"fmt"
	"os"

	"bytestring/internal/fn"
	"bytestring/pkg/log"
	"bytestring/pkg/script"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

const configKey = "config"

func newApp() *cli.App {
	return &cli.App{
		Name:    "bstr",
		Usage:   "edit, inspect and snapshot growable byte strings",
		Version: fmt.Sprintf("%s (built %s)", Version, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the configuration `FILE` (default: bstr.yaml in ., /etc/bytestring, ~/.bytestring)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Before:   setup,
		After:    teardown,
		Commands: []*cli.Command{demoCommand, runCommand, snapshotCommand, logsCommand},
	}
}

// setup loads the configuration once for every subcommand.
func setup(c *cli.Context) error {
	cfg, err := script.LoadConfig(c.String("config"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error loading configuration: %v", err), 1)
	}
	if c.Bool("debug") {
		cfg.Debug = true
	}
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[configKey] = cfg
	return nil
}

func teardown(c *cli.Context) error {
	return log.Close()
}

func configFrom(c *cli.Context) *script.Config {
	if cfg, ok := c.App.Metadata[configKey].(*script.Config); ok {
		return cfg
	}
	return script.DefaultConfig()
}

// startLogging routes the package logger according to cfg: the SQLite
// database when one is configured, the console otherwise.
func startLogging(cfg *script.Config) error {
	level := fn.T(cfg.Debug, zerolog.DebugLevel, zerolog.InfoLevel)
	if cfg.LogDB != "" {
		return log.Init(cfg.LogDB, level)
	}
	if cfg.LogConsole {
		log.SetStd(level)
	}
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
