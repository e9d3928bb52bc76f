package main

import (
	"fmt"
	"io"
	"os"

	"bytestring/pkg/bytestring"
	"bytestring/pkg/log"
	"bytestring/pkg/script"
	"bytestring/pkg/snapshot"

	"github.com/urfave/cli/v2"
)

var runCommand = &cli.Command{
	Name:      "run",
	Usage:     "executes an editing script against a byte string",
	UsageText: "bstr run [-f SCRIPT] [--init TEXT | --load SNAPSHOT] [--save SNAPSHOT]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Script `PATH`, '-' for stdin",
			Value:   "-",
		},
		&cli.StringFlag{
			Name:  "init",
			Usage: "Initial `TEXT` of the byte string",
		},
		&cli.StringFlag{
			Name:  "load",
			Usage: "Start from the snapshot at `PATH`",
		},
		&cli.StringFlag{
			Name:  "save",
			Usage: "Write a snapshot of the result to `PATH`",
		},
		&cli.BoolFlag{
			Name:  "lenient",
			Usage: "Keep going after a failing operation",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Do not print the final content and stats",
		},
	},
	Action: runCmd,
}

func runCmd(c *cli.Context) error {
	cfg := configFrom(c)
	if err := startLogging(cfg); err != nil {
		return cli.Exit(fmt.Sprintf("Error initializing logger: %v", err), 1)
	}
	if c.IsSet("init") && c.IsSet("load") {
		return cli.Exit("Error: --init and --load are mutually exclusive.", 1)
	}

	ops, err := readScript(c.String("file"), c.App.Reader)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error reading script: %v", err), 1)
	}

	b, err := initial(c)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error preparing byte string: %v", err), 1)
	}
	defer b.Release()

	runner := &script.Runner{Strict: cfg.ScriptStrict && !c.Bool("lenient"), Out: c.App.Writer}
	log.Info().Int("ops", len(ops)).Bool("strict", runner.Strict).Msg("run: starting script")
	runErr := runner.Run(b, ops)

	if !c.Bool("quiet") {
		fmt.Fprintln(c.App.Writer, b.View().String())
		fmt.Fprintln(c.App.Writer, script.Stats(b))
	}
	if path := c.String("save"); path != "" {
		if err := saveSnapshot(path, b, cfg); err != nil {
			return cli.Exit(fmt.Sprintf("Error saving snapshot: %v", err), 1)
		}
	}
	if runErr != nil {
		return cli.Exit(runErr.Error(), 2)
	}
	return nil
}

func readScript(path string, stdin io.Reader) ([]script.Op, error) {
	if path == "-" {
		return script.Parse(stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return script.Parse(f)
}

func initial(c *cli.Context) (*bytestring.ByteString, error) {
	if path := c.String("load"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return snapshot.Decode(f)
	}
	return bytestring.FromString(c.String("init"))
}

func saveSnapshot(path string, b *bytestring.ByteString, cfg *script.Config) error {
	kind, err := cfg.Compression()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := snapshot.Encode(f, b, kind); err != nil {
		f.Close()
		return err
	}
	log.Info().Str("path", path).Stringer("compression", kind).Msg("run: snapshot saved")
	return f.Close()
}
