package main

import (
	"fmt"
	"os"

	"bytestring/pkg/bytestring"
	"bytestring/pkg/snapshot"
	"bytestring/pkg/transform"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

var ioFlags = []cli.Flag{
	&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "Input `PATH`", Required: true},
	&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output `PATH`", Required: true},
}

var snapshotCommand = &cli.Command{
	Name:  "snapshot",
	Usage: "converts between raw files and byte string snapshots",
	Subcommands: []*cli.Command{
		{
			Name:  "encode",
			Usage: "wraps a raw file into a snapshot",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "compression", Usage: "none, gzip or zstd (default: snapshot_compression)"},
				&cli.IntFlag{Name: "reserve", Usage: "Capacity floor `BYTES` recorded in the snapshot"},
			}, ioFlags...),
			Action: snapshotEncode,
		},
		{
			Name:   "decode",
			Usage:  "extracts the raw content of a snapshot",
			Flags:  ioFlags,
			Action: snapshotDecode,
		},
		{
			Name:  "info",
			Usage: "prints the header and content stats of a snapshot",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "in", Aliases: []string{"i"}, Usage: "Input `PATH`", Required: true},
			},
			Action: snapshotInfo,
		},
	},
}

func snapshotEncode(c *cli.Context) error {
	cfg := configFrom(c)
	if err := startLogging(cfg); err != nil {
		return cli.Exit(fmt.Sprintf("Error initializing logger: %v", err), 1)
	}
	name := cfg.SnapshotCompression
	if c.IsSet("compression") {
		name = c.String("compression")
	}
	kind, err := transform.ParseKind(name)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}

	raw, err := os.ReadFile(c.String("in"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error reading input: %v", err), 1)
	}
	b, err := bytestring.FromBytes(raw)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	defer b.Release()
	if c.IsSet("reserve") {
		if err := b.Reserve(c.Int("reserve")); err != nil {
			return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
		}
	}

	f, err := os.Create(c.String("out"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error creating output: %v", err), 1)
	}
	defer f.Close()
	if err := snapshot.Encode(f, b, kind); err != nil {
		return cli.Exit(fmt.Sprintf("Error encoding snapshot: %v", err), 1)
	}
	return f.Close()
}

func snapshotDecode(c *cli.Context) error {
	if err := startLogging(configFrom(c)); err != nil {
		return cli.Exit(fmt.Sprintf("Error initializing logger: %v", err), 1)
	}
	b, err := decodeFile(c.String("in"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error decoding snapshot: %v", err), 1)
	}
	defer b.Release()
	if err := os.WriteFile(c.String("out"), b.View().Bytes(), 0o644); err != nil {
		return cli.Exit(fmt.Sprintf("Error writing output: %v", err), 1)
	}
	return nil
}

func snapshotInfo(c *cli.Context) error {
	path := c.String("in")
	data, err := os.ReadFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error reading input: %v", err), 1)
	}
	h, err := snapshot.ReadHeader(data)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	}
	b, err := decodeFile(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error decoding snapshot: %v", err), 1)
	}
	defer b.Release()

	fmt.Fprintf(c.App.Writer, "version=%d compression=%s encoded=%s size=%s floor=%d\n",
		h.Version, h.Compression, humanize.IBytes(uint64(len(data))), humanize.IBytes(uint64(b.Size())), b.Floor())
	return nil
}

func decodeFile(path string) (*bytestring.ByteString, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return snapshot.Decode(f)
}
