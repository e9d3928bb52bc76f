package main

import (
	"fmt"
	"io"

	"bytestring/pkg/bytestring"
	"bytestring/pkg/log"

	"github.com/urfave/cli/v2"
)

var demoCommand = &cli.Command{
	Name:        "demo",
	Usage:       "runs the insert/erase smoke test",
	Description: `Builds "123456", inserts three '-' at offset 3, erases one byte at offset 3 and prints the result.`,
	Action: func(c *cli.Context) error {
		if err := startLogging(configFrom(c)); err != nil {
			return cli.Exit(fmt.Sprintf("Error initializing logger: %v", err), 1)
		}
		return demo(c.App.Writer)
	},
}

func demo(out io.Writer) error {
	b, err := bytestring.FromString("123456")
	if err != nil {
		return err
	}
	defer b.Release()

	if err := b.InsertFill(3, 3, '-'); err != nil {
		return err
	}
	log.Debug().Str("content", b.String()).Int("size", b.Size()).Msg("demo: after insert")
	if err := b.Erase(3, 1); err != nil {
		return err
	}
	log.Debug().Str("content", b.String()).Int("size", b.Size()).Msg("demo: after erase")

	_, err = fmt.Fprintln(out, b.View().String())
	return err
}
