package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"bytestring/pkg/log"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// timeFormats are tried in order when a time spec is not a duration.
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimeSpec accepts a duration back from now ("1h", "30m", "2d", "1w")
// or an absolute timestamp.
func parseTimeSpec(spec string, now time.Time) (time.Time, error) {
	if d, err := parseDuration(spec); err == nil {
		return now.Add(-d), nil
	}
	for _, layout := range timeFormats {
		if ts, err := time.ParseInLocation(layout, spec, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time specification: '%s'. Use relative duration (e.g., '1h', '30m', '2d') or absolute format (e.g., '2023-10-27T15:04:05Z')", spec)
}

// parseDuration extends time.ParseDuration with whole days and weeks.
func parseDuration(spec string) (time.Duration, error) {
	var unit time.Duration
	switch {
	case strings.HasSuffix(spec, "d"):
		unit = 24 * time.Hour
	case strings.HasSuffix(spec, "w"):
		unit = 7 * 24 * time.Hour
	default:
		return time.ParseDuration(spec)
	}
	n, err := strconv.Atoi(spec[:len(spec)-1])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid duration %q", spec)
	}
	return time.Duration(n) * unit, nil
}

var logsCommand = &cli.Command{
	Name:        "logs",
	Usage:       "Retrieve JSON log entries from the log database",
	UsageText:   "bstr logs [-f PATH] [--last|--since|--between] [mode options]",
	Description: `Reads the SQLite log database named by -f/--dbfile or by the log_db configuration key.`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "dbfile",
			Aliases: []string{"f"},
			Usage:   "Path to the SQLite log database `PATH`",
		},
		&cli.BoolFlag{
			Name:    "pretty",
			Aliases: []string{"p"},
			Usage:   "Output entries in a human-readable format instead of raw JSON",
		},
		&cli.BoolFlag{
			Name:  "last",
			Usage: "Mode: Retrieve the most recent N log entries (default)",
		},
		&cli.BoolFlag{
			Name:  "since",
			Usage: "Mode: Retrieve logs since a specific start time",
		},
		&cli.BoolFlag{
			Name:  "between",
			Usage: "Mode: Retrieve logs between a specific start and end time",
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Usage:   "Number of entries for --last mode `NUMBER`",
			Value:   log.DefaultLimit,
		},
		&cli.StringFlag{
			Name:    "start",
			Aliases: []string{"s"},
			Usage:   "Start time for --since/--between `TIME_SPEC`",
		},
		&cli.StringFlag{
			Name:    "end",
			Aliases: []string{"e"},
			Usage:   "End time for --between `TIME_SPEC`",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Usage:   "Max entries for --since/--between `NUMBER`",
			Value:   1000,
		},
	},
	Action: logsCmd,
}

func logsCmd(c *cli.Context) error {
	dbFile := c.String("dbfile")
	if dbFile == "" {
		dbFile = configFrom(c).LogDB
	}
	if dbFile == "" {
		return cli.Exit("Error: no log database; pass --dbfile or set log_db.", 1)
	}

	isLast, isSince, isBetween := c.Bool("last"), c.Bool("since"), c.Bool("between")
	modes := 0
	for _, m := range []bool{isLast, isSince, isBetween} {
		if m {
			modes++
		}
	}
	switch {
	case modes == 0:
		isLast = true
	case modes > 1:
		return cli.Exit("Error: Only one mode flag (--last, --since, --between) can be specified at a time.", 1)
	}

	if err := log.Init(dbFile, zerolog.InfoLevel); err != nil {
		return cli.Exit(fmt.Sprintf("Error opening log database: %v", err), 1)
	}

	now := time.Now()
	var results []log.LogEntry
	var err error
	switch {
	case isLast:
		count := c.Int("count")
		if count <= 0 {
			return cli.Exit("Error: --count (-n) must be a positive number.", 1)
		}
		results, err = log.GetLastNLogs(count)
	case isSince:
		if !c.IsSet("start") {
			return cli.Exit("Error: --start (-s) flag is required for --since mode.", 1)
		}
		start, perr := parseTimeSpec(c.String("start"), now)
		if perr != nil {
			return cli.Exit(fmt.Sprintf("Error parsing start time: %v", perr), 1)
		}
		results, err = log.GetLogsSince(start, c.Int("limit"))
	case isBetween:
		if !c.IsSet("start") || !c.IsSet("end") {
			return cli.Exit("Error: --start (-s) and --end (-e) are required for --between mode.", 1)
		}
		start, perr := parseTimeSpec(c.String("start"), now)
		if perr != nil {
			return cli.Exit(fmt.Sprintf("Error parsing start time: %v", perr), 1)
		}
		end, perr := parseTimeSpec(c.String("end"), now)
		if perr != nil {
			return cli.Exit(fmt.Sprintf("Error parsing end time: %v", perr), 1)
		}
		if start.After(end) {
			fmt.Fprintf(c.App.ErrWriter, "Warning: Start time (%s) is after end time (%s).\n", start.Format(time.RFC3339), end.Format(time.RFC3339))
		}
		results, err = log.GetLogsBetween(start, end, c.Int("limit"))
	}

	if err != nil {
		if errors.Is(err, log.ErrNotInitialized) {
			return cli.Exit("Internal Error: log database handle became unavailable.", 2)
		}
		return cli.Exit(fmt.Sprintf("Error retrieving logs: %v", err), 1)
	}
	if len(results) == 0 {
		fmt.Fprintln(c.App.ErrWriter, "No log entries found matching the criteria.")
		return nil
	}
	return printEntries(c.App.Writer, results, c.Bool("pretty"))
}

func printEntries(out io.Writer, entries []log.LogEntry, pretty bool) error {
	if !pretty {
		for _, e := range entries {
			if _, err := fmt.Fprintln(out, e.LogData); err != nil {
				return err
			}
		}
		return nil
	}
	cw := zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339}
	for _, e := range entries {
		if _, err := cw.Write([]byte(e.LogData)); err != nil {
			return fmt.Errorf("entry %d: %w", e.ID, err)
		}
	}
	return nil
}
