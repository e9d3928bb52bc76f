package script

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"bytestring/internal/fn"
	"bytestring/pkg/bytestring"
	"bytestring/pkg/log"

	"github.com/dustin/go-humanize"
)

type command struct {
	minArgs, maxArgs int
	run              func(r *Runner, b *bytestring.ByteString, args []string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"assign": {1, 1, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			return b.AssignString(a[0])
		}},
		"assignfill": {2, 2, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			n, c, err := countByte(a[0], a[1])
			if err != nil {
				return err
			}
			return b.AssignFill(n, c)
		}},
		"sub": {2, 2, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			pos, n, err := twoInts(a[0], a[1])
			if err != nil {
				return err
			}
			return b.AssignSub(b, pos, n)
		}},
		"append": {1, 1, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			return b.AppendString(a[0])
		}},
		"appendfill": {2, 2, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			n, c, err := countByte(a[0], a[1])
			if err != nil {
				return err
			}
			return b.AppendFill(n, c)
		}},
		"dup": {0, 0, func(_ *Runner, b *bytestring.ByteString, _ []string) error {
			return b.Append(b)
		}},
		"push": {1, 1, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			c, err := parseByte(a[0])
			if err != nil {
				return err
			}
			return b.PushBack(c)
		}},
		"insert": {2, 2, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			pos, err := parseInt(a[0])
			if err != nil {
				return err
			}
			return b.InsertString(pos, a[1])
		}},
		"insertfill": {3, 3, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			pos, err := parseInt(a[0])
			if err != nil {
				return err
			}
			n, c, err := countByte(a[1], a[2])
			if err != nil {
				return err
			}
			return b.InsertFill(pos, n, c)
		}},
		"erase": {1, 2, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			pos, err := parseInt(a[0])
			if err != nil {
				return err
			}
			n := bytestring.NPos
			if len(a) == 2 {
				if n, err = parseInt(a[1]); err != nil {
					return err
				}
			}
			return b.Erase(pos, n)
		}},
		"set": {2, 2, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			pos, err := parseInt(a[0])
			if err != nil {
				return err
			}
			c, err := parseByte(a[1])
			if err != nil {
				return err
			}
			return b.SetAt(pos, c)
		}},
		"resize": {1, 2, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			n, err := parseInt(a[0])
			if err != nil {
				return err
			}
			var c byte
			if len(a) == 2 {
				if c, err = parseByte(a[1]); err != nil {
					return err
				}
			}
			return b.Resize(n, c)
		}},
		"reserve": {1, 1, func(_ *Runner, b *bytestring.ByteString, a []string) error {
			n, err := parseInt(a[0])
			if err != nil {
				return err
			}
			return b.Reserve(n)
		}},
		"clear": {0, 0, func(_ *Runner, b *bytestring.ByteString, _ []string) error {
			b.Clear()
			return nil
		}},
		"print": {0, 0, func(r *Runner, b *bytestring.ByteString, _ []string) error {
			_, err := fmt.Fprintln(r.Out, b.View().String())
			return err
		}},
		"stats": {0, 0, func(r *Runner, b *bytestring.ByteString, _ []string) error {
			_, err := fmt.Fprintln(r.Out, Stats(b))
			return err
		}},
	}
}

// Runner executes parsed scripts.
type Runner struct {
	// Strict stops at the first failing operation. Otherwise failures are
	// logged and the script continues; Run then reports the count.
	Strict bool
	Out    io.Writer
}

// Run applies ops to b in order.
func (r *Runner) Run(b *bytestring.ByteString, ops []Op) error {
	failed := 0
	for _, op := range ops {
		err := r.Exec(b, op)
		if err == nil {
			continue
		}
		if r.Strict {
			return err
		}
		failed++
		log.Warn().Err(err).Int("line", op.Line).Msg("script: operation failed, continuing")
	}
	if failed > 0 {
		return fmt.Errorf("script: %d of %d operations failed", failed, len(ops))
	}
	return nil
}

// Exec applies a single operation.
func (r *Runner) Exec(b *bytestring.ByteString, op Op) error {
	cmd, ok := commands[op.Name]
	if !ok {
		return fmt.Errorf("script: line %d: %w: %q", op.Line, ErrUnknownOp, op.Name)
	}
	if len(op.Args) < cmd.minArgs || len(op.Args) > cmd.maxArgs {
		return fmt.Errorf("script: line %d: %s: %w", op.Line, op.Name, ErrArgCount)
	}
	if err := cmd.run(r, b, op.Args); err != nil {
		return fmt.Errorf("script: line %d: %s: %w", op.Line, op.Name, err)
	}
	log.Debug().Int("line", op.Line).Str("op", op.Name).Int("size", b.Size()).Int("cap", b.Cap()).Msg("script: applied")
	return nil
}

// Stats summarizes the size bookkeeping of b.
func Stats(b *bytestring.ByteString) string {
	return fmt.Sprintf("size=%d cap=%d (%s) floor=%d empty=%s",
		b.Size(), b.Cap(), humanize.IBytes(uint64(b.Cap())), b.Floor(), fn.T(b.Empty(), "yes", "no"))
}

func parseInt(s string) (int, error) {
	if strings.EqualFold(s, "npos") {
		return bytestring.NPos, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrBadArgument, s)
	}
	return n, nil
}

// parseByte accepts a single character, or a 0x-prefixed hex value.
func parseByte(s string) (byte, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	if strings.HasPrefix(s, "0x") {
		v, err := strconv.ParseUint(s[2:], 16, 8)
		if err == nil {
			return byte(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not a single byte", ErrBadArgument, s)
}

func twoInts(a, b string) (int, int, error) {
	x, err := parseInt(a)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseInt(b)
	return x, y, err
}

func countByte(n, c string) (int, byte, error) {
	count, err := parseInt(n)
	if err != nil {
		return 0, 0, err
	}
	b, err := parseByte(c)
	return count, b, err
}
