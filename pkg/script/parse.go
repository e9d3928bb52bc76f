// Package script executes line-oriented editing scripts against a
// ByteString. One operation per line; '#' starts a comment.
//
//	assign "123456"
//	insertfill 3 3 -
//	erase 3 1
//	print
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrUnknownOp    = errors.New("unknown operation")
	ErrArgCount     = errors.New("wrong number of arguments")
	ErrBadArgument  = errors.New("bad argument")
	ErrUnterminated = errors.New("unterminated quoted string")
)

// Op is one parsed script line.
type Op struct {
	Line int
	Name string
	Args []string
}

func (op Op) String() string {
	return fmt.Sprintf("%s %s", op.Name, strings.Join(op.Args, " "))
}

// Parse reads a whole script. Names are case-insensitive.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		fields, err := tokenize(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("script: line %d: %w", line, err)
		}
		if len(fields) == 0 {
			continue
		}
		name := strings.ToLower(fields[0])
		if _, ok := commands[name]; !ok {
			return nil, fmt.Errorf("script: line %d: %w: %q", line, ErrUnknownOp, fields[0])
		}
		ops = append(ops, Op{Line: line, Name: name, Args: fields[1:]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("script: read failed: %w", err)
	}
	return ops, nil
}

// ParseString is Parse over a string.
func ParseString(s string) ([]Op, error) { return Parse(strings.NewReader(s)) }

// tokenize splits on blanks. Double-quoted tokens follow Go string literal
// escapes; an unquoted '#' ends the line.
func tokenize(line string) ([]string, error) {
	var out []string
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '#':
			return out, nil
		case c == '"':
			j := i + 1
			for ; j < len(line); j++ {
				if line[j] == '\\' {
					j++
					continue
				}
				if line[j] == '"' {
					break
				}
			}
			if j >= len(line) {
				return nil, ErrUnterminated
			}
			s, err := strconv.Unquote(line[i : j+1])
			if err != nil {
				return nil, fmt.Errorf("%w: %s", ErrBadArgument, line[i:j+1])
			}
			out = append(out, s)
			i = j + 1
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' {
				j++
			}
			out = append(out, line[i:j])
			i = j
		}
	}
	return out, nil
}
