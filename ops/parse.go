package ops

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/zoneseq/dbm"
)

// Parse reads a sequence from the line-oriented wire format produced by
// Sequence.String. Blank lines are skipped. Each non-blank line must be one
// of Reset(clock,int), Constraint(c1,c2,rel,int), DelayFuture() or Close().
func Parse(text string) (Sequence, error) {
	var seq Sequence
	for ln, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		op, err := parseOp(line)
		if err != nil {
			return nil, fmt.Errorf("ops: Parse: line %d: %w", ln+1, err)
		}
		seq = append(seq, op)
	}

	return seq, nil
}

func parseOp(line string) (Op, error) {
	open := strings.IndexByte(line, '(')
	if open < 0 || !strings.HasSuffix(line, ")") {
		return Op{}, fmt.Errorf("%w: %q", ErrBadFormat, line)
	}
	name := line[:open]
	args := line[open+1 : len(line)-1]

	switch name {
	case "Reset":
		parts := strings.Split(args, ",")
		if len(parts) != 2 || parts[0] == "" {
			return Op{}, fmt.Errorf("%w: %q", ErrBadFormat, line)
		}
		val, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
		if err != nil {
			return Op{}, fmt.Errorf("%w: %q: bad value", ErrBadFormat, line)
		}

		return Reset(strings.TrimSpace(parts[0]), val), nil

	case "Constraint":
		parts := strings.Split(args, ",")
		if len(parts) != 4 {
			return Op{}, fmt.Errorf("%w: %q", ErrBadFormat, line)
		}
		var rel dbm.Rel
		switch strings.TrimSpace(parts[2]) {
		case "<":
			rel = dbm.LT
		case "<=":
			rel = dbm.LE
		default:
			return Op{}, fmt.Errorf("%w: %q: bad relation", ErrBadFormat, line)
		}
		val, err := strconv.ParseInt(strings.TrimSpace(parts[3]), 10, 64)
		if err != nil {
			return Op{}, fmt.Errorf("%w: %q: bad value", ErrBadFormat, line)
		}

		return Constraint(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), rel, val), nil

	case "DelayFuture":
		if args != "" {
			return Op{}, fmt.Errorf("%w: %q", ErrBadFormat, line)
		}

		return DelayFuture(), nil

	case "Close":
		if args != "" {
			return Op{}, fmt.Errorf("%w: %q", ErrBadFormat, line)
		}

		return Close(), nil
	}

	return Op{}, fmt.Errorf("%w: %q", ErrBadFormat, line)
}
