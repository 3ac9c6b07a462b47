package dbm

import (
	"fmt"
	"strings"
)

// DBM is a difference bound matrix over an ordered clock list. Clocks[0] is
// always the static reference clock RefClock; callers supply only the real
// clocks and the reference is prepended automatically by New.
type DBM struct {
	// Clocks holds the ordered clock names, index 0 = reference clock.
	Clocks []string

	// Matrix holds the bounds; Matrix[i][j] constrains clock_i − clock_j.
	Matrix [][]Entry
}

// New constructs a DBM over the given real clock names (the reference clock
// is added at index 0). With zeroInit=true every entry is (0,<=) — the zone
// containing exactly the all-zero valuation. With zeroInit=false the zone is
// unconstrained: off-diagonal upper bounds are Inf, entries of row 0 are
// (0,<=) since no clock can fall below the reference.
func New(clocks []string, zeroInit bool) (*DBM, error) {
	if len(clocks) == 0 {
		return nil, ErrNoClocks
	}

	names := make([]string, 0, len(clocks)+1)
	names = append(names, RefClock)
	seen := make(map[string]struct{}, len(clocks)+1)
	seen[RefClock] = struct{}{}
	for _, c := range clocks {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateClock, c)
		}
		seen[c] = struct{}{}
		names = append(names, c)
	}

	n := len(names)
	m := make([][]Entry, n)
	var i, j int
	for i = 0; i < n; i++ {
		m[i] = make([]Entry, n)
		for j = 0; j < n; j++ {
			switch {
			case i == j || zeroInit:
				m[i][j] = Entry{Val: 0, Rel: LE}
			case i == 0:
				// Reference row: 0 − clock_j ≤ 0, clocks are non-negative.
				m[i][j] = Entry{Val: 0, Rel: LE}
			default:
				m[i][j] = Entry{Val: Inf, Rel: LT}
			}
		}
	}

	return &DBM{Clocks: names, Matrix: m}, nil
}

// Size returns the matrix dimension (real clocks + reference clock).
func (d *DBM) Size() int { return len(d.Clocks) }

// ClockIndex resolves a clock name to its matrix index. The empty name and
// RefClock both resolve to the reference clock at index 0.
func (d *DBM) ClockIndex(name string) (int, error) {
	if name == "" || name == RefClock {
		return 0, nil
	}
	for i, c := range d.Clocks {
		if c == name {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrClockNotFound, name)
}

// Copy returns a deep copy sharing no state with the receiver.
func (d *DBM) Copy() *DBM {
	n := d.Size()
	clocks := make([]string, n)
	copy(clocks, d.Clocks)
	m := make([][]Entry, n)
	for i := 0; i < n; i++ {
		m[i] = make([]Entry, n)
		copy(m[i], d.Matrix[i])
	}

	return &DBM{Clocks: clocks, Matrix: m}
}

// Negate negates every entry in place: values are negated (Inf maps to
// NegInf and vice versa) and finite comparators flip strictness, since the
// complement of x ≤ v is −x < −v. Returns the receiver for chaining.
func (d *DBM) Negate() *DBM {
	n := d.Size()
	var i, j int
	var e Entry
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			e = d.Matrix[i][j]
			switch e.Val {
			case Inf:
				d.Matrix[i][j] = Entry{Val: NegInf, Rel: LT}
			case NegInf:
				d.Matrix[i][j] = Entry{Val: Inf, Rel: LT}
			default:
				rel := LE
				if e.Rel == LE {
					rel = LT
				}
				d.Matrix[i][j] = Entry{Val: -e.Val, Rel: rel}
			}
		}
	}

	return d
}

// Transpose mirrors the matrix across the diagonal in place and returns the
// receiver for chaining.
func (d *DBM) Transpose() *DBM {
	n := d.Size()
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			d.Matrix[i][j], d.Matrix[j][i] = d.Matrix[j][i], d.Matrix[i][j]
		}
	}

	return d
}

// Close canonicalizes the zone in place: min-plus transitive closure so that
// every entry is the tightest implied bound. The loop order is fixed (k→i→j)
// for deterministic accumulation. Idempotent. Returns the receiver.
//
// Complexity: O(n³) time, O(1) extra space.
func (d *DBM) Close() *DBM {
	n := d.Size()
	var k, i, j int
	var ik, cand Entry
	for k = 0; k < n; k++ {
		for i = 0; i < n; i++ {
			ik = d.Matrix[i][k]
			if ik.Val == Inf {
				// No path through k can improve row i.
				continue
			}
			for j = 0; j < n; j++ {
				cand = ik.Add(d.Matrix[k][j])
				if cand.Less(d.Matrix[i][j]) {
					d.Matrix[i][j] = cand
				}
			}
		}
	}

	return d
}

// Equal reports structural equality: same clock list, same entries.
func (d *DBM) Equal(o *DBM) bool {
	if o == nil || d.Size() != o.Size() {
		return false
	}
	n := d.Size()
	var i, j int
	for i = 0; i < n; i++ {
		if d.Clocks[i] != o.Clocks[i] {
			return false
		}
		for j = 0; j < n; j++ {
			if d.Matrix[i][j] != o.Matrix[i][j] {
				return false
			}
		}
	}

	return true
}

// Interval extracts the admissible range of the named clock. The zone must
// be closed for the result to be tight: the upper bound is entry (c,0), the
// lower bound the negated entry (0,c).
func (d *DBM) Interval(name string) (Interval, error) {
	c, err := d.ClockIndex(name)
	if err != nil {
		return Interval{}, fmt.Errorf("dbm: Interval: %w", err)
	}
	up := d.Matrix[c][0]
	lo := d.Matrix[0][c]

	iv := Interval{High: up.Val, HighRel: up.Rel, LowRel: lo.Rel}
	if lo.Val == Inf {
		iv.Low = NegInf
	} else if lo.Val == NegInf {
		iv.Low = Inf
	} else {
		iv.Low = -lo.Val
	}

	return iv, nil
}

// String renders the matrix as an aligned table, one row per clock.
func (d *DBM) String() string {
	n := d.Size()
	width := 0
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if l := len(d.Matrix[i][j].String()); l > width {
				width = l
			}
		}
	}

	var b strings.Builder
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			fmt.Fprintf(&b, " %*s", width, d.Matrix[i][j].String())
		}
		b.WriteByte('\n')
	}

	return b.String()
}
