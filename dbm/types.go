// Package dbm core types: entry comparators, bound values, sentinels and
// sentinel errors shared by all DBM operations.
package dbm

import (
	"errors"
	"math"
	"strconv"
)

// Sentinel errors returned by the dbm package.
var (
	// ErrNoClocks indicates that a DBM was requested with an empty clock list.
	ErrNoClocks = errors.New("dbm: clock list is empty")

	// ErrClockNotFound indicates that a named clock does not exist in the DBM.
	ErrClockNotFound = errors.New("dbm: clock not found")

	// ErrDuplicateClock indicates that the same clock name was supplied twice.
	ErrDuplicateClock = errors.New("dbm: duplicate clock name")
)

// RefClock is the name of the static reference clock at index 0.
// Its value is always zero; absolute bounds are expressed against it.
const RefClock = "T0_REF"

// Inf is the infinity sentinel: entry (i,j) == Inf means clock_i − clock_j
// is unbounded from above. NegInf is its additive inverse, produced by
// Negate and never present in a well-formed zone.
const (
	Inf    int64 = math.MaxInt64
	NegInf int64 = -math.MaxInt64
)

// Rel is the comparator of a DBM entry: strict (<) or non-strict (<=).
type Rel uint8

const (
	// LT is the strict comparator "<".
	LT Rel = iota

	// LE is the non-strict comparator "<=".
	LE
)

// String renders the comparator in the textual wire form.
func (r Rel) String() string {
	if r == LE {
		return "<="
	}

	return "<"
}

// Entry is a single DBM matrix cell: an upper bound (Val, Rel) on a clock
// difference. An infinite entry is always strict, an open infinity has no
// meaningful comparator.
type Entry struct {
	Val int64
	Rel Rel
}

// NewEntry constructs an Entry, normalizing the comparator of infinite
// values to strict.
func NewEntry(val int64, rel Rel) Entry {
	if val == Inf || val == NegInf {
		return Entry{Val: val, Rel: LT}
	}

	return Entry{Val: val, Rel: rel}
}

// Add combines two upper bounds min-plus style: values add (saturating as
// soon as either operand is infinite, Inf taking precedence) and the result
// stays non-strict only if both operands were non-strict.
func (e Entry) Add(o Entry) Entry {
	if e.Val == Inf || o.Val == Inf {
		return Entry{Val: Inf, Rel: LT}
	}
	if e.Val == NegInf || o.Val == NegInf {
		return Entry{Val: NegInf, Rel: LT}
	}
	rel := LT
	if e.Rel == LE && o.Rel == LE {
		rel = LE
	}

	return Entry{Val: e.Val + o.Val, Rel: rel}
}

// Less reports whether e is a strictly tighter bound than o.
// (v,<) is tighter than (v,<=); any finite value is tighter than Inf.
func (e Entry) Less(o Entry) bool {
	if e.Val != o.Val {
		return e.Val < o.Val
	}

	return e.Rel == LT && o.Rel == LE
}

// String renders the entry as "(v,<)" or "(v,<=)", with "inf"/"-inf" for the
// sentinels.
func (e Entry) String() string {
	var v string
	switch e.Val {
	case Inf:
		v = "inf"
	case NegInf:
		v = "-inf"
	default:
		v = strconv.FormatInt(e.Val, 10)
	}

	return "(" + v + "," + e.Rel.String() + ")"
}

// Interval is the admissible value range of a single clock in a closed zone:
// Low ≤/< clock ≤/< High. High == Inf means the clock is unbounded above.
type Interval struct {
	Low     int64
	High    int64
	LowRel  Rel // comparator on the lower bound (Low ≤ clock vs Low < clock)
	HighRel Rel // comparator on the upper bound
}
