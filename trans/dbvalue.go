package trans

import (
	"math"
	"strconv"
)

// Maximal is the infinity sentinel for DBValue: a cell holding Maximal
// carries no upper bound.
const Maximal int64 = math.MaxInt64

// DBValue is a single difference bound: an integer value and a comparator
// flag (NonStrict=true means "<=", false means "<"). Once Val reaches the
// Maximal sentinel the comparator is forced strict, an open infinity has no
// meaningful bound type.
type DBValue struct {
	Val       int64
	NonStrict bool
}

// NewDBValue constructs a DBValue, normalizing the comparator of the
// sentinel to strict.
func NewDBValue(val int64, nonStrict bool) DBValue {
	if val == Maximal {
		return DBValue{Val: Maximal, NonStrict: false}
	}

	return DBValue{Val: val, NonStrict: nonStrict}
}

// Add combines two bounds: values add, saturating at Maximal as soon as
// either operand is the sentinel, and the result stays non-strict only if
// both operands were non-strict.
func (v DBValue) Add(o DBValue) DBValue {
	if v.Val == Maximal || o.Val == Maximal {
		return DBValue{Val: Maximal, NonStrict: false}
	}

	return DBValue{Val: v.Val + o.Val, NonStrict: v.NonStrict && o.NonStrict}
}

// Compare orders bounds by tightness: negative when v is the smaller
// (tighter) bound, zero when equal, positive when v is larger. At equal
// values a strict bound is tighter than a non-strict one; the sentinel is
// larger than everything finite.
func (v DBValue) Compare(o DBValue) int {
	if v.Val == o.Val {
		switch {
		case v.NonStrict == o.NonStrict:
			return 0
		case v.NonStrict:
			return 1
		default:
			return -1
		}
	}
	if v.Val == Maximal {
		return 1
	}
	if o.Val == Maximal {
		return -1
	}
	if v.Val < o.Val {
		return -1
	}

	return 1
}

// String renders the bound as "(v,<)" or "(v,<=)", with "inf" for the
// sentinel.
func (v DBValue) String() string {
	s := "("
	if v.Val == Maximal {
		s += "inf"
	} else {
		s += strconv.FormatInt(v.Val, 10)
	}
	s += ",<"
	if v.NonStrict {
		s += "="
	}

	return s + ")"
}
