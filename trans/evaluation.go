package trans

import (
	"sort"
	"strconv"
	"strings"
)

// Evaluation is a flat vector of DBValues identifying one state of a
// transformation system. For a DBM system the vector holds the zone entries
// row-major, clock_count² cells in total.
//
// Fresh instances should be obtained from System.NewEvaluation so vector
// lengths cannot conflict.
type Evaluation struct {
	values []DBValue
}

// NewEvaluation creates a zero-valued evaluation of the given size.
func NewEvaluation(size int) Evaluation {
	return Evaluation{values: make([]DBValue, size)}
}

// Copy returns an independent copy of the evaluation.
func (e Evaluation) Copy() Evaluation {
	out := make([]DBValue, len(e.values))
	copy(out, e.values)

	return Evaluation{values: out}
}

// Size returns the number of vector cells.
func (e Evaluation) Size() int { return len(e.values) }

// At returns the value at index i.
func (e Evaluation) At(i int) DBValue { return e.values[i] }

// Set overwrites the value at index i.
func (e Evaluation) Set(i int, v DBValue) { e.values[i] = v }

// Fill sets every cell to v.
func (e Evaluation) Fill(v DBValue) {
	for i := range e.values {
		e.values[i] = v
	}
}

// Equal reports structural equality cell by cell.
func (e Evaluation) Equal(o Evaluation) bool {
	if len(e.values) != len(o.values) {
		return false
	}
	for i := range e.values {
		if e.values[i] != o.values[i] {
			return false
		}
	}

	return true
}

// Key returns a compact stable string identifying the evaluation, suitable
// as a map key. Two evaluations share a key iff they are Equal.
func (e Evaluation) Key() string {
	var b strings.Builder
	b.Grow(len(e.values) * 4)
	for _, v := range e.values {
		b.WriteString(strconv.FormatInt(v.Val, 36))
		if v.NonStrict {
			b.WriteByte('=')
		}
		b.WriteByte('|')
	}

	return b.String()
}

// Project returns a new evaluation holding only the cells at the given
// indices, taken in ascending index order. The index order supplied by the
// caller does not matter; duplicates are ignored.
func (e Evaluation) Project(indices []int) Evaluation {
	sorted := sortedIndexSet(indices)
	out := make([]DBValue, len(sorted))
	for i, idx := range sorted {
		out[i] = e.values[idx]
	}

	return Evaluation{values: out}
}

// ProjectionEqual reports whether the receiver's projection onto the given
// indices equals an already-projected evaluation, without materializing the
// projection.
func (e Evaluation) ProjectionEqual(indices []int, projected Evaluation) bool {
	sorted := sortedIndexSet(indices)
	if projected.Size() != len(sorted) {
		return false
	}
	for i, idx := range sorted {
		if e.values[idx] != projected.values[i] {
			return false
		}
	}

	return true
}

// String renders the evaluation as "[EVALUATION] { (v,<=) ... }".
func (e Evaluation) String() string {
	var b strings.Builder
	b.WriteString("[EVALUATION] { ")
	for _, v := range e.values {
		b.WriteString(v.String())
		b.WriteByte(' ')
	}
	b.WriteByte('}')

	return b.String()
}

// sortedIndexSet returns the ascending deduplicated copy of indices.
func sortedIndexSet(indices []int) []int {
	out := make([]int, len(indices))
	copy(out, indices)
	sort.Ints(out)
	n := 0
	for i, v := range out {
		if i > 0 && v == out[n-1] {
			continue
		}
		out[n] = v
		n++
	}

	return out[:n]
}
