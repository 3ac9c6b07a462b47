package trans

import (
	"strconv"
	"strings"
)

// Transformation maps an Evaluation to a fresh Evaluation and declares the
// exact vector index sets it consults and mutates. The read/write sets are
// what both reduction engines operate on; Info is pure metadata used only to
// re-render a transformation into an external operation.
type Transformation interface {
	// Apply transforms the evaluation and returns the result as a new
	// object; the input is never modified.
	Apply(Evaluation) Evaluation

	// ReadSet returns the ascending indices the transformation reads.
	ReadSet() []int

	// WriteSet returns the ascending indices the transformation writes.
	WriteSet() []int

	// Info returns the attached metadata record, nil if none.
	Info() *Info

	// SetInfo attaches a metadata record.
	SetInfo(*Info)
}

// Mapping is a single cell update function: given the values at a
// transformation entry's source indices it computes the target cell value.
type Mapping func(params []DBValue) DBValue

// StaticAssign returns the mapping that ignores its parameters and always
// yields v.
func StaticAssign(v DBValue) Mapping {
	return func([]DBValue) DBValue { return v }
}

// StaticAdd returns the mapping params[0] + adder.
func StaticAdd(adder DBValue) Mapping {
	return func(params []DBValue) DBValue { return params[0].Add(adder) }
}

// MinAssign returns the mapping min(v, params[0]).
func MinAssign(v DBValue) Mapping {
	return func(params []DBValue) DBValue {
		if v.Compare(params[0]) < 0 {
			return v
		}

		return params[0]
	}
}

// MinAdd is the mapping min(params[0], params[1] + params[2]), the min-plus
// relaxation step of DBM closure.
func MinAdd(params []DBValue) DBValue {
	sum := params[1].Add(params[2])
	if sum.Compare(params[0]) < 0 {
		return sum
	}

	return params[0]
}

// specEntry binds a mapping to a target cell and its source indices:
// evaluation[target] = mapping(evaluation[sources...]).
type specEntry struct {
	target  int
	sources []int
	fn      Mapping
}

// Simple is a transformation defined by a flat list of specification
// entries. All entries read from the input evaluation, so entry order does
// not affect reads; later entries writing the same target win.
type Simple struct {
	entries []specEntry
	info    *Info
}

// NewSimple creates an empty simple transformation; populate it with
// AddEntry.
func NewSimple() *Simple { return &Simple{} }

// AddEntry appends the update rule evaluation[target] = fn(sources values).
func (s *Simple) AddEntry(target int, sources []int, fn Mapping) {
	s.entries = append(s.entries, specEntry{target: target, sources: sources, fn: fn})
}

// Apply executes all entries against the input evaluation and returns the
// updated copy.
func (s *Simple) Apply(e Evaluation) Evaluation {
	out := e.Copy()
	params := make([]DBValue, 0, 4)
	for _, entry := range s.entries {
		params = params[:0]
		for _, src := range entry.sources {
			params = append(params, e.At(src))
		}
		out.Set(entry.target, entry.fn(params))
	}

	return out
}

// ReadSet returns the union of all entries' source indices.
func (s *Simple) ReadSet() []int {
	var all []int
	for _, entry := range s.entries {
		all = append(all, entry.sources...)
	}

	return sortedIndexSet(all)
}

// WriteSet returns the set of all entries' target indices.
func (s *Simple) WriteSet() []int {
	var all []int
	for _, entry := range s.entries {
		all = append(all, entry.target)
	}

	return sortedIndexSet(all)
}

// Info returns the attached metadata record.
func (s *Simple) Info() *Info { return s.info }

// SetInfo attaches a metadata record.
func (s *Simple) SetInfo(i *Info) { s.info = i }

// String renders the transformation entry list for diagnostics.
func (s *Simple) String() string {
	var b strings.Builder
	b.WriteString("[TRANSFORMATION] { ")
	for _, entry := range s.entries {
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(entry.target))
		b.WriteString(" = f(")
		for i, src := range entry.sources {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(src))
		}
		b.WriteString(") ")
	}
	b.WriteByte('}')

	return b.String()
}

// Compound is a transformation defined as an ordered list of inner
// transformations applied sequentially, each seeing its predecessor's
// result.
type Compound struct {
	transformations []Transformation
	info            *Info
}

// NewCompound creates an empty compound transformation; populate it with
// Add.
func NewCompound() *Compound { return &Compound{} }

// Add appends an inner transformation; nil is ignored.
func (c *Compound) Add(t Transformation) {
	if t != nil {
		c.transformations = append(c.transformations, t)
	}
}

// Apply runs the inner transformations in order on a copy of e.
func (c *Compound) Apply(e Evaluation) Evaluation {
	out := e.Copy()
	for _, t := range c.transformations {
		out = t.Apply(out)
	}

	return out
}

// ReadSet returns the indices read from the compound's input: a later inner
// transformation's reads count only for cells not already written by an
// earlier one.
func (c *Compound) ReadSet() []int {
	written := make(map[int]struct{})
	var reads []int
	for _, t := range c.transformations {
		for _, r := range t.ReadSet() {
			if _, ok := written[r]; !ok {
				reads = append(reads, r)
			}
		}
		for _, w := range t.WriteSet() {
			written[w] = struct{}{}
		}
	}

	return sortedIndexSet(reads)
}

// WriteSet returns the union of all inner write sets.
func (c *Compound) WriteSet() []int {
	var writes []int
	for _, t := range c.transformations {
		writes = append(writes, t.WriteSet()...)
	}

	return sortedIndexSet(writes)
}

// Info returns the attached metadata record.
func (c *Compound) Info() *Info { return c.info }

// SetInfo attaches a metadata record.
func (c *Compound) SetInfo(i *Info) { c.info = i }

// String renders the inner transformation list for diagnostics.
func (c *Compound) String() string {
	parts := make([]string, 0, len(c.transformations)+2)
	parts = append(parts, "[TRANSFORMATION] {")
	for _, t := range c.transformations {
		if s, ok := t.(interface{ String() string }); ok {
			parts = append(parts, s.String())
		}
	}
	parts = append(parts, "}")

	return strings.Join(parts, " ")
}

// interface guards
var (
	_ Transformation = (*Simple)(nil)
	_ Transformation = (*Compound)(nil)
)
