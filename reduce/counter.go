package reduce

import "github.com/katalvlaran/zoneseq/trans"

// initialWriter is the virtual transformation id responsible for every
// vector cell before any recorded step.
const initialWriter = -1

// recorded pairs a transformation with a unique id so that two occurrences
// of the same transformation object in the sequence stay distinguishable.
type recorded struct {
	id int
	t  trans.Transformation
}

// Counter is the use-def elimination reductor. All maps below are per-run
// state, rebuilt by Initialize; nothing persists across reconstructions.
type Counter struct {
	nextID int

	transformations []recorded

	// counters associates a recorded transformation id with the number of
	// live dependents: cells it wrote that are still current plus recorded
	// steps that read one of its writes.
	counters map[int]int

	// responsibilities maps every vector cell index to the id of the
	// recorded transformation that last wrote it.
	responsibilities map[int]int

	// uses maps a recorded id to the set of ids it read from, i.e. the
	// transformations required for it to reproduce the same result.
	uses map[int][]int
}

// NewCounter creates an uninitialized counter reductor.
func NewCounter() *Counter { return &Counter{} }

// Initialize implements trans.Reductor. The virtual initial writer starts
// out responsible for all cells.
func (r *Counter) Initialize(variableCount int, _ trans.Evaluation) {
	r.nextID = 0
	r.transformations = r.transformations[:0]
	r.counters = map[int]int{initialWriter: variableCount}
	r.responsibilities = make(map[int]int, variableCount)
	r.uses = make(map[int][]int)
	for i := 0; i < variableCount; i++ {
		r.responsibilities[i] = initialWriter
	}
}

// Record implements trans.Reductor: credit every responsible writer of a
// read cell, then take over responsibility for the written cells.
func (r *Counter) Record(_ trans.Evaluation, t trans.Transformation, _ trans.Evaluation) {
	rec := recorded{id: r.nextID, t: t}
	r.nextID++
	r.transformations = append(r.transformations, rec)

	loci := make(map[int]struct{})
	for _, i := range t.ReadSet() {
		responsible := r.responsibilities[i]
		r.counters[responsible]++
		loci[responsible] = struct{}{}
	}
	use := make([]int, 0, len(loci))
	for id := range loci {
		use = append(use, id)
	}
	r.uses[rec.id] = use

	writes := t.WriteSet()
	for _, i := range writes {
		r.counters[r.responsibilities[i]]--
		r.responsibilities[i] = rec.id
	}
	r.counters[rec.id] = len(writes)
}

// Eliminate implements trans.Reductor: repeatedly drop any recorded
// transformation whose counter reached zero (no live reader depends on it),
// releasing the counters of everything it used, until a fixed point.
func (r *Counter) Eliminate() {
	for {
		fixpoint := true
		kept := r.transformations[:0]
		for _, rec := range r.transformations {
			if r.counters[rec.id] == 0 {
				for _, used := range r.uses[rec.id] {
					r.counters[used]--
				}
				fixpoint = false
				continue
			}
			kept = append(kept, rec)
		}
		r.transformations = kept
		if fixpoint {
			return
		}
	}
}

// Path implements trans.Reductor.
func (r *Counter) Path() []trans.Transformation {
	out := make([]trans.Transformation, len(r.transformations))
	for i, rec := range r.transformations {
		out[i] = rec.t
	}

	return out
}

var _ trans.Reductor = (*Counter)(nil)
