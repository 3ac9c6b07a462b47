package trans

import "fmt"

// Reductor is the dead-operation elimination contract. A reductor observes
// every transformation applied to a System and, on demand, yields the
// shortest sub-sequence it can prove to reproduce the final evaluation.
//
// Call order: Initialize once, Record once per applied step, Eliminate to
// (re)compute, Path to read the result. Record and Eliminate may alternate
// indefinitely; Path must return a fresh slice on every call. Reductor state
// is owned by a single reconstruction run and rebuilt per run.
type Reductor interface {
	// Initialize resets the reductor for a system with the given vector
	// size and initial evaluation.
	Initialize(variableCount int, initial Evaluation)

	// Record observes one applied step: before --transformation--> after.
	// A Record call invalidates previously computed paths.
	Record(before Evaluation, t Transformation, after Evaluation)

	// Eliminate computes the reduction, validating subsequent Path calls.
	Eliminate()

	// Path returns the reduced transformation sequence as a fresh slice.
	Path() []Transformation
}

// Identity is the trivial Reductor baseline: it removes nothing and returns
// the recorded sequence verbatim.
type Identity struct {
	transformations []Transformation
}

// NewIdentity creates an empty identity reductor.
func NewIdentity() *Identity { return &Identity{} }

// Initialize implements Reductor.
func (r *Identity) Initialize(int, Evaluation) { r.transformations = r.transformations[:0] }

// Record implements Reductor.
func (r *Identity) Record(_ Evaluation, t Transformation, _ Evaluation) {
	r.transformations = append(r.transformations, t)
}

// Eliminate implements Reductor; the identity reduction is a no-op.
func (r *Identity) Eliminate() {}

// Path implements Reductor.
func (r *Identity) Path() []Transformation {
	out := make([]Transformation, len(r.transformations))
	copy(out, r.transformations)

	return out
}

// System maintains a transformation sequence over evaluations of a fixed
// vector size, feeding every applied step to its Reductor so the reduced
// sequence can be requested at any point.
type System struct {
	variableCount int
	reductor      Reductor
	current       Evaluation
	transCount    int
	invalidated   bool
}

// NewSystem creates a system whose states are vectors of variableCount
// cells. A nil reductor falls back to the Identity baseline.
func NewSystem(variableCount int, r Reductor) *System {
	if r == nil {
		r = NewIdentity()
	}

	return &System{variableCount: variableCount, reductor: r, invalidated: true}
}

// NewEvaluation creates a zero evaluation of the system's vector size.
func (s *System) NewEvaluation() Evaluation { return NewEvaluation(s.variableCount) }

// VariableCount returns the vector size of a system state.
func (s *System) VariableCount() int { return s.variableCount }

// VariableSet returns the full index set 0..VariableCount-1 as a fresh
// slice, useful as the starting point for projections.
func (s *System) VariableSet() []int {
	out := make([]int, s.variableCount)
	for i := range out {
		out[i] = i
	}

	return out
}

// SetInitial starts (or restarts) the transformation sequence at the given
// evaluation and re-initializes the reductor.
func (s *System) SetInitial(initial Evaluation) {
	s.current = initial
	s.transCount = 0
	s.invalidated = true
	s.reductor.Initialize(s.variableCount, initial)
}

// Apply extends the sequence by applying t to the current evaluation and
// recording the step with the reductor.
func (s *System) Apply(t Transformation) {
	result := t.Apply(s.current)
	s.reductor.Record(s.current, t, result)
	s.current = result
	s.transCount++
	s.invalidated = true
}

// Current returns the evaluation at the end of the produced sequence.
func (s *System) Current() Evaluation { return s.current }

// TransformationCount returns the number of applied transformations.
func (s *System) TransformationCount() int { return s.transCount }

// Reductor exposes the underlying reductor; all reduction handling goes
// through the system, so use this only for diagnostics.
func (s *System) Reductor() Reductor { return s.reductor }

// ReducedPath returns the reduced transformation sequence, re-running the
// elimination only when new steps invalidated the previous result.
func (s *System) ReducedPath() []Transformation {
	if s.invalidated {
		s.reductor.Eliminate()
		s.invalidated = false
	}

	return s.reductor.Path()
}

// String reports basic statistics.
func (s *System) String() string {
	return fmt.Sprintf("[STATISTICS System] Executed Transformations: %d", s.transCount)
}
