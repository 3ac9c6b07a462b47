package rinast

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/zoneseq/trans"
)

// Sentinel errors returned by the rinast package.
var (
	// ErrVerification indicates that a replayed evaluation does not match
	// the expected one. Only raised by the explicit self-check paths.
	ErrVerification = errors.New("rinast: state verification failed")

	// ErrUnknownOperation indicates an operation kind the replay step does
	// not know how to translate into a transformation.
	ErrUnknownOperation = errors.New("rinast: unsupported operation kind")

	// ErrMissingTrace indicates that a reconstruction was requested without
	// the observed operation sequence it requires.
	ErrMissingTrace = errors.New("rinast: source sequence is required")

	// ErrMissingSource indicates a reconstruction without a source zone.
	ErrMissingSource = errors.New("rinast: source DBM is required")

	// ErrClockUnknown indicates a clock name with no vector index.
	ErrClockUnknown = errors.New("rinast: unknown clock name")
)

// resetKey identifies a memoized Reset transformation.
type resetKey struct {
	clock int
	val   int64
}

// constraintKey identifies a memoized Constraint transformation.
type constraintKey struct {
	clock1 int
	clock2 int
	value  trans.DBValue
}

// DBMSystem is a transformation system over difference bound matrices with
// a fixed clock count (including the implicit reference clock at index 0).
// A zone is flattened row-major into clockCount² vector cells; the last
// zone of the produced sequence is the system's current evaluation.
type DBMSystem struct {
	clockCount    int
	variableCount int

	resets      map[resetKey]*trans.Simple
	constraints map[constraintKey]*trans.Compound

	up     *trans.Simple
	urgent *trans.Simple

	system     *trans.System
	transCount int
}

// NewDBMSystem creates a DBM transformation system for the given clock
// count (reference clock included) wired to the given reductor; a nil
// reductor falls back to the trans.Identity baseline. The initial
// evaluation is the all-zero zone.
func NewDBMSystem(clockCount int, r trans.Reductor) *DBMSystem {
	s := &DBMSystem{
		clockCount:    clockCount,
		variableCount: clockCount * clockCount,
		resets:        make(map[resetKey]*trans.Simple),
		constraints:   make(map[constraintKey]*trans.Compound),
	}
	s.system = trans.NewSystem(s.variableCount, r)
	s.up = s.createUp()
	s.urgent = s.createUrgent()
	s.system.SetInitial(s.NewEvaluation())

	return s
}

// ClockCount returns the number of clocks including the reference clock.
func (s *DBMSystem) ClockCount() int { return s.clockCount }

// VariableCount returns clockCount², the flattened vector size.
func (s *DBMSystem) VariableCount() int { return s.variableCount }

// System exposes the underlying transformation system; needed only to reach
// reduction functionality.
func (s *DBMSystem) System() *trans.System { return s.system }

// TransformationCount returns how many transformations were applied.
func (s *DBMSystem) TransformationCount() int { return s.transCount }

// NewEvaluation returns the all-zero zone evaluation: every cell (0,<=).
func (s *DBMSystem) NewEvaluation() trans.Evaluation {
	e := s.system.NewEvaluation()
	e.Fill(trans.NewDBValue(0, true))

	return e
}

// Apply applies the transformation to the current evaluation.
func (s *DBMSystem) Apply(t trans.Transformation) {
	s.transCount++
	s.system.Apply(t)
}

// UpTransformation returns the shared delay-future transformation: every
// column-0 entry except the diagonal becomes unbounded.
func (s *DBMSystem) UpTransformation() *trans.Simple { return s.up }

// UrgentTransformation returns the shared urgent transformation: min-plus
// tightening of every off-diagonal pair through the reference clock.
func (s *DBMSystem) UrgentTransformation() *trans.Simple { return s.urgent }

// ResetTransformation returns the memoized transformation resetting the
// clock (vector row/column index) to the given constant.
func (s *DBMSystem) ResetTransformation(clock int, val int64) *trans.Simple {
	key := resetKey{clock: clock, val: val}
	if t, ok := s.resets[key]; ok {
		return t
	}
	t := s.createReset(clock, val)
	s.resets[key] = t

	return t
}

// ConstraintTransformation returns the memoized transformation imposing the
// upper bound value on clock1 − clock2.
func (s *DBMSystem) ConstraintTransformation(clock1, clock2 int, value trans.DBValue) *trans.Compound {
	key := constraintKey{clock1: clock1, clock2: clock2, value: value}
	if t, ok := s.constraints[key]; ok {
		return t
	}
	t := s.createConstraint(clock1, clock2, value)
	s.constraints[key] = t

	return t
}

// VerifyEvaluation compares the given evaluation to the system's current
// one, reporting both renderings on mismatch. Debug/verification path only.
func (s *DBMSystem) VerifyEvaluation(e trans.Evaluation) error {
	if e.Equal(s.system.Current()) {
		return nil
	}

	return fmt.Errorf("%w:\n%s\n\nshould be\n%s",
		ErrVerification, s.FormatEvaluation(s.system.Current()), s.FormatEvaluation(e))
}

// VerifyReconstructionPath replays the given transformation sequence on a
// fresh system and checks it reproduces the current evaluation.
func (s *DBMSystem) VerifyReconstructionPath(path []trans.Transformation) error {
	replay := trans.NewSystem(s.variableCount, nil)
	replay.SetInitial(s.NewEvaluation())
	for _, t := range path {
		replay.Apply(t)
	}
	if replay.Current().Equal(s.system.Current()) {
		return nil
	}

	return fmt.Errorf("%w: path replay diverged:\n%s\n\nshould be\n%s",
		ErrVerification, s.FormatEvaluation(replay.Current()), s.FormatEvaluation(s.system.Current()))
}

// FormatEvaluation renders a flattened zone evaluation as an aligned table,
// one matrix row per line.
func (s *DBMSystem) FormatEvaluation(e trans.Evaluation) string {
	width := 0
	for i := 0; i < s.variableCount; i++ {
		if l := len(e.At(i).String()); l > width {
			width = l
		}
	}
	width++

	var b strings.Builder
	for i := 0; i < s.variableCount; i++ {
		if i > 0 && i%s.clockCount == 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%*s", width, e.At(i).String())
	}

	return b.String()
}

// createUp builds the delay-future transformation: cells (i,0) for i≥1 are
// assigned the unbounded sentinel.
func (s *DBMSystem) createUp() *trans.Simple {
	infty := trans.StaticAssign(trans.NewDBValue(trans.Maximal, false))
	t := trans.NewSimple()
	for i := s.clockCount; i < s.variableCount; i += s.clockCount {
		t.AddEntry(i, nil, infty)
	}
	t.SetInfo(trans.UpInfo())

	return t
}

// createUrgent builds the urgent transformation: for every off-diagonal
// pair (i,top) not involving the reference clock,
// entry(i,top) := min(entry(i,top), entry(i,0) + entry(0,top)).
func (s *DBMSystem) createUrgent() *trans.Simple {
	t := trans.NewSimple()
	lft := s.clockCount
	for i := 1; i < s.clockCount; i++ {
		for top := 1; top < s.clockCount; top++ {
			if i == top {
				continue
			}
			index := lft + top
			t.AddEntry(index, []int{index, lft, top}, trans.MinAdd)
		}
		lft += s.clockCount
	}
	t.SetInfo(trans.UrgentInfo())

	return t
}

// createReset builds the reset-to-constant transformation: row and column
// of the clock are rewritten from row/column 0 offset by ±val, all other
// cells untouched.
func (s *DBMSystem) createReset(clock int, val int64) *trans.Simple {
	t := trans.NewSimple()
	neg := trans.StaticAdd(trans.NewDBValue(-val, true))
	pos := trans.StaticAdd(trans.NewDBValue(val, true))

	lft := 0                    // cell (top, 0)
	cln := clock                // cell (top, clock)
	row := clock * s.clockCount // cell (clock, top)
	for top := 0; top < s.clockCount; top++ {
		if top != clock {
			t.AddEntry(cln, []int{lft}, neg)
			t.AddEntry(row, []int{top}, pos)
		}
		lft += s.clockCount
		cln += s.clockCount
		row++
	}
	t.SetInfo(trans.ResetInfo(clock, val))

	return t
}

// createConstraint builds the constraint transformation: tighten cell
// (clock1,clock2), then propagate min-plus closure restricted to paths
// through clock1 and clock2 — two relaxations per cell, which is sufficient
// because only one entry changed.
func (s *DBMSystem) createConstraint(clock1, clock2 int, value trans.DBValue) *trans.Compound {
	compound := trans.NewCompound()

	first := trans.NewSimple()
	index := clock1*s.clockCount + clock2
	first.AddEntry(index, []int{index}, trans.MinAssign(value))
	compound.Add(first)

	ij := 0
	for i := 0; i < s.clockCount; i++ {
		ix := ij + clock1
		iy := ij + clock2
		xj := clock1 * s.clockCount
		yj := clock2 * s.clockCount
		for j := 0; j < s.clockCount; j++ {
			t := trans.NewSimple()
			t.AddEntry(ij, []int{ij, ix, xj}, trans.MinAdd)
			compound.Add(t)

			t = trans.NewSimple()
			t.AddEntry(ij, []int{ij, iy, yj}, trans.MinAdd)
			compound.Add(t)

			xj++
			yj++
			ij++
		}
	}
	compound.SetInfo(trans.ConstraintInfo(clock1, clock2, value))

	return compound
}
