package trans

// Kind is the semantic class of a transformation, mirroring the UPPAAL
// operation set. It does not affect Apply semantics; it exists so a reduced
// transformation path can be rendered back into external operations.
type Kind uint8

const (
	// Up removes the upper bounds on all clocks (delay-future).
	Up Kind = iota

	// Urgent tightens all entries through the reference clock.
	Urgent

	// Reset sets a clock to a constant value.
	Reset

	// Constraint introduces a new clock constraint.
	Constraint
)

// Info is the metadata record attached to a transformation: its semantic
// kind plus the clock indices and bound involved. Clock indices refer to the
// owning DBM system's clock list (index 0 = reference clock).
type Info struct {
	Kind   Kind
	Clock1 int
	Clock2 int
	Value  DBValue
}

// UpInfo tags a transformation as the delay-future operation.
func UpInfo() *Info { return &Info{Kind: Up} }

// UrgentInfo tags a transformation as the urgent tightening operation.
func UrgentInfo() *Info { return &Info{Kind: Urgent} }

// ResetInfo tags a reset of the given clock to the given constant.
func ResetInfo(clock int, val int64) *Info {
	return &Info{Kind: Reset, Clock1: clock, Value: NewDBValue(val, true)}
}

// ConstraintInfo tags a constraint clock1 − clock2 (<|<=) value.
func ConstraintInfo(clock1, clock2 int, value DBValue) *Info {
	return &Info{Kind: Constraint, Clock1: clock1, Clock2: clock2, Value: value}
}
