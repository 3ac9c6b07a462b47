package oc

import (
	"math/rand"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
)

// permutationBound caps exhaustive permutation search inside one
// zero-equivalence class; larger classes fall back to a single random
// cycle order.
const permutationBound = 5

// defaultRCSSeed is the fixed seed used when callers pass seed==0, keeping
// the fallback permutation reproducible by default.
const defaultRCSSeed int64 = 1

// RCSConstrainer emits the relative constraint system: bounds already
// present in the source zone are skipped, so only the constraints that
// actually differ between source and target are emitted. Cycle orders
// inside each zero-equivalence class are chosen to maximize reuse of the
// source's bounds. Has no on-the-fly mode.
type RCSConstrainer struct {
	seq ops.Sequence
	rng *rand.Rand
}

// interface guard
var _ Constrainer = (*RCSConstrainer)(nil)

// NewRCSConstrainer creates a relative-constraint-system constrainer. The
// seed drives the fallback permutation for oversized equivalence classes;
// seed==0 selects a fixed default so results stay reproducible.
func NewRCSConstrainer(seed int64) *RCSConstrainer {
	if seed == 0 {
		seed = defaultRCSSeed
	}
	c := &RCSConstrainer{rng: rand.New(rand.NewSource(seed))}
	c.Clear()

	return c
}

// Clear discards the current constraint sequence.
func (c *RCSConstrainer) Clear() { c.seq = ops.Sequence{} }

// Sequence returns the most recently derived constraint sequence.
func (c *RCSConstrainer) Sequence() ops.Sequence { return c.seq.Copy() }

// Update is unsupported for the relative constraint system.
func (c *RCSConstrainer) Update(Observation) (ops.Sequence, error) {
	return nil, ErrOnTheFlyUnsupported
}

// Generate derives the relative constraint system between the observation's
// source zone (the zone the constraints will be applied to) and its target.
func (c *RCSConstrainer) Generate(obs Observation) (ops.Sequence, error) {
	if obs.Init == nil {
		return nil, ErrMissingSource
	}
	if obs.Target == nil {
		return nil, ErrMissingTarget
	}
	c.seq = c.constrain(obs.Init, obs.Target)

	return c.seq, nil
}

func (c *RCSConstrainer) constrain(source, target *dbm.DBM) ops.Sequence {
	n := target.Size()

	// 1. Fixed edges: bounds identical in source and target need no
	// constraint.
	fixed := make(map[clockEdge]struct{})
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i != j && source.Matrix[i][j] == target.Matrix[i][j] {
				fixed[clockEdge{from: i, to: j}] = struct{}{}
			}
		}
	}

	classes := ZeroEquivalenceClasses(target)
	emit := make([]clockEdge, 0)

	// 2. Inter-class edges: reuse a fixed edge between the classes when one
	// exists, otherwise connect the representatives.
	for i = range classes {
		for j = range classes {
			if i == j {
				continue
			}
			if _, ok := firstFixedBetween(fixed, classes[i], classes[j]); !ok {
				emit = append(emit, clockEdge{from: classes[i][0], to: classes[j][0]})
			}
		}
	}

	// 3. Intra-class cycles: pick the cycle order reusing the most fixed
	// edges. Small classes are searched exhaustively; larger ones get a
	// single random order.
	for i = range classes {
		if len(classes[i]) <= 1 {
			continue
		}
		var orders [][]int
		if len(classes[i]) <= permutationBound {
			orders = permutations(classes[i])
		} else {
			orders = [][]int{c.randomOrder(classes[i])}
		}

		best := -1
		var bestNonfixed []clockEdge
		for _, order := range orders {
			fixedCount := 0
			nonfixed := make([]clockEdge, 0, len(order))
			for _, e := range cycleEdges(order) {
				if _, ok := fixed[e]; ok {
					fixedCount++
				} else {
					nonfixed = append(nonfixed, e)
				}
			}
			if fixedCount > best {
				best = fixedCount
				bestNonfixed = nonfixed
			}
		}
		emit = append(emit, bestNonfixed...)
	}

	// 4. Emit the finite non-fixed edges and close if any bound was left
	// implicit.
	seq := ops.Sequence{}
	for _, e := range emit {
		if target.Matrix[e.from][e.to].Val != dbm.Inf {
			seq = seq.Append(constraintOp(target, e.from, e.to))
		}
	}

	return appendCloseIfNeeded(seq, target)
}

// firstFixedBetween returns the first fixed edge from a member of class a to
// a member of class b, scanning members in class order.
func firstFixedBetween(fixed map[clockEdge]struct{}, a, b []int) (clockEdge, bool) {
	for _, from := range a {
		for _, to := range b {
			e := clockEdge{from: from, to: to}
			if _, ok := fixed[e]; ok {
				return e, true
			}
		}
	}

	return clockEdge{}, false
}

// randomOrder returns a shuffled copy of the class members.
func (c *RCSConstrainer) randomOrder(class []int) []int {
	order := make([]int, len(class))
	copy(order, class)
	c.rng.Shuffle(len(order), func(a, b int) {
		order[a], order[b] = order[b], order[a]
	})

	return order
}
