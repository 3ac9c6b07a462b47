package seqgen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
)

// Sentinel errors of the generator.
var (
	// ErrMissingSource is returned when no initial zone is supplied.
	ErrMissingSource = errors.New("seqgen: initial zone is nil")

	// ErrLengthTooShort is returned when the targeted length cannot hold
	// the requested initial all-zero-reset block.
	ErrLengthTooShort = errors.New("seqgen: targeted length shorter than init block")
)

// defaultSeed is the fixed seed used when callers pass seed==0, keeping
// generation reproducible by default.
const defaultSeed int64 = 1

// unboundedDelaySpan widens an unbounded clock's sampling range above its
// lower bound.
const unboundedDelaySpan = 20

// Options configures a Generator.
type Options struct {
	// Length is the targeted sequence length; generation stops at the
	// first block boundary at or beyond it.
	Length int

	// NonZeroResets allows resets to random values in [0,10] instead of
	// only zero.
	NonZeroResets bool

	// IncludeInit prepends a block resetting every clock to zero.
	IncludeInit bool

	// Seed drives the random choices; 0 selects a fixed default.
	Seed int64
}

// DefaultOptions returns the defaults: length 20, non-zero resets allowed,
// no init block, fixed seed.
func DefaultOptions() Options {
	return Options{Length: 20, NonZeroResets: true}
}

// Generator produces random valid operation sequences over the clocks of an
// initial zone. Every emitted constraint is consistent with the zone the
// prefix has produced, so the sequence never empties the zone.
type Generator struct {
	opts Options
	init *dbm.DBM
	rng  *rand.Rand

	zone *dbm.DBM
	seq  ops.Sequence
}

// NewGenerator creates a generator over the given initial zone.
func NewGenerator(init *dbm.DBM, opts Options) (*Generator, error) {
	if init == nil {
		return nil, ErrMissingSource
	}
	seed := opts.Seed
	if seed == 0 {
		seed = defaultSeed
	}

	return &Generator{
		opts: opts,
		init: init,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

// Generate produces one random sequence and returns it together with the
// zone it produces when applied to the initial zone.
func (g *Generator) Generate() (ops.Sequence, *dbm.DBM, error) {
	g.zone = g.init.Copy()
	g.seq = ops.Sequence{}

	if g.opts.IncludeInit {
		if err := g.appendInitBlock(); err != nil {
			return nil, nil, err
		}
	}

	// Runs alternate location and edge blocks, starting in a location.
	if err := g.appendLocationBlock(); err != nil {
		return nil, nil, err
	}
	for len(g.seq) < g.opts.Length {
		if err := g.appendEdgeBlock(); err != nil {
			return nil, nil, err
		}
		if err := g.appendLocationBlock(); err != nil {
			return nil, nil, err
		}
	}

	return g.seq.Copy(), g.zone.Copy(), nil
}

// appendInitBlock resets every clock to zero.
func (g *Generator) appendInitBlock() error {
	if g.init.Size()-1 > g.opts.Length {
		return fmt.Errorf("%w: %d clocks, length %d",
			ErrLengthTooShort, g.init.Size()-1, g.opts.Length)
	}
	for _, clock := range g.init.Clocks[1:] {
		if err := g.emit(ops.Reset(clock, 0)); err != nil {
			return err
		}
	}

	return nil
}

// appendEdgeBlock emits an optional guard run followed by an optional reset
// run, the shape of a timed-automaton edge.
func (g *Generator) appendEdgeBlock() error {
	if g.coin() {
		guards := 0
		for _, clock := range g.sampleClocks() {
			if len(g.seq) > g.opts.Length-2 {
				break
			}
			_, high, err := g.clockRange(clock)
			if err != nil {
				return err
			}
			// Guard clock ≥ v, rendered against the reference clock.
			v := g.intBetween(0, high)
			if err = g.emit(ops.Constraint("", clock, dbm.LE, -v)); err != nil {
				return err
			}
			guards++
		}
		if guards > 0 && len(g.seq) <= g.opts.Length-1 {
			if err := g.emit(ops.Close()); err != nil {
				return err
			}
		}
	}

	if g.coin() {
		for _, clock := range g.sampleClocks() {
			if len(g.seq) > g.opts.Length-1 {
				break
			}
			var v int64
			if g.opts.NonZeroResets {
				v = g.intBetween(0, 10)
			}
			if err := g.emit(ops.Reset(clock, v)); err != nil {
				return err
			}
		}
	}

	return nil
}

// appendLocationBlock emits an optional delay followed by an optional
// invariant run, the shape of a timed-automaton location.
func (g *Generator) appendLocationBlock() error {
	if g.coin() && len(g.seq) <= g.opts.Length-1 {
		if err := g.emit(ops.DelayFuture()); err != nil {
			return err
		}
	}

	if g.coin() {
		invariants := 0
		for _, clock := range g.sampleClocks() {
			if len(g.seq) > g.opts.Length-2 {
				break
			}
			low, high, err := g.clockRange(clock)
			if err != nil {
				return err
			}
			// Invariant clock ≤ v for some admissible v.
			v := g.intBetween(low, high)
			if err = g.emit(ops.Constraint(clock, "", dbm.LE, v)); err != nil {
				return err
			}
			invariants++
		}
		if invariants > 0 && len(g.seq) <= g.opts.Length-1 {
			if err := g.emit(ops.Close()); err != nil {
				return err
			}
		}
	}

	return nil
}

// emit applies one operation to the running zone and appends it to the
// sequence.
func (g *Generator) emit(op ops.Op) error {
	zone, err := ops.Sequence{op}.Apply(g.zone)
	if err != nil {
		return fmt.Errorf("seqgen: %s: %w", op, err)
	}
	g.zone = zone
	g.seq = g.seq.Append(op)

	return nil
}

// clockRange returns the admissible value range of a clock in the running
// zone; an unbounded clock gets a finite span above its lower bound.
func (g *Generator) clockRange(clock string) (low, high int64, err error) {
	iv, err := g.zone.Interval(clock)
	if err != nil {
		return 0, 0, fmt.Errorf("seqgen: %w", err)
	}
	low, high = iv.Low, iv.High
	if high == dbm.Inf {
		high = low + unboundedDelaySpan
	}

	return low, high, nil
}

// sampleClocks picks a random non-empty subset of the real clocks, order
// randomized.
func (g *Generator) sampleClocks() []string {
	clocks := make([]string, len(g.init.Clocks)-1)
	copy(clocks, g.init.Clocks[1:])
	g.rng.Shuffle(len(clocks), func(a, b int) {
		clocks[a], clocks[b] = clocks[b], clocks[a]
	})

	return clocks[:1+g.rng.Intn(len(clocks))]
}

// intBetween returns a uniform value in [low, high]; a degenerate range
// collapses to low.
func (g *Generator) intBetween(low, high int64) int64 {
	if high <= low {
		return low
	}

	return low + g.rng.Int63n(high-low+1)
}

// coin returns a fair random boolean.
func (g *Generator) coin() bool { return g.rng.Intn(2) == 0 }
