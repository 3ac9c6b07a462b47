package trivial

import (
	"errors"
	"fmt"
	"time"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
)

// Sentinel errors of the baseline reconstructor.
var (
	// ErrMissingSource is returned when no source zone is supplied.
	ErrMissingSource = errors.New("trivial: source zone is nil")

	// ErrMissingTrace is returned when no observed trace is supplied.
	ErrMissingTrace = errors.New("trivial: observed operation trace is nil")
)

// Measures reports the cost of one baseline reconstruction.
type Measures struct {
	Length    int           // operations in the replayed sequence
	GenTime   time.Duration // time to assemble the sequence
	ApplyTime time.Duration // time to apply it to the source zone
	Total     time.Duration
}

// Result carries a finished baseline reconstruction.
type Result struct {
	DBM      *dbm.DBM
	Sequence ops.Sequence
	Measures Measures
}

// Reconstructor replays observed traces verbatim. In on-the-fly mode the
// running sequence grows by each increment; otherwise every call starts
// over from the full trace.
type Reconstructor struct {
	onTheFly bool
	seqRec   ops.Sequence
}

// NewReconstructor creates a baseline reconstructor.
func NewReconstructor(onTheFly bool) *Reconstructor {
	r := &Reconstructor{onTheFly: onTheFly}
	r.Clear()

	return r
}

// Clear discards the running sequence.
func (r *Reconstructor) Clear() { r.seqRec = ops.Sequence{} }

// Sequence returns the current reconstruction sequence.
func (r *Reconstructor) Sequence() ops.Sequence { return r.seqRec.Copy() }

// Generate replaces the running sequence by a copy of the full trace.
func (r *Reconstructor) Generate(seqFull ops.Sequence) (ops.Sequence, error) {
	if seqFull == nil {
		return nil, ErrMissingTrace
	}
	r.seqRec = seqFull.Copy()

	return r.seqRec, nil
}

// Update extends the running sequence by the trace increment.
func (r *Reconstructor) Update(seqIncr ops.Sequence) (ops.Sequence, error) {
	if seqIncr == nil {
		return nil, ErrMissingTrace
	}
	r.seqRec = r.seqRec.Concat(seqIncr)

	return r.seqRec, nil
}

// Reconstruct assembles the replay sequence (full trace, or increment in
// on-the-fly mode), applies it to a copy of the source zone and reports the
// measured costs.
func (r *Reconstructor) Reconstruct(source *dbm.DBM, seq ops.Sequence) (*Result, error) {
	if source == nil {
		return nil, ErrMissingSource
	}

	start := time.Now()
	var rec ops.Sequence
	var err error
	if r.onTheFly {
		rec, err = r.Update(seq)
	} else {
		rec, err = r.Generate(seq)
	}
	if err != nil {
		return nil, err
	}
	genTime := time.Since(start)

	start = time.Now()
	out, err := rec.Apply(source)
	if err != nil {
		return nil, fmt.Errorf("trivial: Reconstruct: %w", err)
	}
	applyTime := time.Since(start)

	return &Result{
		DBM:      out,
		Sequence: rec,
		Measures: Measures{
			Length:    len(rec),
			GenTime:   genTime,
			ApplyTime: applyTime,
			Total:     genTime + applyTime,
		},
	}, nil
}
