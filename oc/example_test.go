// Package oc_test provides runnable examples for the approximate-and-
// constrain pipeline, each verifiable via "go test -run Example".
package oc_test

import (
	"fmt"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/oc"
	"github.com/katalvlaran/zoneseq/ops"
)

// ExampleReconstructor_Reconstruct demonstrates the default pipeline:
// sequence-based approximation followed by the minimal constraint system.
// Complexity: O(trace + clocks³) for one reconstruction.
func ExampleReconstructor_Reconstruct() {
	// 1) Start from the all-zero zone over two clocks.
	source, err := dbm.New([]string{"x", "y"}, true)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 2) The observed trace: x reset to 3, y to 0, then y bounded by 4.
	trace := ops.Sequence{
		ops.Reset("x", 3),
		ops.DelayFuture(),
		ops.Reset("y", 0),
		ops.DelayFuture(),
		ops.Constraint("y", "", dbm.LE, 4),
		ops.Close(),
	}

	// 3) The target zone is what the trace produced.
	target, err := trace.Apply(source)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 4) Reconstruct with the default strategies (O(SEQ) + C(MCS)).
	r, err := oc.NewReconstructor(source)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res, err := r.Reconstruct(oc.Observation{Init: source, Target: target, SeqFull: trace})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 5) The combined sequence reproduces the target from the source zone.
	fmt.Println(res.Sequence)
	fmt.Println("reaches target:", res.DBM.Equal(target))
	// Output:
	// Reset(x,3)
	// DelayFuture()
	// Reset(y,0)
	// DelayFuture()
	// Constraint(,x,<=,-3)
	// Constraint(,y,<=,0)
	// Constraint(y,,<=,4)
	// Constraint(y,x,<=,-3)
	// reaches target: true
}
