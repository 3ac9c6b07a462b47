// Package rinast_test provides runnable examples for trace replay with
// reduction, each verifiable via "go test -run Example".
package rinast_test

import (
	"fmt"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
	"github.com/katalvlaran/zoneseq/rinast"
)

// ExampleReconstructor_Reconstruct demonstrates eliminating dead operations
// from a redundant trace: both early resets and the first delay are
// overwritten before anything reads them, so only the final reset and delay
// survive.
func ExampleReconstructor_Reconstruct() {
	// 1) Start from the all-zero zone over one clock.
	source, err := dbm.New([]string{"x"}, true)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 2) A redundant trace: everything before Reset(x,2) is dead.
	trace := ops.Sequence{
		ops.Reset("x", 9),
		ops.Reset("x", 9),
		ops.DelayFuture(),
		ops.Reset("x", 2),
		ops.DelayFuture(),
	}

	// 3) Replay the trace through the transformation algebra and reduce it
	//    with the default graph-based engine.
	rec := rinast.NewReconstructor(source.Clocks, nil)
	res, err := rec.Reconstruct(source, trace)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	// 4) The reduced sequence reaches the same zone as the full trace.
	fmt.Println(res.Sequence)
	fmt.Println("length:", res.Measures.Length)
	// Output:
	// Reset(x,2)
	// DelayFuture()
	// length: 2
}
