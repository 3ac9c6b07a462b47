package oc

import (
	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
)

// clockEdge is a directed constraint edge between two clock indices of one
// zone.
type clockEdge struct {
	from int
	to   int
}

// ZeroEquivalenceClasses partitions the clocks of a zone (reference clock
// included) into classes whose members lie on a zero-weight pair cycle with
// the class representative: their mutual bounds fix their difference
// exactly. Classes and members keep ascending index order; the result
// covers every clock exactly once.
func ZeroEquivalenceClasses(d *dbm.DBM) [][]int {
	n := d.Size()
	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}

	classes := make([][]int, 0, n)
	var pair dbm.Entry
	for len(remaining) > 0 {
		rep := remaining[0]
		class := []int{rep}
		for _, c := range remaining[1:] {
			pair = d.Matrix[rep][c].Add(d.Matrix[c][rep])
			if pair.Val == 0 {
				class = append(class, c)
			}
		}

		classes = append(classes, class)
		remaining = removeAll(remaining, class)
	}

	return classes
}

// cycleEdges connects the given clocks into a single cycle in list order.
// Fewer than two clocks yield no edges.
func cycleEdges(clocks []int) []clockEdge {
	if len(clocks) <= 1 {
		return nil
	}
	edges := make([]clockEdge, 0, len(clocks))
	for i := 0; i < len(clocks)-1; i++ {
		edges = append(edges, clockEdge{from: clocks[i], to: clocks[i+1]})
	}

	return append(edges, clockEdge{from: clocks[len(clocks)-1], to: clocks[0]})
}

// permutations enumerates every ordering of the input via Heap's algorithm.
// Each returned slice is an independent copy.
func permutations(clocks []int) [][]int {
	work := make([]int, len(clocks))
	copy(work, clocks)
	out := make([][]int, 0)

	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			perm := make([]int, len(work))
			copy(perm, work)
			out = append(out, perm)
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				work[i], work[k-1] = work[k-1], work[i]
			} else {
				work[0], work[k-1] = work[k-1], work[0]
			}
		}
	}
	generate(len(work))

	return out
}

// removeAll drops every member of sub from list, preserving order. Both
// inputs are ascending, so a single merge pass suffices.
func removeAll(list, sub []int) []int {
	out := list[:0]
	si := 0
	for _, v := range list {
		if si < len(sub) && sub[si] == v {
			si++
			continue
		}
		out = append(out, v)
	}

	return out
}

// constraintOp renders the bound (i,j) of the zone as a constraint
// operation. The reference clock renders as the empty name.
func constraintOp(d *dbm.DBM, i, j int) ops.Op {
	e := d.Matrix[i][j]

	return ops.Constraint(externalClockName(d, i), externalClockName(d, j), e.Rel, e.Val)
}

// externalClockName maps a clock index to its wire-format name.
func externalClockName(d *dbm.DBM, idx int) string {
	if idx == 0 {
		return ""
	}

	return d.Clocks[idx]
}

// appendCloseIfNeeded appends a closing operation when the emitted
// constraints do not already cover every finite off-diagonal bound of the
// target: a partial constraint system relies on transitive closure to
// tighten the bounds it left out.
func appendCloseIfNeeded(seq ops.Sequence, target *dbm.DBM) ops.Sequence {
	n := target.Size()
	infCount := 0
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if target.Matrix[i][j].Val == dbm.Inf {
				infCount++
			}
		}
	}

	if len(seq) < n*(n-1)-infCount {
		seq = seq.Append(ops.Close())
	}

	return seq
}
