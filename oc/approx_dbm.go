package oc

import (
	"sort"

	"github.com/katalvlaran/zoneseq/dbm"
	"github.com/katalvlaran/zoneseq/ops"
)

// DBMApproximator derives the approximation sequence from the target zone
// itself: the negated, transposed target describes the region of admissible
// reset values, and a depth-first search over its value graph yields a reset
// order under which every intermediate zone stays non-empty. Has no
// on-the-fly mode.
type DBMApproximator struct {
	seq ops.Sequence
}

// interface guard
var _ Approximator = (*DBMApproximator)(nil)

// NewDBMApproximator creates a zone-based approximator.
func NewDBMApproximator() *DBMApproximator {
	a := &DBMApproximator{}
	a.Clear()

	return a
}

// Clear discards the current approximation sequence.
func (a *DBMApproximator) Clear() { a.seq = ops.Sequence{} }

// Sequence returns the most recently derived approximation sequence.
func (a *DBMApproximator) Sequence() ops.Sequence { return a.seq.Copy() }

// Update is unsupported: the zone-based derivation always needs the full
// target.
func (a *DBMApproximator) Update(Observation) (ops.Sequence, error) {
	return nil, ErrOnTheFlyUnsupported
}

// Generate derives the approximation sequence from the observation's target
// zone.
func (a *DBMApproximator) Generate(obs Observation) (ops.Sequence, error) {
	if obs.Target == nil {
		return nil, ErrMissingTarget
	}
	seq, err := ApproximateViaTarget(obs.Target)
	if err != nil {
		return nil, err
	}
	a.seq = seq

	return a.seq, nil
}

// ApproximateViaTarget derives a reset/delay sequence whose application to
// any zone yields an over-approximation of the target:
//
//  1. Negate and transpose the target into the value zone vDBM, whose entry
//     (i,j) bounds the difference of the reset values of clocks j and i.
//  2. Zero the reference row of the value zone (and the matching edges of
//     the value graph) to account for the trailing delay-future of each
//     reset step.
//  3. Derive a partial reset order from zero-weight node-pair cycles and its
//     transitive closure; the order guides the search's successor choice.
//  4. Search the value graph for a path visiting every node on which every
//     prefix weight sum is non-negative; the path is a feasible reset order.
//  5. Release the upper-triangle entries along the path (a clock reset later
//     cannot be bounded from above by one reset earlier), close the value
//     zone, and read off each clock's reset value as the lower end of its
//     admissible interval, in reverse path order.
//
// Every reset is followed by a delay-future. Returns
// ErrNoApproximationPath when step 4 finds no admissible order.
func ApproximateViaTarget(target *dbm.DBM) (ops.Sequence, error) {
	n := target.Size()
	vdbm := target.Copy().Negate().Transpose()

	// 1-2. Value graph with the reference row zeroed, on the matrix and on
	// its graph view alike.
	vgraph := vdbm.MakeGraph()
	ref := vgraph.Node(dbm.RefClock)
	for _, e := range ref.Out {
		e.Weight = 0
	}
	for i := 0; i < n; i++ {
		vdbm.Matrix[0][i] = dbm.Entry{Val: 0, Rel: dbm.LE}
	}

	// 3. Partial order from zero-weight pair cycles, transitively closed.
	ord := resetOrder(vdbm)

	// 4. All-positive-prefix path over the value graph, starting at the
	// reference node.
	path := posPrefixPath(vgraph, ref, ord, 0, make([]int, 0, n))
	if path == nil {
		return nil, ErrNoApproximationPath
	}
	pathIdx := make([]int, len(path))
	for i, node := range path {
		idx, err := vdbm.ClockIndex(node)
		if err != nil {
			return nil, err
		}
		pathIdx[i] = idx
	}

	// 5. Release upper-triangle entries along the path, close, extract
	// interval lower bounds in reverse path order.
	var p, q int
	for p = 1; p < len(pathIdx); p++ {
		for q = p; q < len(pathIdx); q++ {
			if pathIdx[p] != pathIdx[q] {
				vdbm.Matrix[pathIdx[p]][pathIdx[q]] = dbm.Entry{Val: dbm.Inf, Rel: dbm.LT}
			}
		}
	}
	vdbm.Close()

	seq := ops.Sequence{}
	for p = len(pathIdx) - 1; p >= 1; p-- {
		iv, err := vdbm.Interval(vdbm.Clocks[pathIdx[p]])
		if err != nil {
			return nil, err
		}
		seq = seq.Append(
			ops.Reset(target.Clocks[pathIdx[p]], iv.Low),
			ops.DelayFuture(),
		)
	}

	return seq, nil
}

// ApproximateZeroResets is the restricted variant that only resets clocks to
// zero: clocks are ordered by the number of positive entries in their target
// column (fewest first, index order breaking ties), each reset followed by a
// delay-future.
func ApproximateZeroResets(target *dbm.DBM) ops.Sequence {
	n := target.Size()
	type colCount struct {
		clock int
		count int
	}
	counts := make([]colCount, 0, n-1)

	var c, i int
	for c = 1; c < n; c++ {
		cc := colCount{clock: c}
		for i = 0; i < n; i++ {
			if target.Matrix[i][c].Val > 0 {
				cc.count++
			}
		}
		counts = append(counts, cc)
	}
	sort.SliceStable(counts, func(a, b int) bool { return counts[a].count < counts[b].count })

	seq := ops.Sequence{}
	for _, cc := range counts {
		seq = seq.Append(ops.Reset(target.Clocks[cc.clock], 0), ops.DelayFuture())
	}

	return seq
}

// resetOrder derives the known-order adjacency matrix from the value zone:
// ord[i][j] holds when the pair cycle i→j→i has weight sum zero with the
// forward bound non-positive, meaning clock i's value cannot exceed clock
// j's. The relation is closed transitively.
func resetOrder(vdbm *dbm.DBM) [][]bool {
	n := vdbm.Size()
	ord := make([][]bool, n)
	for i := range ord {
		ord[i] = make([]bool, n)
	}

	var i, j, k int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			if vdbm.Matrix[i][j].Val <= 0 && vdbm.Matrix[j][i].Val >= 0 {
				ord[i][j] = true
			}
		}
	}
	for k = 0; k < n; k++ {
		for i = 0; i < n; i++ {
			if !ord[i][k] {
				continue
			}
			for j = 0; j < n; j++ {
				if ord[k][j] {
					ord[i][j] = true
				}
			}
		}
	}

	return ord
}

// posPrefixPath searches depth-first for a path visiting every graph node on
// which every prefix weight sum stays non-negative. Successors already
// ordered below the current node by ord are preferred; the search still
// backtracks over all of them, so the ordering only steers which admissible
// path is found first. Returns the node names in path order, or nil.
func posPrefixPath(g *dbm.Graph, curr *dbm.GraphNode, ord [][]bool, pathSum int64, visited []int) []string {
	visited = append(visited, nodeIndex(g, curr))
	if len(visited) == len(g.Nodes) {
		names := make([]string, len(visited))
		for i, idx := range visited {
			names[i] = g.Nodes[idx].Name
		}
		return names
	}

	succ := orderedSuccessors(g, curr, ord)
	var sum int64
	for _, e := range succ {
		if containsIndex(visited, nodeIndex(g, e.From)) {
			continue
		}
		sum = addSaturating(pathSum, e.Weight)
		if sum < 0 {
			continue
		}
		if found := posPrefixPath(g, e.From, ord, sum, visited); found != nil {
			return found
		}
	}

	return nil
}

// orderedSuccessors returns the in-edges of curr, whose sources are the value
// graph's reachable successors, with ord-successors of curr first and the
// relative edge order preserved otherwise.
func orderedSuccessors(g *dbm.Graph, curr *dbm.GraphNode, ord [][]bool) []*dbm.GraphEdge {
	ci := nodeIndex(g, curr)
	succ := make([]*dbm.GraphEdge, len(curr.In))
	copy(succ, curr.In)
	sort.SliceStable(succ, func(a, b int) bool {
		return ord[ci][nodeIndex(g, succ[a].From)] && !ord[ci][nodeIndex(g, succ[b].From)]
	})

	return succ
}

func nodeIndex(g *dbm.Graph, node *dbm.GraphNode) int {
	for i, n := range g.Nodes {
		if n == node {
			return i
		}
	}

	return -1
}

func containsIndex(indices []int, idx int) bool {
	for _, v := range indices {
		if v == idx {
			return true
		}
	}

	return false
}

// addSaturating adds two path weights without overflowing the infinity
// sentinels: a NegInf operand pins the sum at NegInf, an Inf operand at Inf.
func addSaturating(a, b int64) int64 {
	if a == dbm.NegInf || b == dbm.NegInf {
		return dbm.NegInf
	}
	if a == dbm.Inf || b == dbm.Inf {
		return dbm.Inf
	}

	return a + b
}
