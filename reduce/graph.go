package reduce

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/zoneseq/trans"
)

// gEdge is a reduction-graph edge: applying t leads to the node at target.
// Nodes are arena indices, so the structure stays acyclic in memory even
// though the graph itself may contain cycles.
type gEdge struct {
	target int
	t      trans.Transformation
}

// gNode is one reduction-graph node: a distinct evaluation plus the edges
// leaving it. seen deduplicates edges, edges keeps insertion order for
// deterministic search behavior.
type gNode struct {
	eval  trans.Evaluation
	edges []gEdge
	seen  map[gEdge]struct{}
}

func (n *gNode) addEdge(e gEdge) {
	if _, dup := n.seen[e]; dup {
		return
	}
	n.seen[e] = struct{}{}
	n.edges = append(n.edges, e)
}

// projEntry records a stored projection: evaluations equal to projected on
// the given (sorted) index set may reuse edge as a shortcut.
type projEntry struct {
	variables []int
	projected trans.Evaluation
	edge      gEdge
}

// Graph is the shortest-path reductor. Nodes live in an arena addressed by
// index; evaluations resolves an evaluation key to its node. All state is
// per-run and rebuilt by Initialize.
type Graph struct {
	variableCount int
	nodes         []*gNode
	evaluations   map[string]int

	// projections is keyed by the projection identity (index set + projected
	// values); a later identical projection replaces the stored edge.
	projections map[string]projEntry
	projOrder   []string

	initial int
	current int

	search *dijkstra
}

// NewGraph creates an uninitialized graph reductor.
func NewGraph() *Graph { return &Graph{} }

// Initialize implements trans.Reductor.
func (r *Graph) Initialize(variableCount int, initial trans.Evaluation) {
	r.variableCount = variableCount
	r.nodes = r.nodes[:0]
	r.evaluations = make(map[string]int)
	r.projections = make(map[string]projEntry)
	r.projOrder = r.projOrder[:0]
	r.search = nil
	r.initial = r.node(initial)
	r.current = r.initial
}

// node returns the arena index for the evaluation, creating the node on
// first sight.
func (r *Graph) node(e trans.Evaluation) int {
	key := e.Key()
	if idx, ok := r.evaluations[key]; ok {
		return idx
	}
	idx := len(r.nodes)
	r.nodes = append(r.nodes, &gNode{eval: e, seen: make(map[gEdge]struct{})})
	r.evaluations[key] = idx

	return idx
}

// Record implements trans.Reductor. Beyond the literal replay edge it links
// every known evaluation that agrees with the pre-state on the cells the
// transformation actually depends on (everything it does not overwrite plus
// everything it reads), and re-attaches previously stored projection edges
// that the post-state satisfies.
func (r *Graph) Record(before trans.Evaluation, t trans.Transformation, after trans.Evaluation) {
	target := r.node(after)
	e := gEdge{target: target, t: t}
	r.nodes[r.current].addEdge(e)

	// Footprint of the edge: full variable set minus writes, plus reads.
	inSet := make(map[int]struct{}, r.variableCount)
	for i := 0; i < r.variableCount; i++ {
		inSet[i] = struct{}{}
	}
	for _, w := range t.WriteSet() {
		delete(inSet, w)
	}
	for _, rd := range t.ReadSet() {
		inSet[rd] = struct{}{}
	}
	variables := make([]int, 0, len(inSet))
	for i := 0; i < r.variableCount; i++ {
		if _, ok := inSet[i]; ok {
			variables = append(variables, i)
		}
	}
	projected := before.Project(variables)

	// Any node matching the footprint projection can take this edge too.
	for _, n := range r.nodes {
		if n.eval.ProjectionEqual(variables, projected) {
			n.addEdge(e)
		}
	}

	// The new state may satisfy projections stored for earlier edges.
	for _, key := range r.projOrder {
		p := r.projections[key]
		if after.ProjectionEqual(p.variables, p.projected) {
			r.nodes[target].addEdge(p.edge)
		}
	}

	key := projKey(variables, projected)
	if _, exists := r.projections[key]; !exists {
		r.projOrder = append(r.projOrder, key)
	}
	r.projections[key] = projEntry{variables: variables, projected: projected, edge: e}

	r.current = target
}

// Eliminate implements trans.Reductor: single-source shortest path from the
// initial to the current evaluation, unit edge weights.
func (r *Graph) Eliminate() {
	r.search = newDijkstra(r.nodes, r.initial)
	r.search.run(r.current)
}

// Path implements trans.Reductor.
func (r *Graph) Path() []trans.Transformation {
	if r.search == nil {
		return nil
	}

	return r.search.path(r.current)
}

// projKey builds the identity key of a projection: its sorted index set and
// projected values.
func projKey(variables []int, projected trans.Evaluation) string {
	var b strings.Builder
	b.WriteString(projected.Key())
	b.WriteByte('#')
	for _, v := range variables {
		b.WriteString(strconv.Itoa(v))
		b.WriteByte(',')
	}

	return b.String()
}

var _ trans.Reductor = (*Graph)(nil)
