package dbm

// Graph is a weighted directed graph view over a DBM: one node per clock,
// one edge per finite off-diagonal entry, edge weight = entry value. The
// zone-based approximator builds its value graph through MakeGraph and then
// mutates edge weights freely without affecting the source matrix.
type Graph struct {
	Nodes  []*GraphNode
	byName map[string]*GraphNode
}

// GraphNode is a named graph vertex with explicit in/out edge lists.
type GraphNode struct {
	Name string
	Out  []*GraphEdge
	In   []*GraphEdge
}

// GraphEdge is a directed weighted edge between two nodes. Weight is mutable
// so callers can rewrite bounds on the view.
type GraphEdge struct {
	From   *GraphNode
	To     *GraphNode
	Weight int64
}

// MakeGraph builds the graph view of the zone. Infinite entries produce no
// edge; NegInf entries (from a negated zone) keep their sentinel weight and
// are left to the caller's path arithmetic to reject.
func (d *DBM) MakeGraph() *Graph {
	n := d.Size()
	g := &Graph{
		Nodes:  make([]*GraphNode, 0, n),
		byName: make(map[string]*GraphNode, n),
	}
	for _, name := range d.Clocks {
		node := &GraphNode{Name: name}
		g.Nodes = append(g.Nodes, node)
		g.byName[name] = node
	}

	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i == j || d.Matrix[i][j].Val == Inf {
				continue
			}
			e := &GraphEdge{
				From:   g.Nodes[i],
				To:     g.Nodes[j],
				Weight: d.Matrix[i][j].Val,
			}
			g.Nodes[i].Out = append(g.Nodes[i].Out, e)
			g.Nodes[j].In = append(g.Nodes[j].In, e)
		}
	}

	return g
}

// Node resolves a node by clock name, nil when absent.
func (g *Graph) Node(name string) *GraphNode { return g.byName[name] }
