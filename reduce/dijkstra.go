package reduce

import (
	"container/heap"
	"math"

	"github.com/katalvlaran/zoneseq/trans"
)

// dijkstra is the single-source shortest path search over the reduction
// graph. Every edge weighs 1, so the shortest path is the one with the
// fewest transformations. The queue uses the lazy decrease-key pattern:
// improved distances push duplicates and stale entries are skipped when
// popped.
type dijkstra struct {
	nodes   []*gNode
	dist    []int64
	prev    []int            // predecessor node index, -1 if none
	via     []gEdge          // edge taken into each node on the best path
	visited []bool
	pq      searchPQ
}

// newDijkstra prepares the search state with source at distance zero.
func newDijkstra(nodes []*gNode, source int) *dijkstra {
	d := &dijkstra{
		nodes:   nodes,
		dist:    make([]int64, len(nodes)),
		prev:    make([]int, len(nodes)),
		via:     make([]gEdge, len(nodes)),
		visited: make([]bool, len(nodes)),
		pq:      make(searchPQ, 0, len(nodes)),
	}
	for i := range d.dist {
		d.dist[i] = math.MaxInt64
		d.prev[i] = -1
	}
	d.dist[source] = 0
	heap.Init(&d.pq)
	heap.Push(&d.pq, &searchItem{node: source, dist: 0})

	return d
}

// run relaxes until the target is finalized or the queue drains.
func (d *dijkstra) run(target int) {
	for d.pq.Len() > 0 {
		item := heap.Pop(&d.pq).(*searchItem)
		u := item.node
		if d.visited[u] {
			continue // stale lazy entry
		}
		d.visited[u] = true
		if u == target {
			return
		}
		for _, e := range d.nodes[u].edges {
			nd := item.dist + 1
			if nd < d.dist[e.target] {
				d.dist[e.target] = nd
				d.prev[e.target] = u
				d.via[e.target] = e
				heap.Push(&d.pq, &searchItem{node: e.target, dist: nd})
			}
		}
	}
}

// path reconstructs the transformation sequence into target, in order.
// Returns an empty slice when target is the source or unreachable.
func (d *dijkstra) path(target int) []trans.Transformation {
	var out []trans.Transformation
	for cur := target; d.prev[cur] != -1; cur = d.prev[cur] {
		out = append(out, d.via[cur].t)
	}
	// Reverse: the walk above collected edges target-first.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	if out == nil {
		out = []trans.Transformation{}
	}

	return out
}

// searchItem is one priority queue entry.
type searchItem struct {
	node int
	dist int64
}

// searchPQ is a min-heap of *searchItem ordered by distance.
type searchPQ []*searchItem

func (pq searchPQ) Len() int            { return len(pq) }
func (pq searchPQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq searchPQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *searchPQ) Push(x interface{}) { *pq = append(*pq, x.(*searchItem)) }
func (pq *searchPQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]

	return item
}
