package chemgraph

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// radius of the neighborhood used to build structural node strings.
const nodeStringDepth = 2

// Graph is an undirected graph with nodes 0..N-1 and an ordered list of pairs (edges).
// Graphs are immutable. Everything derived from the pairs is either built by New
// or computed once, on first use, behind a sync.Once, so a Graph can be shared by
// concurrent readers.
type Graph struct {
	n         int
	pairs     [][2]int
	neighbors [][]int
	pairIndex map[[2]int]int
	ug        *simple.UndirectedGraph

	pathsOnce sync.Once
	paths     path.AllShortest

	stringsOnce sync.Once
	nodeStrings []string
}

// key returns the unordered representation of the pair a,b
func key(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// New builds a graph with n nodes and the given pairs, in the given order.
// If n is negative, the number of nodes is taken as one more than the largest
// index in pairs. It returns an error wrapping ErrInvalidInput if a pair
// refers to a node out of range, joins a node with itself, or is repeated.
func New(pairs [][2]int, n int) (*Graph, error) {
	if n < 0 {
		n = 0
		for _, p := range pairs {
			if p[0]+1 > n {
				n = p[0] + 1
			}
			if p[1]+1 > n {
				n = p[1] + 1
			}
		}
	}
	G := &Graph{
		n:         n,
		pairs:     make([][2]int, len(pairs)),
		neighbors: make([][]int, n),
		pairIndex: make(map[[2]int]int, len(pairs)),
		ug:        simple.NewUndirectedGraph(),
	}
	for i := 0; i < n; i++ {
		G.ug.AddNode(simple.Node(i))
	}
	for k, p := range pairs {
		a, b := p[0], p[1]
		if a < 0 || b < 0 || a >= n || b >= n {
			return nil, newError(fmt.Sprintf("pair %d (%d,%d) refers to a node outside 0..%d", k, a, b, n-1), ErrInvalidInput, "New")
		}
		if a == b {
			return nil, newError(fmt.Sprintf("pair %d joins node %d with itself", k, a), ErrInvalidInput, "New")
		}
		kk := key(a, b)
		if prev, ok := G.pairIndex[kk]; ok {
			return nil, newError(fmt.Sprintf("pair %d (%d,%d) repeats pair %d", k, a, b, prev), ErrInvalidInput, "New")
		}
		G.pairIndex[kk] = k
		G.pairs[k] = [2]int{a, b}
		G.neighbors[a] = append(G.neighbors[a], b)
		G.neighbors[b] = append(G.neighbors[b], a)
		G.ug.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
	}
	for _, v := range G.neighbors {
		sort.Ints(v)
	}
	return G, nil
}

// NumNodes returns the number of nodes in the graph.
func (G *Graph) NumNodes() int {
	return G.n
}

// NumPairs returns the number of pairs (edges) in the graph.
func (G *Graph) NumPairs() int {
	return len(G.pairs)
}

// Pair returns the pair with index k, as it was given to New.
func (G *Graph) Pair(k int) [2]int {
	if k < 0 || k >= len(G.pairs) {
		panic(ErrIndexOutOfRange)
	}
	return G.pairs[k]
}

// Pairs returns a copy of the pair list, in the internal order.
func (G *Graph) Pairs() [][2]int {
	ret := make([][2]int, len(G.pairs))
	copy(ret, G.pairs)
	return ret
}

func (G *Graph) checkNode(i int) {
	if i < 0 || i >= G.n {
		panic(ErrIndexOutOfRange)
	}
}

// Neighbors returns the neighbors of node i in increasing order. The slice is a copy.
func (G *Graph) Neighbors(i int) []int {
	G.checkNode(i)
	ret := make([]int, len(G.neighbors[i]))
	copy(ret, G.neighbors[i])
	return ret
}

// Degree returns the number of neighbors of node i.
func (G *Graph) Degree(i int) int {
	G.checkNode(i)
	return len(G.neighbors[i])
}

// PairIndex returns the index of the pair joining a and b, and whether such a pair exists.
func (G *Graph) PairIndex(a, b int) (int, bool) {
	k, ok := G.pairIndex[key(a, b)]
	return k, ok
}

// HasPair returns true if a and b are joined by a pair.
func (G *Graph) HasPair(a, b int) bool {
	_, ok := G.pairIndex[key(a, b)]
	return ok
}

// Gonum returns a gonum view of the graph. Node IDs are the node indexes.
// The view is shared and must not be modified.
func (G *Graph) Gonum() graph.Undirected {
	return G.ug
}

func (G *Graph) allPaths() path.AllShortest {
	G.pathsOnce.Do(func() {
		G.paths = path.DijkstraAllPaths(G.ug)
	})
	return G.paths
}

// Distance returns the length, in number of pairs, of the shortest path between a and b,
// or -1 if b can't be reached from a.
func (G *Graph) Distance(a, b int) int {
	G.checkNode(a)
	G.checkNode(b)
	if a == b {
		return 0
	}
	w := G.allPaths().Weight(int64(a), int64(b))
	if math.IsInf(w, 1) {
		return -1
	}
	return int(w)
}

// Distances returns the matrix of all shortest path lengths (see Distance).
func (G *Graph) Distances() [][]int {
	ret := make([][]int, G.n)
	for i := range ret {
		ret[i] = make([]int, G.n)
		for j := range ret[i] {
			ret[i][j] = G.Distance(i, j)
		}
	}
	return ret
}

// ShortestPaths enumerates every shortest path between a and b. Each path is a list
// of nodes starting at a and ending at b, so its length is one more than the
// distance. The paths are sorted. It returns nil when b can't be reached from a.
func (G *Graph) ShortestPaths(a, b int) [][]int {
	G.checkNode(a)
	G.checkNode(b)
	if a == b {
		return [][]int{{a}}
	}
	gpaths, w := G.allPaths().AllBetween(int64(a), int64(b))
	if math.IsInf(w, 1) || len(gpaths) == 0 {
		return nil
	}
	ret := make([][]int, 0, len(gpaths))
	for _, gp := range gpaths {
		p := make([]int, len(gp))
		for i, n := range gp {
			p[i] = int(n.ID())
		}
		ret = append(ret, p)
	}
	sort.Slice(ret, func(i, j int) bool { return LessInts(ret[i], ret[j]) })
	return ret
}

// Components returns the connected components of the graph, each one sorted,
// ordered by their smallest node.
func (G *Graph) Components() [][]int {
	cc := topo.ConnectedComponents(G.ug)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		comp := make([]int, len(c))
		for i, n := range c {
			comp[i] = int(n.ID())
		}
		sort.Ints(comp)
		ret = append(ret, comp)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// NodeString returns a string that characterizes node i only by the structure
// of the graph around it: the canonical form of the subgraph induced by the nodes
// at distance at most 2 from i, where each node is labeled with its distance to i
// and its degree in the whole graph. Two nodes get the same string if and only if
// those labeled subgraphs are isomorphic, with i mapped onto i.
func (G *Graph) NodeString(i int) string {
	G.checkNode(i)
	G.stringsOnce.Do(func() {
		G.nodeStrings = make([]string, G.n)
		for j := range G.nodeStrings {
			G.nodeStrings[j] = G.ball(j, nodeStringDepth).canonical()
		}
	})
	return G.nodeStrings[i]
}

// PairString returns a structural string for the pair k, built from the
// sorted node strings of both ends.
func (G *Graph) PairString(k int) string {
	p := G.Pair(k)
	s1, s2 := G.NodeString(p[0]), G.NodeString(p[1])
	if s1 > s2 {
		s1, s2 = s2, s1
	}
	return s1 + "-" + s2
}

// Subgraph is the graph induced by a subset of the nodes of a parent graph.
type Subgraph struct {
	*Graph
	//OldNodes[i] is the index, in the parent graph, of the node i of the subgraph. If
	//the subgraph was not renumbered, OldNodes simply lists the retained nodes.
	OldNodes []int
	//OldPairs[k] is the index, in the parent, of the pair k of the subgraph.
	OldPairs []int
}

// Subgraph returns the graph induced by nodes: only the pairs with both ends in
// nodes are kept, in their original order. If renumber is true, the retained nodes
// are relabeled 0..len-1 in increasing original order. Otherwise the node count is
// kept, and the nodes not retained just have no pairs.
func (G *Graph) Subgraph(nodes []int, renumber bool) (*Subgraph, error) {
	keep := make(map[int]bool, len(nodes))
	for _, v := range nodes {
		if v < 0 || v >= G.n {
			return nil, newError(fmt.Sprintf("node %d out of range 0..%d", v, G.n-1), ErrInvalidInput, "Subgraph")
		}
		keep[v] = true
	}
	old := make([]int, 0, len(keep))
	for v := range keep {
		old = append(old, v)
	}
	sort.Ints(old)
	newIndex := make(map[int]int, len(old))
	for i, v := range old {
		if renumber {
			newIndex[v] = i
		} else {
			newIndex[v] = v
		}
	}
	pairs := make([][2]int, 0)
	oldPairs := make([]int, 0)
	for k, p := range G.pairs {
		if keep[p[0]] && keep[p[1]] {
			pairs = append(pairs, [2]int{newIndex[p[0]], newIndex[p[1]]})
			oldPairs = append(oldPairs, k)
		}
	}
	n := G.n
	if renumber {
		n = len(old)
	}
	sub, err := New(pairs, n)
	if err != nil {
		return nil, errDecorate(err, "Subgraph")
	}
	return &Subgraph{Graph: sub, OldNodes: old, OldPairs: oldPairs}, nil
}

// Replicate returns a graph made of times disjoint copies of G. The nodes of the
// copy c are offset by c*G.NumNodes().
func (G *Graph) Replicate(times int) (*Graph, error) {
	if times < 0 {
		return nil, newError(fmt.Sprintf("can't replicate a graph %d times", times), ErrInvalidInput, "Replicate")
	}
	pairs := make([][2]int, 0, times*len(G.pairs))
	for c := 0; c < times; c++ {
		off := c * G.n
		for _, p := range G.pairs {
			pairs = append(pairs, [2]int{p[0] + off, p[1] + off})
		}
	}
	R, err := New(pairs, times*G.n)
	if err != nil {
		return nil, errDecorate(err, "Replicate")
	}
	return R, nil
}

// LessInts reports whether a comes before b in lexicographic order. A proper prefix
// comes first.
func LessInts(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}
