package chemgraph

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ballGraph is a small node-labeled graph, the neighborhood of a node.
type ballGraph struct {
	labels []string
	adj    [][]bool
}

// ball returns the subgraph induced by the nodes at distance at most radius from i.
// Each node is labeled "distance/degree", the degree being taken in G.
func (G *Graph) ball(i, radius int) *ballGraph {
	nodes := []int{i}
	dist := []int{0}
	for v := 0; v < G.n; v++ {
		if v == i {
			continue
		}
		if d := G.Distance(i, v); d > 0 && d <= radius {
			nodes = append(nodes, v)
			dist = append(dist, d)
		}
	}
	local := make(map[int]int, len(nodes))
	for k, v := range nodes {
		local[v] = k
	}
	b := &ballGraph{labels: make([]string, len(nodes)), adj: make([][]bool, len(nodes))}
	for k, v := range nodes {
		b.labels[k] = strconv.Itoa(dist[k]) + "/" + strconv.Itoa(len(G.neighbors[v]))
		b.adj[k] = make([]bool, len(nodes))
		for _, u := range G.neighbors[v] {
			if l, ok := local[u]; ok {
				b.adj[k][l] = true
			}
		}
	}
	return b
}

func sortedUnique(s []string) []string {
	ret := append([]string(nil), s...)
	sort.Strings(ret)
	n := 0
	for i, v := range ret {
		if i == 0 || v != ret[n-1] {
			ret[n] = v
			n++
		}
	}
	return ret[:n]
}

func numColors(colors []int) int {
	seen := make(map[int]bool, len(colors))
	for _, c := range colors {
		seen[c] = true
	}
	return len(seen)
}

// canonical returns the smallest certificate over an individualization-refinement
// search, so isomorphic labeled graphs, and only those, get the same string.
func (b *ballGraph) canonical() string {
	uniq := sortedUnique(b.labels)
	colors := make([]int, len(b.labels))
	for k, l := range b.labels {
		colors[k] = sort.SearchStrings(uniq, l)
	}
	best, found := "", false
	var search func(colors []int)
	search = func(colors []int) {
		colors = b.refine(colors)
		cell := targetCell(colors)
		if cell == nil {
			if c := b.certificate(colors); !found || c < best {
				best, found = c, true
			}
			return
		}
		tried := make([]int, 0, len(cell))
		for _, v := range cell {
			if b.twinOfAny(v, tried) {
				continue
			}
			tried = append(tried, v)
			next := make([]int, len(colors))
			for k, c := range colors {
				next[k] = 2*c + 1
			}
			next[v] = 2 * colors[v]
			search(next)
		}
	}
	search(colors)
	return best
}

// refine splits the color classes by the colors of the neighbors until nothing changes.
// The new colors are dense and keep the order of the old classes.
func (b *ballGraph) refine(colors []int) []int {
	n := len(colors)
	classes := numColors(colors)
	sig := make([]string, n)
	for {
		for v := 0; v < n; v++ {
			nb := make([]string, 0, n)
			for u := 0; u < n; u++ {
				if b.adj[v][u] {
					nb = append(nb, fmt.Sprintf("%05d", colors[u]))
				}
			}
			sort.Strings(nb)
			sig[v] = fmt.Sprintf("%05d:", colors[v]) + strings.Join(nb, ",")
		}
		uniq := sortedUnique(sig)
		next := make([]int, n)
		for v := range sig {
			next[v] = sort.SearchStrings(uniq, sig[v])
		}
		if len(uniq) == classes {
			return next
		}
		colors, classes = next, len(uniq)
	}
}

// targetCell returns the members of the smallest class with more than one node, the
// one with the lowest color on ties, or nil if every class is a single node.
func targetCell(colors []int) []int {
	cells := make(map[int][]int)
	for v, c := range colors {
		cells[c] = append(cells[c], v)
	}
	best := -1
	for c, members := range cells {
		if len(members) < 2 {
			continue
		}
		if best < 0 || len(members) < len(cells[best]) || (len(members) == len(cells[best]) && c < best) {
			best = c
		}
	}
	if best < 0 {
		return nil
	}
	return cells[best]
}

// twinOfAny reports whether v has the same neighbors, apart from each other, as one
// of the nodes in others. Swapping twins is a symmetry, so only one needs to be tried.
func (b *ballGraph) twinOfAny(v int, others []int) bool {
	for _, u := range others {
		twin := true
		for x := range b.adj {
			if x != u && x != v && b.adj[v][x] != b.adj[u][x] {
				twin = false
				break
			}
		}
		if twin {
			return true
		}
	}
	return false
}

// certificate writes the labels and the pairs of the graph with the nodes sorted by
// their (all different) colors.
func (b *ballGraph) certificate(colors []int) string {
	inv := make([]int, len(colors))
	for v, c := range colors {
		inv[c] = v
	}
	var sb strings.Builder
	for p, v := range inv {
		if p > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(b.labels[v])
	}
	sb.WriteByte('|')
	for p := range inv {
		for q := p + 1; q < len(inv); q++ {
			if b.adj[inv[p]][inv[q]] {
				fmt.Fprintf(&sb, "%d-%d;", p, q)
			}
		}
	}
	return sb.String()
}
