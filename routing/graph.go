package routing

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrEmptyNodeID   = errors.New("routing: node id is empty")
	ErrDuplicateNode = errors.New("routing: duplicate node id")
	ErrNegativeRange = errors.New("routing: max distance must be a non-negative number")
)

// AirportPredicate reports whether a node identity names an airport. Airports
// may only end a route, never be crossed on the way.
type AirportPredicate func(id string) bool

// IsMoroccanAirport matches four-character ICAO identifiers with the "GM" prefix.
func IsMoroccanAirport(id string) bool {
	return len(id) == 4 && strings.HasPrefix(id, "GM")
}

// Option configures a Graph at construction time.
type Option func(*Graph)

// WithAirportPredicate replaces the default IsMoroccanAirport rule.
func WithAirportPredicate(p AirportPredicate) Option {
	return func(g *Graph) {
		if p != nil {
			g.isAirport = p
		}
	}
}

// Edge is one directed adjacency slot, as exposed to callers.
type Edge struct {
	From     string
	To       string
	Distance float64
}

// Graph is a proximity graph stored in compressed sparse row form.
//
// nodes owns every Node; indexOf and colIdx refer to nodes by index only.
// rowPtr[i]..rowPtr[i+1] bounds the slots of node i in colIdx/weight.
// The graph is mutated only while it is being built (AddNode,
// ConnectWithinRange). Once built it is read-only and safe for concurrent
// traversals.
type Graph struct {
	nodes   []Node
	indexOf map[string]int

	rowPtr []int
	colIdx []int
	weight []float64

	isAirport AirportPredicate
}

func NewGraph(opts ...Option) *Graph {
	g := &Graph{
		indexOf:   make(map[string]int),
		rowPtr:    []int{0},
		isAirport: IsMoroccanAirport,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddNode appends n to the graph without creating any edge.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrEmptyNodeID
	}
	if _, exists := g.indexOf[n.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateNode, n.ID)
	}

	g.indexOf[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
	// New node starts with an empty row.
	g.rowPtr = append(g.rowPtr, len(g.colIdx))
	return nil
}

func (g *Graph) addEdge(to int, weight float64) {
	g.colIdx = append(g.colIdx, to)
	g.weight = append(g.weight, weight)
}

// ConnectWithinRange discards the current adjacency and links every ordered
// pair of distinct nodes whose great-circle distance is at most maxDistance
// nautical miles. Both directions are computed independently, O(N²).
func (g *Graph) ConnectWithinRange(maxDistance float64) error {
	if maxDistance < 0 || math.IsNaN(maxDistance) {
		return fmt.Errorf("%w: got %v", ErrNegativeRange, maxDistance)
	}

	g.rowPtr = make([]int, 0, len(g.nodes)+1)
	g.colIdx = g.colIdx[:0]
	g.weight = g.weight[:0]
	g.rowPtr = append(g.rowPtr, 0)

	for i := range g.nodes {
		for j := range g.nodes {
			if i == j {
				continue
			}
			d := g.nodes[i].Coord.DistanceTo(g.nodes[j].Coord)
			if d <= maxDistance {
				g.addEdge(j, d)
			}
		}
		g.rowPtr = append(g.rowPtr, len(g.colIdx))
	}
	return nil
}

// Node returns the node stored under id.
func (g *Graph) Node(id string) (Node, bool) {
	idx, ok := g.indexOf[id]
	if !ok {
		return Node{}, false
	}
	return g.nodes[idx], true
}

func (g *Graph) HasNode(id string) bool {
	_, ok := g.indexOf[id]
	return ok
}

// IsAirport applies the graph's airport predicate to id.
func (g *Graph) IsAirport(id string) bool { return g.isAirport(id) }

func (g *Graph) Len() int       { return len(g.nodes) }
func (g *Graph) EdgeCount() int { return len(g.colIdx) }

// Nodes returns the nodes in insertion order. The slice is a copy.
func (g *Graph) Nodes() []Node {
	out := make([]Node, len(g.nodes))
	copy(out, g.nodes)
	return out
}

// Edges lists every adjacency slot in CSR order, both directions included.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.colIdx))
	for i := range g.nodes {
		for k := g.rowPtr[i]; k < g.rowPtr[i+1]; k++ {
			out = append(out, Edge{
				From:     g.nodes[i].ID,
				To:       g.nodes[g.colIdx[k]].ID,
				Distance: g.weight[k],
			})
		}
	}
	return out
}

// Neighbors lists the outgoing slots of id, or nil if id is unknown.
func (g *Graph) Neighbors(id string) []Edge {
	idx, ok := g.indexOf[id]
	if !ok {
		return nil
	}
	out := make([]Edge, 0, g.rowPtr[idx+1]-g.rowPtr[idx])
	for k := g.rowPtr[idx]; k < g.rowPtr[idx+1]; k++ {
		out = append(out, Edge{From: id, To: g.nodes[g.colIdx[k]].ID, Distance: g.weight[k]})
	}
	return out
}

// Weight returns the stored weight of the slot from→to.
func (g *Graph) Weight(from, to string) (float64, bool) {
	f, ok := g.indexOf[from]
	if !ok {
		return 0, false
	}
	t, ok := g.indexOf[to]
	if !ok {
		return 0, false
	}
	return g.edgeWeight(f, t)
}

func (g *Graph) edgeWeight(from, to int) (float64, bool) {
	for k := g.rowPtr[from]; k < g.rowPtr[from+1]; k++ {
		if g.colIdx[k] == to {
			return g.weight[k], true
		}
	}
	return 0, false
}

// admissible reports whether node may be entered on the way to end.
func (g *Graph) admissible(node, end int) bool {
	return node == end || !g.isAirport(g.nodes[node].ID)
}

// frontier lists the admissible, not yet visited neighbors of current.
func (g *Graph) frontier(current, end int, visited []bool) []string {
	out := make([]string, 0, g.rowPtr[current+1]-g.rowPtr[current])
	for k := g.rowPtr[current]; k < g.rowPtr[current+1]; k++ {
		next := g.colIdx[k]
		if !g.admissible(next, end) || visited[next] {
			continue
		}
		out = append(out, g.nodes[next].ID)
	}
	return out
}

// reconstructPath follows prev from end back to start. It returns an empty
// path if the chain is broken.
func (g *Graph) reconstructPath(prev []int, start, end int) []string {
	path := make([]string, 0)
	for cur := end; ; cur = prev[cur] {
		path = append(path, g.nodes[cur].ID)
		if cur == start {
			break
		}
		if prev[cur] < 0 {
			return []string{}
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
