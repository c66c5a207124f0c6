package routing

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inf = math.Inf(1)

func scenarioA(t *testing.T) *Graph {
	return newTestGraph(t, []string{"GMAA", "W1", "GMBB"}, []testEdge{
		{"GMAA", "W1", 10},
		{"W1", "GMBB", 15},
		{"GMAA", "GMBB", 40},
	})
}

func scenarioB(t *testing.T) *Graph {
	return newTestGraph(t, []string{"GMAA", "W1", "GMBB", "GMCC"}, []testEdge{
		{"GMAA", "W1", 10},
		{"W1", "GMBB", 15},
		{"GMAA", "GMBB", 40},
		{"GMAA", "GMCC", 5},
		{"GMCC", "GMBB", 5},
	})
}

// scenarioD has a cheap three-hop route and an expensive two-hop one.
func scenarioD(t *testing.T) *Graph {
	return newTestGraph(t, []string{"GMAA", "W1", "W2", "W3", "GMBB"}, []testEdge{
		{"GMAA", "W1", 1},
		{"W1", "W2", 1},
		{"W2", "GMBB", 1},
		{"GMAA", "W3", 50},
		{"W3", "GMBB", 50},
	})
}

func pathWeight(t *testing.T, g *Graph, path []string) float64 {
	t.Helper()
	total := 0.0
	for i := 1; i < len(path); i++ {
		w, ok := g.Weight(path[i-1], path[i])
		require.True(t, ok, "no edge %s->%s", path[i-1], path[i])
		total += w
	}
	return total
}

func TestDijkstraPrefersCheaperRoute(t *testing.T) {
	g := scenarioA(t)

	res := g.FindPathDijkstra("GMAA", "GMBB")
	assert.Equal(t, []string{"GMAA", "W1", "GMBB"}, res.Path)
	assert.Equal(t, 25.0, res.TotalDistance)
	assert.Equal(t, 2, res.Hops())

	require.Len(t, res.Steps, 3)
	assert.Equal(t, AlgorithmStep{
		CurrentNode:   "GMAA",
		VisitedNodes:  []string{"GMAA"},
		Frontier:      []string{"W1", "GMBB"},
		Distances:     map[string]float64{"GMAA": 0, "W1": inf, "GMBB": inf},
		PreviousNodes: map[string]string{},
	}, res.Steps[0])
	assert.Equal(t, AlgorithmStep{
		CurrentNode:   "W1",
		VisitedNodes:  []string{"GMAA", "W1"},
		Frontier:      []string{"GMBB"},
		Distances:     map[string]float64{"GMAA": 0, "W1": 10, "GMBB": 40},
		PreviousNodes: map[string]string{"W1": "GMAA", "GMBB": "GMAA"},
	}, res.Steps[1])
	assert.Equal(t, AlgorithmStep{
		CurrentNode:   "GMBB",
		VisitedNodes:  []string{"GMAA", "W1", "GMBB"},
		Frontier:      []string{},
		Distances:     map[string]float64{"GMAA": 0, "W1": 10, "GMBB": 25},
		PreviousNodes: map[string]string{"W1": "GMAA", "GMBB": "W1"},
	}, res.Steps[2])
}

func TestDijkstraNeverCrossesAirport(t *testing.T) {
	g := scenarioB(t)

	res := g.FindPathDijkstra("GMAA", "GMBB")
	assert.Equal(t, []string{"GMAA", "W1", "GMBB"}, res.Path)
	assert.Equal(t, 25.0, res.TotalDistance)
	for _, step := range res.Steps {
		assert.NotEqual(t, "GMCC", step.CurrentNode)
		assert.NotContains(t, step.Frontier, "GMCC")
	}

	// GMCC is still reachable as a destination.
	res = g.FindPathDijkstra("GMAA", "GMCC")
	assert.Equal(t, []string{"GMAA", "GMCC"}, res.Path)
	assert.Equal(t, 5.0, res.TotalDistance)
}

func TestDijkstraRequiresAirportEndpoints(t *testing.T) {
	g := scenarioA(t)

	for _, tc := range []struct{ start, end string }{
		{"W1", "GMBB"},
		{"GMAA", "W1"},
		{"W1", "W1"},
		{"GMAA", "GMZZ"},
	} {
		res := g.FindPathDijkstra(tc.start, tc.end)
		assert.Equal(t, []string{}, res.Path, "%s->%s", tc.start, tc.end)
		assert.Equal(t, []AlgorithmStep{}, res.Steps, "%s->%s", tc.start, tc.end)
		assert.Zero(t, res.TotalDistance)
		assert.False(t, res.Found())
	}
}

func TestDijkstraUnreachable(t *testing.T) {
	// The only link to GMBB goes through another airport.
	g := newTestGraph(t, []string{"GMAA", "GMCC", "GMBB", "W1"}, []testEdge{
		{"GMAA", "GMCC", 1},
		{"GMCC", "GMBB", 1},
		{"GMAA", "W1", 3},
	})

	res := g.FindPathDijkstra("GMAA", "GMBB")
	assert.Empty(t, res.Path)
	assert.NotNil(t, res.Path)
	assert.Zero(t, res.TotalDistance)
	require.Len(t, res.Steps, 2)
	assert.Equal(t, "GMAA", res.Steps[0].CurrentNode)
	assert.Equal(t, []string{"W1"}, res.Steps[0].Frontier)
	assert.Equal(t, "W1", res.Steps[1].CurrentNode)
}

func TestDijkstraSameStartAndEnd(t *testing.T) {
	g := scenarioA(t)

	res := g.FindPathDijkstra("GMAA", "GMAA")
	assert.Equal(t, []string{"GMAA"}, res.Path)
	assert.Zero(t, res.TotalDistance)
	assert.Len(t, res.Steps, 1)

	res = g.FindPathBFS("GMAA", "GMAA")
	assert.Equal(t, []string{"GMAA"}, res.Path)
	assert.Zero(t, res.TotalDistance)
	assert.Len(t, res.Steps, 1)
}

// bellmanFord computes single-source distances by exhaustive relaxation.
func bellmanFord(g *Graph, start int) []float64 {
	dist := make([]float64, len(g.nodes))
	for i := range dist {
		dist[i] = inf
	}
	dist[start] = 0
	for iter := 0; iter < len(g.nodes); iter++ {
		changed := false
		for u := range g.nodes {
			if math.IsInf(dist[u], 1) {
				continue
			}
			for k := g.rowPtr[u]; k < g.rowPtr[u+1]; k++ {
				if v := g.colIdx[k]; dist[u]+g.weight[k] < dist[v] {
					dist[v] = dist[u] + g.weight[k]
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return dist
}

func hopLevels(g *Graph, start int) []int {
	level := make([]int, len(g.nodes))
	for i := range level {
		level[i] = -1
	}
	level[start] = 0
	queue := []int{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for k := g.rowPtr[u]; k < g.rowPtr[u+1]; k++ {
			if v := g.colIdx[k]; level[v] < 0 {
				level[v] = level[u] + 1
				queue = append(queue, v)
			}
		}
	}
	return level
}

func TestDijkstraMatchesExhaustiveSearch(t *testing.T) {
	const start = "WP00"
	ends := []string{"WP07", "WP13", "WP21", "WP28", "WP34", "WP39"}

	for _, end := range ends {
		end := end
		endpoints := func(id string) bool { return id == start || id == end }
		g := randomWaypointGraph(t, 40, 60, WithAirportPredicate(endpoints))
		want := bellmanFord(g, g.indexOf[start])[g.indexOf[end]]

		t.Run(end, func(t *testing.T) {
			res := g.FindPathDijkstra(start, end)
			if math.IsInf(want, 1) {
				assert.Empty(t, res.Path)
				assert.Zero(t, res.TotalDistance)
				return
			}
			require.NotEmpty(t, res.Path)
			assert.Equal(t, start, res.Path[0])
			assert.Equal(t, end, res.Path[len(res.Path)-1])
			assert.InDelta(t, want, res.TotalDistance, 1e-9)
			assert.InDelta(t, want, pathWeight(t, g, res.Path), 1e-9)
		})
	}
}

func TestBFSPrefersFewerHops(t *testing.T) {
	g := scenarioD(t)

	res := g.FindPathBFS("GMAA", "GMBB")
	assert.Equal(t, []string{"GMAA", "W3", "GMBB"}, res.Path)
	assert.Equal(t, 100.0, res.TotalDistance)

	require.Len(t, res.Steps, 5)
	assert.Equal(t, AlgorithmStep{
		CurrentNode:   "GMAA",
		VisitedNodes:  []string{"GMAA"},
		Frontier:      []string{"W1", "W3"},
		Distances:     map[string]float64{"GMAA": 1, "W1": inf, "W2": inf, "W3": inf, "GMBB": inf},
		PreviousNodes: map[string]string{},
	}, res.Steps[0])
	last := res.Steps[len(res.Steps)-1]
	assert.Equal(t, "GMBB", last.CurrentNode)
	assert.Equal(t, "W3", last.PreviousNodes["GMBB"])
	for _, d := range last.Distances {
		assert.Equal(t, 1.0, d)
	}

	dij := g.FindPathDijkstra("GMAA", "GMBB")
	assert.Equal(t, []string{"GMAA", "W1", "W2", "GMBB"}, dij.Path)
	assert.Equal(t, 3.0, dij.TotalDistance)
}

func TestBFSNeverCrossesAirport(t *testing.T) {
	g := scenarioB(t)

	res := g.FindPathBFS("GMAA", "GMBB")
	assert.Equal(t, []string{"GMAA", "GMBB"}, res.Path)
	assert.Equal(t, 40.0, res.TotalDistance)

	// Every neighbor of W1 is an airport other than GMCC.
	res = g.FindPathBFS("W1", "GMCC")
	assert.Empty(t, res.Path)
	require.Len(t, res.Steps, 1)
	assert.Equal(t, []string{}, res.Steps[0].Frontier)
}

func TestBFSAcceptsWaypointEndpoints(t *testing.T) {
	g := scenarioD(t)

	res := g.FindPathBFS("W1", "W3")
	// GMAA and GMBB are airports, so W1 cannot reach W3.
	assert.Empty(t, res.Path)
	assert.Zero(t, res.TotalDistance)
	assert.NotEmpty(t, res.Steps)

	res = g.FindPathBFS("W1", "GMBB")
	assert.Equal(t, []string{"W1", "W2", "GMBB"}, res.Path)
	assert.Equal(t, 2.0, res.TotalDistance)

	res = g.FindPathBFS("W1", "NOPE")
	assert.Equal(t, []string{}, res.Path)
	assert.Equal(t, []AlgorithmStep{}, res.Steps)
}

func TestBFSHopMinimality(t *testing.T) {
	const start = "WP03"
	for _, end := range []string{"WP11", "WP19", "WP26", "WP38"} {
		end := end
		endpoints := func(id string) bool { return id == start || id == end }
		g := randomWaypointGraph(t, 40, 60, WithAirportPredicate(endpoints))
		want := hopLevels(g, g.indexOf[start])[g.indexOf[end]]

		t.Run(end, func(t *testing.T) {
			res := g.FindPathBFS(start, end)
			if want < 0 {
				assert.Empty(t, res.Path)
				return
			}
			assert.Equal(t, want, res.Hops())
			assert.InDelta(t, pathWeight(t, g, res.Path), res.TotalDistance, 1e-9)
		})
	}
}

func TestTraversalsAreDeterministicAndReadOnly(t *testing.T) {
	g := randomWaypointGraph(t, 30, 70, WithAirportPredicate(func(id string) bool {
		return id == "WP00" || id == "WP29"
	}))
	rowPtr := append([]int(nil), g.rowPtr...)
	colIdx := append([]int(nil), g.colIdx...)
	weight := append([]float64(nil), g.weight...)

	first := g.FindPathDijkstra("WP00", "WP29")
	assert.Equal(t, first, g.FindPathDijkstra("WP00", "WP29"))

	firstBFS := g.FindPathBFS("WP00", "WP29")
	assert.Equal(t, firstBFS, g.FindPathBFS("WP00", "WP29"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, first, g.FindPathDijkstra("WP00", "WP29"))
			assert.Equal(t, firstBFS, g.FindPathBFS("WP00", "WP29"))
		}()
	}
	wg.Wait()

	assert.Equal(t, rowPtr, g.rowPtr)
	assert.Equal(t, colIdx, g.colIdx)
	assert.Equal(t, weight, g.weight)
}

func TestStepSnapshotsAreIndependent(t *testing.T) {
	g := scenarioA(t)
	res := g.FindPathDijkstra("GMAA", "GMBB")
	require.Len(t, res.Steps, 3)

	res.Steps[0].Distances["W1"] = -1
	res.Steps[0].VisitedNodes[0] = "X"
	assert.Equal(t, 10.0, res.Steps[1].Distances["W1"])
	assert.Equal(t, "GMAA", res.Steps[1].VisitedNodes[0])
}
