package routing

import (
	"container/heap"
	"math"
)

// FindPathDijkstra returns the cheapest route from start to end together with
// one trace step per finalized node.
//
// Both endpoints must satisfy the airport predicate; otherwise, and for
// unknown identities, the result is empty (no path, no steps). Intermediate
// airports are never entered. The queue uses lazy deletion: a node can be
// pushed more than once and only its first pop counts. Ties are resolved by
// heap order, which is stable for a given graph.
func (g *Graph) FindPathDijkstra(start, end string) PathResult {
	result := newPathResult()

	if !g.isAirport(start) || !g.isAirport(end) {
		return result
	}
	s, ok := g.indexOf[start]
	if !ok {
		return result
	}
	e, ok := g.indexOf[end]
	if !ok {
		return result
	}

	n := len(g.nodes)
	distances := make([]float64, n)
	previous := make([]int, n)
	visited := make([]bool, n)
	for i := range distances {
		distances[i] = math.Inf(1)
		previous[i] = -1
	}
	distances[s] = 0
	order := make([]string, 0, n)

	pq := &PriorityQueue{}
	heap.Init(pq)
	heap.Push(pq, &PriorityQueueItem{Node: s, Priority: 0})

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*PriorityQueueItem).Node
		if visited[current] {
			continue
		}
		visited[current] = true
		order = append(order, g.nodes[current].ID)

		result.Steps = append(result.Steps, AlgorithmStep{
			CurrentNode:   g.nodes[current].ID,
			VisitedNodes:  cloneStrings(order),
			Frontier:      g.frontier(current, e, visited),
			Distances:     g.snapshotDistances(distances),
			PreviousNodes: g.snapshotPrevious(previous),
		})

		if current == e {
			break
		}

		for k := g.rowPtr[current]; k < g.rowPtr[current+1]; k++ {
			next := g.colIdx[k]
			if visited[next] || !g.admissible(next, e) {
				continue
			}
			alt := distances[current] + g.weight[k]
			if alt < distances[next] {
				distances[next] = alt
				previous[next] = current
				heap.Push(pq, &PriorityQueueItem{Node: next, Priority: alt})
			}
		}
	}

	if !math.IsInf(distances[e], 1) {
		result.Path = g.reconstructPath(previous, s, e)
		if len(result.Path) > 0 {
			result.TotalDistance = distances[e]
		}
	}
	return result
}
