package routing

// FindPathBFS returns the route from start to end with the fewest hops,
// ignoring edge weights during the search. TotalDistance is the sum of the
// real edge weights along the returned path.
//
// Unlike FindPathDijkstra, start and end are not required to be airports.
// Intermediate airports are still never entered. Nodes join the visited set
// when they are enqueued.
func (g *Graph) FindPathBFS(start, end string) PathResult {
	result := newPathResult()

	s, ok := g.indexOf[start]
	if !ok {
		return result
	}
	e, ok := g.indexOf[end]
	if !ok {
		return result
	}

	n := len(g.nodes)
	visited := make([]bool, n)
	previous := make([]int, n)
	for i := range previous {
		previous[i] = -1
	}
	order := make([]string, 0, n)

	queue := []int{s}
	visited[s] = true
	order = append(order, start)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		result.Steps = append(result.Steps, AlgorithmStep{
			CurrentNode:   g.nodes[current].ID,
			VisitedNodes:  cloneStrings(order),
			Frontier:      g.frontier(current, e, visited),
			Distances:     g.snapshotHops(visited),
			PreviousNodes: g.snapshotPrevious(previous),
		})

		if current == e {
			break
		}

		for k := g.rowPtr[current]; k < g.rowPtr[current+1]; k++ {
			next := g.colIdx[k]
			if !g.admissible(next, e) || visited[next] {
				continue
			}
			visited[next] = true
			order = append(order, g.nodes[next].ID)
			previous[next] = current
			queue = append(queue, next)
		}
	}

	if !visited[e] {
		return result
	}

	path := g.reconstructPath(previous, s, e)
	if len(path) == 0 {
		return result
	}
	total := 0.0
	for i := 1; i < len(path); i++ {
		w, _ := g.edgeWeight(g.indexOf[path[i-1]], g.indexOf[path[i]])
		total += w
	}
	result.Path = path
	result.TotalDistance = total
	return result
}
