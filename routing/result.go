package routing

import (
	"encoding/json"
	"fmt"
	"math"
)

// INFINITY_SENTINEL replaces +Inf distances on the wire.
const INFINITY_SENTINEL = "∞"

// AlgorithmStep is one frame of a traversal trace, recorded when a node is
// finalized. Maps are snapshots and are never shared between steps.
type AlgorithmStep struct {
	CurrentNode   string             `json:"currentNode"`
	VisitedNodes  []string           `json:"visitedNodes"`
	Frontier      []string           `json:"frontier"`
	Distances     map[string]float64 `json:"distances"`
	PreviousNodes map[string]string  `json:"previousNodes"`
}

type wireStep struct {
	CurrentNode   string                     `json:"currentNode"`
	VisitedNodes  []string                   `json:"visitedNodes"`
	Frontier      []string                   `json:"frontier"`
	Distances     map[string]json.RawMessage `json:"distances"`
	PreviousNodes map[string]string          `json:"previousNodes"`
}

func (s AlgorithmStep) MarshalJSON() ([]byte, error) {
	w := wireStep{
		CurrentNode:   s.CurrentNode,
		VisitedNodes:  nonNil(s.VisitedNodes),
		Frontier:      nonNil(s.Frontier),
		Distances:     make(map[string]json.RawMessage, len(s.Distances)),
		PreviousNodes: s.PreviousNodes,
	}
	if w.PreviousNodes == nil {
		w.PreviousNodes = map[string]string{}
	}

	sentinel, err := json.Marshal(INFINITY_SENTINEL)
	if err != nil {
		return nil, err
	}
	for id, d := range s.Distances {
		if math.IsInf(d, 1) {
			w.Distances[id] = sentinel
			continue
		}
		raw, err := json.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("marshal distance of %q: %w", id, err)
		}
		w.Distances[id] = raw
	}
	return json.Marshal(w)
}

func (s *AlgorithmStep) UnmarshalJSON(data []byte) error {
	var w wireStep
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	s.CurrentNode = w.CurrentNode
	s.VisitedNodes = w.VisitedNodes
	s.Frontier = w.Frontier
	s.PreviousNodes = w.PreviousNodes
	s.Distances = make(map[string]float64, len(w.Distances))
	for id, raw := range w.Distances {
		var str string
		if err := json.Unmarshal(raw, &str); err == nil {
			if str != INFINITY_SENTINEL {
				return fmt.Errorf("distance of %q: unexpected string %q", id, str)
			}
			s.Distances[id] = math.Inf(1)
			continue
		}
		var d float64
		if err := json.Unmarshal(raw, &d); err != nil {
			return fmt.Errorf("distance of %q: %w", id, err)
		}
		s.Distances[id] = d
	}
	return nil
}

// PathResult is the outcome of one traversal. Path is empty when no route
// exists; TotalDistance is then 0.
type PathResult struct {
	Path          []string        `json:"path"`
	TotalDistance float64         `json:"totalDistance"`
	Steps         []AlgorithmStep `json:"steps"`
}

func newPathResult() PathResult {
	return PathResult{
		Path:  []string{},
		Steps: []AlgorithmStep{},
	}
}

func (r PathResult) Found() bool { return len(r.Path) > 0 }

// Hops is the number of edges along Path.
func (r PathResult) Hops() int {
	if len(r.Path) == 0 {
		return 0
	}
	return len(r.Path) - 1
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func (g *Graph) snapshotDistances(dist []float64) map[string]float64 {
	out := make(map[string]float64, len(dist))
	for i, d := range dist {
		out[g.nodes[i].ID] = d
	}
	return out
}

// snapshotHops is the BFS stand-in for distances: 1 for visited nodes, +Inf
// otherwise. It only drives the visualization.
func (g *Graph) snapshotHops(visited []bool) map[string]float64 {
	out := make(map[string]float64, len(visited))
	for i, seen := range visited {
		if seen {
			out[g.nodes[i].ID] = 1
		} else {
			out[g.nodes[i].ID] = math.Inf(1)
		}
	}
	return out
}

func (g *Graph) snapshotPrevious(prev []int) map[string]string {
	out := make(map[string]string)
	for i, p := range prev {
		if p >= 0 {
			out[g.nodes[i].ID] = g.nodes[p].ID
		}
	}
	return out
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
