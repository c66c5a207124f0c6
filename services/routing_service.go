package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"flight-route-server/models"
	"flight-route-server/obs"
	"flight-route-server/routing"
	"flight-route-server/utils"
)

var (
	ErrUnknownNode      = errors.New("services: unknown start or end node")
	ErrUnknownAlgorithm = errors.New("services: unknown algorithm")
	ErrUnknownKind      = errors.New("services: unknown node kind")
)

// RoutingService serves queries over a graph that is never mutated after
// construction, so one instance is shared by all requests.
type RoutingService struct {
	graph   *routing.Graph
	nearest *NearestIndex

	snapshotOnce sync.Once
	snapshot     models.GraphResponse
}

func NewRoutingService(graph *routing.Graph) *RoutingService {
	return &RoutingService{
		graph:   graph,
		nearest: NewNearestIndex(graph.Nodes()),
	}
}

func (rs *RoutingService) Graph() *routing.Graph { return rs.graph }

// FindPath validates req and runs the requested traversal. An unreachable
// destination is not an error: the result simply has an empty path.
func (rs *RoutingService) FindPath(ctx context.Context, req models.PathRequest) (result routing.PathResult, err error) {
	defer obs.Time(ctx, "find_path")(&err)

	algorithm := utils.ParseAlgorithm(req.Algorithm)
	if !rs.graph.HasNode(req.Start) || !rs.graph.HasNode(req.End) {
		pathQueries.WithLabelValues(string(algorithm), outcomeBadRequest).Inc()
		return routing.PathResult{}, fmt.Errorf("find path %s->%s: %w", req.Start, req.End, ErrUnknownNode)
	}

	if !algorithm.Valid() {
		pathQueries.WithLabelValues(string(models.UnknownAlgorithm), outcomeBadRequest).Inc()
		return routing.PathResult{}, fmt.Errorf("find path: %q: %w", req.Algorithm, ErrUnknownAlgorithm)
	}

	start := time.Now()
	switch algorithm {
	case models.Dijkstra:
		result = rs.graph.FindPathDijkstra(req.Start, req.End)
	case models.BFS:
		result = rs.graph.FindPathBFS(req.Start, req.End)
	}
	pathQueryDuration.WithLabelValues(string(algorithm)).Observe(time.Since(start).Seconds())

	if result.Found() {
		pathQueries.WithLabelValues(string(algorithm), outcomeFound).Inc()
		pathHops.WithLabelValues(string(algorithm)).Observe(float64(result.Hops()))
	} else {
		pathQueries.WithLabelValues(string(algorithm), outcomeNoPath).Inc()
	}
	return result, nil
}

// Snapshot is the full node and edge listing, built on first use.
func (rs *RoutingService) Snapshot() models.GraphResponse {
	rs.snapshotOnce.Do(func() {
		rs.snapshot = models.NewGraphResponse(rs.graph.Nodes(), rs.graph.Edges())
	})
	return rs.snapshot
}

func (rs *RoutingService) Nearest(ctx context.Context, req models.NearestRequest) (resp models.NearestResponse, err error) {
	defer obs.Time(ctx, "nearest")(&err)

	kind := utils.ParseNodeKind(req.Kind)
	if kind == models.UnknownKind {
		return models.NearestResponse{}, fmt.Errorf("nearest: %q: %w", req.Kind, ErrUnknownKind)
	}
	if req.Lat == nil || req.Lng == nil {
		return models.NearestResponse{}, errors.New("nearest: lat and lng are required")
	}

	n, d, err := rs.nearest.Nearest(*req.Lat, *req.Lng, kind, req.RadiusKm)
	if err != nil {
		return models.NearestResponse{}, fmt.Errorf("nearest: %w", err)
	}
	return models.NearestResponse{Node: models.NewNodeView(n), DistanceNM: d}, nil
}
