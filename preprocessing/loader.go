package preprocessing

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"golang.org/x/sync/errgroup"

	"flight-route-server/routing"
)

// LoadNodes reads waypoints and airports concurrently. Waypoints come first in
// the returned slice, airports after them. When an identity repeats, the first
// occurrence is kept and the rest are dropped.
func LoadNodes(ctx context.Context, waypointsPath, airportsPath, countryCode string) ([]routing.Node, error) {
	var waypoints, airports []routing.Node

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		waypoints, err = LoadWaypoints(waypointsPath, countryCode)
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var err error
		airports, err = LoadAirports(airportsPath, countryCode)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.Printf("Loaded %d waypoints and %d airports for %s", len(waypoints), len(airports), countryCode)

	nodes := make([]routing.Node, 0, len(waypoints)+len(airports))
	nodes = append(nodes, waypoints...)
	nodes = append(nodes, airports...)
	return dedupeNodes(nodes), nil
}

func dedupeNodes(nodes []routing.Node) []routing.Node {
	seen := make(map[string]struct{}, len(nodes))
	out := nodes[:0]
	dropped := 0
	for _, n := range nodes {
		if _, ok := seen[n.ID]; ok {
			dropped++
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	if dropped > 0 {
		log.Printf("Dropped %d nodes with repeated identities", dropped)
	}
	return out
}

// LoadNodesCached returns the nodes stored in cachePath when that file exists
// and was built for countryCode, and otherwise parses the sources.
func LoadNodesCached(ctx context.Context, cachePath, waypointsPath, airportsPath, countryCode string) ([]routing.Node, error) {
	if cachePath != "" {
		if _, err := os.Stat(cachePath); err == nil {
			nodes, err := ReadNodeCache(cachePath, countryCode)
			switch {
			case err == nil:
				log.Printf("Loaded %d nodes from cache %s", len(nodes), cachePath)
				return nodes, nil
			case errors.Is(err, ErrCacheStale), errors.Is(err, ErrCacheVersion):
				log.Printf("Ignoring node cache: %v", err)
			default:
				return nil, err
			}
		}
	}
	return LoadNodes(ctx, waypointsPath, airportsPath, countryCode)
}

// BuildGraph inserts nodes in order and links every pair within maxDistance nm.
func BuildGraph(nodes []routing.Node, maxDistance float64, opts ...routing.Option) (*routing.Graph, error) {
	g := routing.NewGraph(opts...)
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("build graph: %w", err)
		}
	}
	if err := g.ConnectWithinRange(maxDistance); err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	log.Printf("Graph built: %d nodes, %d edges (max %.1f nm)", g.Len(), g.EdgeCount(), maxDistance)
	return g, nil
}
