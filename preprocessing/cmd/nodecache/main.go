package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"flight-route-server/models"
	"flight-route-server/preprocessing"
	"flight-route-server/routing"
	"flight-route-server/utils"
)

type sourceFlags struct {
	waypoints   string
	airports    string
	cache       string
	countryCode string
}

type graphDump struct {
	models.GraphResponse
	Summary map[string]int `json:"summary"`
}

var (
	src         sourceFlags
	buildOut    string
	dumpOut     string
	maxDistance float64
	algorithm   string

	rootCmd = &cobra.Command{
		Use:   "nodecache",
		Short: "Build and inspect the flight route node cache",
	}
	buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Parse waypoints and airports and write the node cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), cmd.OutOrStdout())
		},
	}
	dumpCmd = &cobra.Command{
		Use:   "dump",
		Short: "Build the graph and write it as JSON with summary counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd.Context(), cmd.OutOrStdout())
		},
	}
	routeCmd = &cobra.Command{
		Use:   "route [start] [end]",
		Short: "Print the route between two nodes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoute(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
		},
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&src.waypoints, "waypoints", "data/waypoints.csv", "Waypoint CSV (country_code,country_name,ident,lat,lon)")
	pf.StringVar(&src.airports, "airports", "data/airports.json", "Airport JSON keyed by ICAO code")
	pf.StringVar(&src.countryCode, "country", "MA", "Country code to keep")

	buildCmd.Flags().StringVar(&buildOut, "out", "data/nodes.gob.zst", "Node cache to write")

	for _, c := range []*cobra.Command{dumpCmd, routeCmd} {
		c.Flags().StringVar(&src.cache, "cache", "", "Read nodes from this cache instead of the sources")
		c.Flags().Float64Var(&maxDistance, "max-distance", 100, "Maximum edge length in nautical miles")
	}
	dumpCmd.Flags().StringVar(&dumpOut, "out", "", "Write the dump here instead of stdout")
	routeCmd.Flags().StringVar(&algorithm, "algorithm", "dijkstra", "dijkstra or bfs")

	rootCmd.AddCommand(buildCmd, dumpCmd, routeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runBuild(ctx context.Context, stdout io.Writer) error {
	nodes, err := preprocessing.LoadNodes(ctx, src.waypoints, src.airports, src.countryCode)
	if err != nil {
		return err
	}
	if err := preprocessing.WriteNodeCache(buildOut, src.countryCode, nodes); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Node cache written to %s\n", buildOut)
	fmt.Fprintf(stdout, "Summary: nodes=%d\n", len(nodes))
	return nil
}

func runDump(ctx context.Context, stdout io.Writer) error {
	nodes, err := preprocessing.LoadNodesCached(ctx, src.cache, src.waypoints, src.airports, src.countryCode)
	if err != nil {
		return err
	}
	g, err := preprocessing.BuildGraph(nodes, maxDistance)
	if err != nil {
		return err
	}

	airports := 0
	for _, n := range nodes {
		if n.IsAirport() {
			airports++
		}
	}
	dump := graphDump{
		GraphResponse: models.NewGraphResponse(g.Nodes(), g.Edges()),
		Summary: map[string]int{
			"nodes":     g.Len(),
			"airports":  airports,
			"waypoints": g.Len() - airports,
			"edges":     g.EdgeCount(),
		},
	}

	w := stdout
	if dumpOut != "" {
		if err := os.MkdirAll(filepath.Dir(dumpOut), 0o755); err != nil {
			return fmt.Errorf("failed to ensure output dir: %w", err)
		}
		f, err := os.Create(dumpOut)
		if err != nil {
			return fmt.Errorf("failed to create output file %s: %w", dumpOut, err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&dump); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	if dumpOut != "" {
		fmt.Fprintf(stdout, "Graph written to %s\n", dumpOut)
	}
	return nil
}

func runRoute(ctx context.Context, stdout io.Writer, start, end string) error {
	nodes, err := preprocessing.LoadNodesCached(ctx, src.cache, src.waypoints, src.airports, src.countryCode)
	if err != nil {
		return err
	}
	g, err := preprocessing.BuildGraph(nodes, maxDistance)
	if err != nil {
		return err
	}
	if !g.HasNode(start) || !g.HasNode(end) {
		return fmt.Errorf("unknown node %q or %q", start, end)
	}

	alg := utils.ParseAlgorithm(algorithm)
	if !alg.Valid() {
		return fmt.Errorf("unknown algorithm %q", algorithm)
	}

	var res routing.PathResult
	switch alg {
	case models.Dijkstra:
		res = g.FindPathDijkstra(start, end)
	case models.BFS:
		res = g.FindPathBFS(start, end)
	}

	if !res.Found() {
		fmt.Fprintf(stdout, "No route from %s to %s (%d steps explored)\n", start, end, len(res.Steps))
		return nil
	}
	fmt.Fprintf(stdout, "%s\n", strings.Join(res.Path, " -> "))
	fmt.Fprintf(stdout, "Summary: hops=%d distance=%.1fnm steps=%d\n", res.Hops(), res.TotalDistance, len(res.Steps))
	return nil
}
