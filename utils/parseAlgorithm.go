package utils

import (
	"strings"

	"flight-route-server/models"
)

// ParseAlgorithm matches names exactly; "Dijkstra" is unknown.
func ParseAlgorithm(input string) models.Algorithm {
	switch input {
	case "dijkstra":
		return models.Dijkstra
	case "bfs":
		return models.BFS
	default:
		return models.UnknownAlgorithm
	}
}

func ParseNodeKind(input string) models.NodeKind {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "any", "all":
		return models.AnyKind
	case "airport", "airports":
		return models.AirportKind
	case "waypoint", "waypoints", "fix":
		return models.WaypointKind
	default:
		return models.UnknownKind
	}
}
