package models

type Algorithm string

const (
	Dijkstra         Algorithm = "dijkstra"
	BFS              Algorithm = "bfs"
	UnknownAlgorithm Algorithm = "unknown"
)

func (a Algorithm) Valid() bool {
	return a == Dijkstra || a == BFS
}

// NodeKind filters nearest-node lookups.
type NodeKind string

const (
	AnyKind      NodeKind = "any"
	AirportKind  NodeKind = "airport"
	WaypointKind NodeKind = "waypoint"
	UnknownKind  NodeKind = "unknown"
)
