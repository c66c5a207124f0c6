package routing

// NodeType discriminates the two kinds of graph vertices.
// The numeric values are part of the JSON contract (0 airport, 1 waypoint).
type NodeType int

const (
	AirportNode NodeType = iota
	WaypointNode
)

func (t NodeType) String() string {
	switch t {
	case AirportNode:
		return "airport"
	case WaypointNode:
		return "waypoint"
	default:
		return "unknown"
	}
}

// AirportInfo is the payload carried by airport nodes.
type AirportInfo struct {
	Name      string
	City      string
	Country   string
	Elevation int // feet
}

// WaypointInfo is the payload carried by waypoint nodes.
type WaypointInfo struct {
	CountryCode string
	CountryName string
}

// Node is a vertex of the route graph: a common header (ID, Coord) plus the
// payload selected by Type. Only the payload matching Type is meaningful.
type Node struct {
	ID       string
	Coord    Coordinate
	Type     NodeType
	Airport  AirportInfo
	Waypoint WaypointInfo
}

func NewAirport(icao, name, city, country string, elevation int, coord Coordinate) Node {
	return Node{
		ID:    icao,
		Coord: coord,
		Type:  AirportNode,
		Airport: AirportInfo{
			Name:      name,
			City:      city,
			Country:   country,
			Elevation: elevation,
		},
	}
}

func NewWaypoint(ident, countryCode, countryName string, coord Coordinate) Node {
	return Node{
		ID:    ident,
		Coord: coord,
		Type:  WaypointNode,
		Waypoint: WaypointInfo{
			CountryCode: countryCode,
			CountryName: countryName,
		},
	}
}

func (n Node) IsAirport() bool  { return n.Type == AirportNode }
func (n Node) IsWaypoint() bool { return n.Type == WaypointNode }
