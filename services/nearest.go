package services

import (
	"errors"

	"github.com/hailocab/go-geoindex"

	"flight-route-server/models"
	"flight-route-server/routing"
)

const DefaultNearestRadiusKm = 200.0

var ErrNoNearbyNode = errors.New("services: no node within radius")

type indexedNode struct {
	node routing.Node
}

func (p *indexedNode) Id() string   { return p.node.ID }
func (p *indexedNode) Lat() float64 { return p.node.Coord.Lat }
func (p *indexedNode) Lon() float64 { return p.node.Coord.Lon }

// NearestIndex answers nearest-node queries over a fixed node set.
type NearestIndex struct {
	index *geoindex.PointsIndex
}

func NewNearestIndex(nodes []routing.Node) *NearestIndex {
	index := geoindex.NewPointsIndex(geoindex.Km(5))
	for _, n := range nodes {
		index.Add(&indexedNode{node: n})
	}
	return &NearestIndex{index: index}
}

// Nearest returns the closest node of the given kind within radiusKm of
// (lat, lon), and its distance in nautical miles.
func (ni *NearestIndex) Nearest(lat, lon float64, kind models.NodeKind, radiusKm float64) (routing.Node, float64, error) {
	if radiusKm <= 0 {
		radiusKm = DefaultNearestRadiusKm
	}
	origin := &geoindex.GeoPoint{Pid: "", Plat: lat, Plon: lon}

	found := ni.index.KNearest(origin, 1, geoindex.Km(radiusKm), func(p geoindex.Point) bool {
		n := p.(*indexedNode).node
		switch kind {
		case models.AirportKind:
			return n.IsAirport()
		case models.WaypointKind:
			return n.IsWaypoint()
		default:
			return true
		}
	})
	if len(found) == 0 {
		return routing.Node{}, 0, ErrNoNearbyNode
	}

	n := found[0].(*indexedNode).node
	return n, routing.Distance(routing.Coordinate{Lat: lat, Lon: lon}, n.Coord), nil
}
