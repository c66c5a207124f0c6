package models

import "flight-route-server/routing"

type GraphResponse struct {
	Nodes []NodeView `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

// NodeView is the wire form of a node. Exactly one of the embedded payloads
// is set, chosen by Type.
type NodeView struct {
	ID   string           `json:"id"`
	Lat  float64          `json:"lat"`
	Lng  float64          `json:"lng"`
	Type routing.NodeType `json:"type"`
	*AirportFields
	*WaypointFields
}

type AirportFields struct {
	Name      string `json:"name"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Elevation int    `json:"elevation"`
}

type WaypointFields struct {
	CountryCode string `json:"countryCode"`
	CountryName string `json:"countryName"`
}

type EdgeView struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
}

type NearestResponse struct {
	Node       NodeView `json:"node"`
	DistanceNM float64  `json:"distanceNm"`
}

func NewNodeView(n routing.Node) NodeView {
	v := NodeView{
		ID:   n.ID,
		Lat:  n.Coord.Lat,
		Lng:  n.Coord.Lon,
		Type: n.Type,
	}
	switch n.Type {
	case routing.AirportNode:
		v.AirportFields = &AirportFields{
			Name:      n.Airport.Name,
			City:      n.Airport.City,
			Country:   n.Airport.Country,
			Elevation: n.Airport.Elevation,
		}
	case routing.WaypointNode:
		v.WaypointFields = &WaypointFields{
			CountryCode: n.Waypoint.CountryCode,
			CountryName: n.Waypoint.CountryName,
		}
	}
	return v
}

func NewGraphResponse(nodes []routing.Node, edges []routing.Edge) GraphResponse {
	resp := GraphResponse{
		Nodes: make([]NodeView, 0, len(nodes)),
		Edges: make([]EdgeView, 0, len(edges)),
	}
	for _, n := range nodes {
		resp.Nodes = append(resp.Nodes, NewNodeView(n))
	}
	for _, e := range edges {
		resp.Edges = append(resp.Edges, EdgeView{From: e.From, To: e.To, Distance: e.Distance})
	}
	return resp
}
