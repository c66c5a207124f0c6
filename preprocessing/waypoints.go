package preprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"flight-route-server/routing"
)

var ErrBadCoordinate = errors.New("preprocessing: bad coordinate")

// Waypoint CSV columns, in the order used when the header does not name them.
var waypointColumns = []string{"country_code", "country_name", "ident", "lat", "lon"}

// LoadWaypoints reads a waypoint CSV and keeps the rows of countryCode.
// The first row is a header. Rows with fewer than five fields are skipped.
func LoadWaypoints(path, countryCode string) ([]routing.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open waypoints: %w", err)
	}
	defer f.Close()

	return readWaypoints(f, countryCode)
}

func readWaypoints(src io.Reader, countryCode string) ([]routing.Node, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err == io.EOF {
		return []routing.Node{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read waypoints header: %w", err)
	}
	cols := columnPositions(headerIndex(header), waypointColumns)

	out := make([]routing.Node, 0)
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read waypoints row: %w", err)
		}
		if len(row) < len(waypointColumns) {
			continue
		}

		get := func(k string) string {
			i := cols[k]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		if get("country_code") != countryCode {
			continue
		}

		line, _ := r.FieldPos(0)
		lat, err := strconv.ParseFloat(get("lat"), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: waypoints line %d: lat %q", ErrBadCoordinate, line, get("lat"))
		}
		lon, err := strconv.ParseFloat(get("lon"), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: waypoints line %d: lon %q", ErrBadCoordinate, line, get("lon"))
		}

		out = append(out, routing.NewWaypoint(
			get("ident"),
			get("country_code"),
			get("country_name"),
			routing.Coordinate{Lat: lat, Lon: lon},
		))
	}
	return out, nil
}

func headerIndex(hdr []string) map[string]int {
	m := make(map[string]int, len(hdr))
	for i, k := range hdr {
		m[strings.ToLower(strings.TrimSpace(k))] = i
	}
	return m
}

// columnPositions resolves names through the header and falls back to the
// positional layout for any name the header lacks.
func columnPositions(h map[string]int, names []string) map[string]int {
	out := make(map[string]int, len(names))
	for pos, name := range names {
		if i, ok := h[name]; ok {
			out[name] = i
		} else {
			out[name] = pos
		}
	}
	return out
}
