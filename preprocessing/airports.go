package preprocessing

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"flight-route-server/routing"
)

type airportRecord struct {
	Name      string      `json:"name"`
	City      string      `json:"city"`
	Country   string      `json:"country"`
	Lat       float64     `json:"lat"`
	Lon       float64     `json:"lon"`
	Elevation json.Number `json:"elevation"`
}

// LoadAirports reads a JSON object keyed by ICAO code and keeps the airports
// whose country equals countryCode. The result is sorted by ICAO code.
func LoadAirports(path, countryCode string) ([]routing.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open airports: %w", err)
	}
	defer f.Close()

	return readAirports(f, countryCode)
}

func readAirports(src io.Reader, countryCode string) ([]routing.Node, error) {
	dec := json.NewDecoder(src)
	dec.UseNumber()

	var records map[string]airportRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("parse airports: %w", err)
	}

	codes := make([]string, 0, len(records))
	for icao, rec := range records {
		if rec.Country == countryCode {
			codes = append(codes, icao)
		}
	}
	sort.Strings(codes)

	out := make([]routing.Node, 0, len(codes))
	for _, icao := range codes {
		rec := records[icao]
		elevation, err := convertElevation(rec.Elevation)
		if err != nil {
			return nil, fmt.Errorf("airport %s: elevation: %w", icao, err)
		}
		out = append(out, routing.NewAirport(
			icao, rec.Name, rec.City, rec.Country, elevation,
			routing.Coordinate{Lat: rec.Lat, Lon: rec.Lon},
		))
	}
	return out, nil
}

// convertElevation accepts integer or fractional feet; a missing value is 0.
func convertElevation(n json.Number) (int, error) {
	if n == "" {
		return 0, nil
	}
	if v, err := n.Int64(); err == nil {
		return int(v), nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}
