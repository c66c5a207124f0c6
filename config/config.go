package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

var ErrInvalidValue = errors.New("config: invalid value")

type Config struct {
	Port          string
	DataDir       string
	WaypointsFile string
	AirportsFile  string
	NodeCacheFile string
	CountryCode   string
	MaxDistanceNM float64
	GinMode       string
}

// Load reads an optional .env file, then the environment.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DataDir:       getEnv("DATA_DIR", "data"),
		WaypointsFile: getEnv("WAYPOINTS_FILE", "waypoints.csv"),
		AirportsFile:  getEnv("AIRPORTS_FILE", "airports.json"),
		NodeCacheFile: getEnv("NODE_CACHE_FILE", "nodes.gob.zst"),
		CountryCode:   getEnv("COUNTRY_CODE", "MA"),
		GinMode:       getEnv("GIN_MODE", "debug"),
	}

	raw := getEnv("MAX_DISTANCE_NM", "100")
	maxDistance, err := strconv.ParseFloat(raw, 64)
	if err != nil || maxDistance < 0 {
		return Config{}, fmt.Errorf("%w: MAX_DISTANCE_NM=%q", ErrInvalidValue, raw)
	}
	cfg.MaxDistanceNM = maxDistance

	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return Config{}, fmt.Errorf("%w: PORT=%q", ErrInvalidValue, cfg.Port)
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return Config{}, fmt.Errorf("%w: GIN_MODE=%q", ErrInvalidValue, cfg.GinMode)
	}
	return cfg, nil
}

func (c Config) WaypointsPath() string { return c.resolve(c.WaypointsFile) }
func (c Config) AirportsPath() string  { return c.resolve(c.AirportsFile) }

// NodeCachePath is empty when caching is disabled (NODE_CACHE_FILE="-").
func (c Config) NodeCachePath() string {
	if c.NodeCacheFile == "-" {
		return ""
	}
	return c.resolve(c.NodeCacheFile)
}

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
