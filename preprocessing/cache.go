package preprocessing

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"flight-route-server/routing"
)

const nodeCacheVersion = 2

var (
	ErrCacheVersion = errors.New("preprocessing: unsupported node cache version")
	ErrCacheStale   = errors.New("preprocessing: node cache built for another country")
)

// nodeCache is the on-disk layout. Edges are not stored; they are rebuilt
// from coordinates on load.
type nodeCache struct {
	Version     int
	CountryCode string
	Nodes       []routing.Node
}

func isCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".zst")
}

// WriteNodeCache gob-encodes the nodes loaded for countryCode to path,
// zstd-compressed when path ends in ".zst".
func WriteNodeCache(path, countryCode string, nodes []routing.Node) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create node cache %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	w := io.Writer(f)
	if isCompressed(path) {
		zw, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return fmt.Errorf("zstd writer: %w", err)
		}
		defer func() {
			if cerr := zw.Close(); err == nil && cerr != nil {
				err = cerr
			}
		}()
		w = zw
	}

	if err := gob.NewEncoder(w).Encode(nodeCache{Version: nodeCacheVersion, CountryCode: countryCode, Nodes: nodes}); err != nil {
		return fmt.Errorf("failed to encode node cache %s: %w", path, err)
	}
	return nil
}

// ReadNodeCache decodes a file written by WriteNodeCache. A cache written for
// a different country yields ErrCacheStale.
func ReadNodeCache(path, countryCode string) ([]routing.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open node cache %s: %w", path, err)
	}
	defer f.Close()

	r := io.Reader(f)
	if isCompressed(path) {
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(0))
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var cache nodeCache
	if err := gob.NewDecoder(r).Decode(&cache); err != nil {
		return nil, fmt.Errorf("failed to decode node cache %s: %w", path, err)
	}
	if cache.Version != nodeCacheVersion {
		return nil, fmt.Errorf("%w: %d", ErrCacheVersion, cache.Version)
	}
	if cache.CountryCode != countryCode {
		return nil, fmt.Errorf("%w: have %q, want %q", ErrCacheStale, cache.CountryCode, countryCode)
	}
	if cache.Nodes == nil {
		cache.Nodes = []routing.Node{}
	}
	return cache.Nodes, nil
}
