package endpoints

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"

	"github.com/cansimple-protocol/cansimple-go/pkg/wire"
)

// cacheVersion is the current cache file format version.
const cacheVersion = 1

// ErrCacheVersion is returned when a cache file was written by an
// incompatible format version. Callers should fall back to the JSON
// document and rewrite the cache.
var ErrCacheVersion = errors.New("endpoints: unsupported cache version")

// cacheFile is the CBOR representation of a parsed directory.
// Integer keys keep the file compact.
type cacheFile struct {
	Version int                   `cbor:"1,keyasint"`
	Entries map[string]cacheEntry `cbor:"2,keyasint"`
}

type cacheEntry struct {
	ID   uint64 `cbor:"1,keyasint"`
	Kind uint8  `cbor:"2,keyasint"`
}

// SaveCache writes the directory to a CBOR cache file. The write goes
// through a temporary file and rename so a crash cannot leave a
// truncated cache behind.
func (d *Directory) SaveCache(path string) error {
	cf := cacheFile{
		Version: cacheVersion,
		Entries: make(map[string]cacheEntry, len(d.entries)),
	}
	for name, e := range d.entries {
		cf.Entries[name] = cacheEntry{ID: e.ID, Kind: uint8(e.Kind)}
	}

	data, err := cbor.Marshal(cf)
	if err != nil {
		return fmt.Errorf("endpoints: encode cache: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".endpoints-cache-*")
	if err != nil {
		return fmt.Errorf("endpoints: write cache: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("endpoints: write cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("endpoints: write cache: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("endpoints: write cache: %w", err)
	}
	return nil
}

// LoadCache reads a directory from a CBOR cache file written by
// SaveCache. Entries whose kind byte is not a known ValueKind are
// dropped, mirroring the leniency of FromDocument.
func LoadCache(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("endpoints: read cache %s: %w", path, err)
	}

	var cf cacheFile
	if err := cbor.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("endpoints: decode cache: %w", err)
	}
	if cf.Version != cacheVersion {
		return nil, fmt.Errorf("%w: %d", ErrCacheVersion, cf.Version)
	}

	dir := &Directory{entries: make(map[string]Entry, len(cf.Entries))}
	for name, e := range cf.Entries {
		kind := wire.ValueKind(e.Kind)
		if !kind.Valid() {
			continue
		}
		dir.entries[name] = Entry{ID: e.ID, Kind: kind}
	}
	return dir, nil
}
