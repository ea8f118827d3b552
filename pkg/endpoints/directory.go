package endpoints

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/cansimple-protocol/cansimple-go/pkg/wire"
)

// Entry is one resolved endpoint: the numeric id the device addresses
// it by and the declared value type.
type Entry struct {
	ID   uint64
	Kind wire.ValueKind
}

// Directory maps parameter names to endpoints. Read-only after
// construction; safe for concurrent lookups.
type Directory struct {
	entries map[string]Entry
}

// FromDocument builds a directory from an already-parsed endpoints
// document. It never fails as a whole: malformed entries are skipped.
func FromDocument(doc map[string]any) *Directory {
	dir := &Directory{entries: make(map[string]Entry)}

	eps, ok := doc["endpoints"].(map[string]any)
	if !ok {
		return dir
	}

	for name, raw := range eps {
		ep, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		typeStr, ok := ep["type"].(string)
		if !ok {
			continue
		}
		kind, ok := wire.ValueKindFromString(typeStr)
		if !ok {
			continue
		}
		id, ok := numericID(ep["id"])
		if !ok {
			continue
		}
		dir.entries[name] = Entry{ID: id, Kind: kind}
	}

	return dir
}

// numericID accepts the integer forms a JSON or YAML decoder may
// produce for the "id" field.
func numericID(v any) (uint64, bool) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n != math.Trunc(n) || n > math.MaxUint32 {
			return 0, false
		}
		return uint64(n), true
	case json.Number:
		u, err := n.Int64()
		if err != nil || u < 0 {
			return 0, false
		}
		return uint64(u), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case int64:
		if n < 0 {
			return 0, false
		}
		return uint64(n), true
	case uint64:
		return n, true
	default:
		return 0, false
	}
}

// ParseJSON builds a directory from raw flat_endpoints.json bytes.
func ParseJSON(data []byte) (*Directory, error) {
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("endpoints: parse document: %w", err)
	}
	return FromDocument(doc), nil
}

// LoadFile reads and parses a flat_endpoints.json file.
func LoadFile(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("endpoints: read %s: %w", path, err)
	}
	return ParseJSON(data)
}

// Lookup resolves a parameter name. Matching is exact and
// case-sensitive.
func (d *Directory) Lookup(name string) (Entry, bool) {
	e, ok := d.entries[name]
	return e, ok
}

// Len returns the number of usable entries.
func (d *Directory) Len() int {
	return len(d.entries)
}

// Names returns every parameter name in sorted order.
func (d *Directory) Names() []string {
	names := make([]string, 0, len(d.entries))
	for name := range d.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
