package endpoints

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cansimple-protocol/cansimple-go/pkg/wire"
)

const sampleDoc = `{
	"endpoints": {
		"vbus_voltage":                {"id": 1, "type": "float", "access": "r"},
		"axis0.controller.config.vel_limit": {"id": 389, "type": "float", "access": "rw"},
		"axis0.config.enable_watchdog":      {"id": 301, "type": "bool", "access": "rw"},
		"serial_number":               {"id": 4, "type": "uint64", "access": "r"},
		"missing_id":                  {"type": "float"},
		"string_id":                   {"id": "one", "type": "float"},
		"not_an_object":               7
	}
}`

func TestParseJSON(t *testing.T) {
	dir, err := ParseJSON([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	e, ok := dir.Lookup("vbus_voltage")
	if !ok {
		t.Fatal("vbus_voltage not found")
	}
	if e.ID != 1 || e.Kind != wire.KindFloat32 {
		t.Errorf("vbus_voltage = %+v, want id 1 kind float", e)
	}

	if e, ok := dir.Lookup("axis0.config.enable_watchdog"); !ok || e.Kind != wire.KindBool {
		t.Errorf("enable_watchdog = (%+v, %t)", e, ok)
	}

	// Lenient construction: malformed and forward-incompatible
	// entries are dropped, not fatal.
	for _, name := range []string{"serial_number", "missing_id", "string_id", "not_an_object"} {
		if _, ok := dir.Lookup(name); ok {
			t.Errorf("%s should have been dropped", name)
		}
	}

	if _, ok := dir.Lookup("no_such_parameter"); ok {
		t.Error("unknown name must miss")
	}
	// Case-sensitive exact match.
	if _, ok := dir.Lookup("Vbus_Voltage"); ok {
		t.Error("lookup must be case-sensitive")
	}

	if dir.Len() != 3 {
		t.Errorf("Len() = %d, want 3", dir.Len())
	}
}

func TestFromDocumentTolerance(t *testing.T) {
	// No endpoints key at all still yields a usable, empty directory.
	dir := FromDocument(map[string]any{"version": 1})
	if dir.Len() != 0 {
		t.Errorf("Len() = %d, want 0", dir.Len())
	}

	// json.Number ids are accepted.
	dir = FromDocument(map[string]any{
		"endpoints": map[string]any{
			"p": map[string]any{"id": json.Number("7"), "type": "int32"},
		},
	})
	if e, ok := dir.Lookup("p"); !ok || e.ID != 7 || e.Kind != wire.KindInt32 {
		t.Errorf("json.Number entry = (%+v, %t)", e, ok)
	}

	// Negative and fractional ids are not endpoint ids.
	dir = FromDocument(map[string]any{
		"endpoints": map[string]any{
			"neg":  map[string]any{"id": float64(-1), "type": "float"},
			"frac": map[string]any{"id": 1.5, "type": "float"},
		},
	})
	if dir.Len() != 0 {
		t.Errorf("Len() = %d, want 0", dir.Len())
	}
}

func TestNames(t *testing.T) {
	dir, _ := ParseJSON([]byte(sampleDoc))
	names := dir.Names()
	want := []string{"axis0.config.enable_watchdog", "axis0.controller.config.vel_limit", "vbus_voltage"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestCacheRoundTrip(t *testing.T) {
	dir, _ := ParseJSON([]byte(sampleDoc))
	path := filepath.Join(t.TempDir(), "endpoints.cache")

	if err := dir.SaveCache(path); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}

	loaded, err := LoadCache(path)
	if err != nil {
		t.Fatalf("LoadCache: %v", err)
	}
	if loaded.Len() != dir.Len() {
		t.Fatalf("loaded %d entries, want %d", loaded.Len(), dir.Len())
	}
	for _, name := range dir.Names() {
		want, _ := dir.Lookup(name)
		got, ok := loaded.Lookup(name)
		if !ok || got != want {
			t.Errorf("%s = (%+v, %t), want %+v", name, got, ok, want)
		}
	}
}

func TestLoadCacheBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "endpoints.cache")
	dir, _ := ParseJSON([]byte(sampleDoc))
	if err := dir.SaveCache(path); err != nil {
		t.Fatalf("SaveCache: %v", err)
	}

	if err := os.WriteFile(path, []byte("not cbor"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCache(path); err == nil {
		t.Error("garbage cache must fail to load")
	}

	if _, err := LoadCache(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("missing cache must fail to load")
	}
}
