// Package endpoints resolves human-readable parameter names to the
// numeric endpoint id and value type the SDO sub-protocol needs.
//
// Each firmware release ships a flat_endpoints.json file mapping a
// flattened configuration tree to endpoint ids:
//
//	{"endpoints": {"vbus_voltage": {"id": 1, "type": "float", "access": "r"}}}
//
// Construction is deliberately lenient: entries with a missing or
// non-numeric id, or a type string this client does not recognize, are
// dropped rather than failing the whole directory, so a partial or
// forward-incompatible file still yields a usable directory.
//
// A parsed directory can be cached to a compact CBOR file keyed by the
// caller (typically per firmware version) to avoid re-parsing the
// large JSON document on every start.
package endpoints
