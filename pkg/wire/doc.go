// Package wire defines the fixed payload layouts of the CAN-Simple
// protocol: the command catalog, the telemetry message codecs, the
// SDO parameter-access payloads and the 4-byte typed value encoding.
//
// # Layout rules
//
// Every multi-byte field is little-endian. Telemetry replies are always
// exactly 8 bytes; most carry two float32 fields at offsets 0 and 4,
// the exceptions (version, error, heartbeat) use per-byte or bitset
// layouts. Outbound command payloads are fixed-length per command.
//
// # Typed values
//
// The SDO sub-protocol moves one parameter value per frame in a 4-byte
// slot. The slot is left-packed and zero-padded; it carries no type
// tag. The expected ValueKind must be known out of band, normally from
// an endpoints.Directory lookup.
//
// The command table in this package is the single source of truth for
// payload arities. It is validated once at package init.
package wire
