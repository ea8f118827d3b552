package cansimple

import "fmt"

// rawMask keeps identifiers within the standard 11-bit CAN range.
const rawMask = 0x7FF

// Field widths of the packed identifier.
const (
	maxNode    = 0x3F // 6 bits
	maxCommand = 0x1F // 5 bits
)

// RangeError reports a node or command value that does not fit its bit
// field in the arbitration identifier. It is returned before anything
// touches the wire.
type RangeError struct {
	Field string
	Value uint8
	Max   uint8
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("cansimple: %s %d out of range (max %d)", e.Field, e.Value, e.Max)
}

// ID is an 11-bit CAN-Simple arbitration identifier.
//
// ID is an immutable value type: two identifiers are equal exactly when
// their raw bits are equal.
type ID uint16

// NewID packs a node address and command into an identifier.
// It fails with a *RangeError if node > 63 or command > 31.
func NewID(node, command uint8) (ID, error) {
	if node > maxNode {
		return 0, &RangeError{Field: "node", Value: node, Max: maxNode}
	}
	if command > maxCommand {
		return 0, &RangeError{Field: "command", Value: command, Max: maxCommand}
	}
	return ID(uint16(node)<<5 | uint16(command)), nil
}

// IDFromRaw builds an identifier from a raw value as read off the bus.
// The value is masked to 11 bits; every masked value decomposes into a
// valid (node, command) pair, so this never fails.
func IDFromRaw(raw uint16) ID {
	return ID(raw & rawMask)
}

// Raw returns the 11-bit identifier value.
func (id ID) Raw() uint16 {
	return uint16(id)
}

// Node returns the axis address encoded in the upper 6 bits.
func (id ID) Node() uint8 {
	return uint8(id >> 5)
}

// Command returns the command code encoded in the lower 5 bits.
func (id ID) Command() uint8 {
	return uint8(id & maxCommand)
}

func (id ID) String() string {
	return fmt.Sprintf("0x%03X[node=%d cmd=0x%02X]", uint16(id), id.Node(), id.Command())
}
