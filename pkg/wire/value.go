package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ValueKind identifies the type of an SDO parameter value.
type ValueKind uint8

const (
	KindBool ValueKind = iota
	KindUint8
	KindInt8
	KindUint16
	KindInt16
	KindUint32
	KindInt32
	KindFloat32
)

// Valid reports whether k is a known kind.
func (k ValueKind) Valid() bool {
	return k <= KindFloat32
}

// String returns the kind name as used in endpoints files.
func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindUint8:
		return "uint8"
	case KindInt8:
		return "int8"
	case KindUint16:
		return "uint16"
	case KindInt16:
		return "int16"
	case KindUint32:
		return "uint32"
	case KindInt32:
		return "int32"
	case KindFloat32:
		return "float"
	default:
		return fmt.Sprintf("ValueKind(%d)", uint8(k))
	}
}

// ValueKindFromString parses the "type" string of an endpoints file
// entry. Unrecognized strings report ok == false.
func ValueKindFromString(s string) (ValueKind, bool) {
	switch s {
	case "bool":
		return KindBool, true
	case "uint8":
		return KindUint8, true
	case "int8":
		return KindInt8, true
	case "uint16":
		return KindUint16, true
	case "int16":
		return KindInt16, true
	case "uint32":
		return KindUint32, true
	case "int32":
		return KindInt32, true
	case "float":
		return KindFloat32, true
	default:
		return 0, false
	}
}

// ErrShortValue is returned when fewer than 4 bytes are available to
// decode a value slot.
var ErrShortValue = errors.New("wire: value slot needs 4 bytes")

// Value is a typed parameter value, the tagged union carried in the
// 4-byte slot of an SDO frame. The zero Value is Bool(false).
//
// Values are comparable: two values are equal when kind and payload
// bits are equal.
type Value struct {
	kind ValueKind
	bits uint32
}

// NewBool returns a Bool value.
func NewBool(v bool) Value {
	var bits uint32
	if v {
		bits = 1
	}
	return Value{kind: KindBool, bits: bits}
}

// NewUint8 returns a Uint8 value.
func NewUint8(v uint8) Value { return Value{kind: KindUint8, bits: uint32(v)} }

// NewInt8 returns an Int8 value.
func NewInt8(v int8) Value { return Value{kind: KindInt8, bits: uint32(uint8(v))} }

// NewUint16 returns a Uint16 value.
func NewUint16(v uint16) Value { return Value{kind: KindUint16, bits: uint32(v)} }

// NewInt16 returns an Int16 value.
func NewInt16(v int16) Value { return Value{kind: KindInt16, bits: uint32(uint16(v))} }

// NewUint32 returns a Uint32 value.
func NewUint32(v uint32) Value { return Value{kind: KindUint32, bits: v} }

// NewInt32 returns an Int32 value.
func NewInt32(v int32) Value { return Value{kind: KindInt32, bits: uint32(v)} }

// NewFloat32 returns a Float32 value.
func NewFloat32(v float32) Value { return Value{kind: KindFloat32, bits: math.Float32bits(v)} }

// Kind returns the value's type tag.
func (v Value) Kind() ValueKind { return v.kind }

// Bool returns the payload as a bool.
func (v Value) Bool() bool { return v.bits == 1 }

// Uint8 returns the payload as a uint8.
func (v Value) Uint8() uint8 { return uint8(v.bits) }

// Int8 returns the payload as an int8.
func (v Value) Int8() int8 { return int8(uint8(v.bits)) }

// Uint16 returns the payload as a uint16.
func (v Value) Uint16() uint16 { return uint16(v.bits) }

// Int16 returns the payload as an int16.
func (v Value) Int16() int16 { return int16(uint16(v.bits)) }

// Uint32 returns the payload as a uint32.
func (v Value) Uint32() uint32 { return v.bits }

// Int32 returns the payload as an int32.
func (v Value) Int32() int32 { return int32(v.bits) }

// Float32 returns the payload as a float32.
func (v Value) Float32() float32 { return math.Float32frombits(v.bits) }

// Float64 widens any kind to float64, for display and scripting.
// Bool maps to 0 or 1.
func (v Value) Float64() float64 {
	switch v.kind {
	case KindBool, KindUint8, KindUint16, KindUint32:
		return float64(v.bits)
	case KindInt8:
		return float64(v.Int8())
	case KindInt16:
		return float64(v.Int16())
	case KindInt32:
		return float64(v.Int32())
	case KindFloat32:
		return float64(v.Float32())
	default:
		return 0
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindUint8, KindUint16, KindUint32:
		return strconv.FormatUint(uint64(v.bits), 10)
	case KindInt8:
		return strconv.FormatInt(int64(v.Int8()), 10)
	case KindInt16:
		return strconv.FormatInt(int64(v.Int16()), 10)
	case KindInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(v.Float32()), 'g', -1, 32)
	default:
		return fmt.Sprintf("Value{%s}", v.kind)
	}
}

// MarshalCAN encodes the value into its canonical 4-byte little-endian
// form: left-packed, unused trailing bytes zero.
func (v Value) MarshalCAN() [4]byte {
	var b [4]byte
	switch v.kind {
	case KindBool, KindUint8, KindInt8:
		b[0] = byte(v.bits)
	case KindUint16, KindInt16:
		binary.LittleEndian.PutUint16(b[:2], uint16(v.bits))
	default:
		binary.LittleEndian.PutUint32(b[:], v.bits)
	}
	return b
}

// DecodeValue reads a value of the given kind from the first 4 bytes
// of data. Bool decodes true exactly when byte 0 equals 1; any other
// byte value is false, not an error.
func DecodeValue(data []byte, kind ValueKind) (Value, error) {
	if len(data) < 4 {
		return Value{}, ErrShortValue
	}
	switch kind {
	case KindBool:
		return NewBool(data[0] == 1), nil
	case KindUint8:
		return NewUint8(data[0]), nil
	case KindInt8:
		return NewInt8(int8(data[0])), nil
	case KindUint16:
		return NewUint16(binary.LittleEndian.Uint16(data)), nil
	case KindInt16:
		return NewInt16(int16(binary.LittleEndian.Uint16(data))), nil
	case KindUint32:
		return NewUint32(binary.LittleEndian.Uint32(data)), nil
	case KindInt32:
		return NewInt32(int32(binary.LittleEndian.Uint32(data))), nil
	case KindFloat32:
		return NewFloat32(math.Float32frombits(binary.LittleEndian.Uint32(data))), nil
	default:
		return Value{}, fmt.Errorf("wire: unknown value kind %d", uint8(kind))
	}
}

// ParseValue converts a textual value (as typed into a shell or read
// from a config file) into a Value of the given kind.
func ParseValue(kind ValueKind, s string) (Value, error) {
	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Value{}, fmt.Errorf("wire: parse bool %q: %w", s, err)
		}
		return NewBool(b), nil
	case KindUint8, KindUint16, KindUint32:
		bits := map[ValueKind]int{KindUint8: 8, KindUint16: 16, KindUint32: 32}[kind]
		u, err := strconv.ParseUint(s, 0, bits)
		if err != nil {
			return Value{}, fmt.Errorf("wire: parse %s %q: %w", kind, s, err)
		}
		switch kind {
		case KindUint8:
			return NewUint8(uint8(u)), nil
		case KindUint16:
			return NewUint16(uint16(u)), nil
		default:
			return NewUint32(uint32(u)), nil
		}
	case KindInt8, KindInt16, KindInt32:
		bits := map[ValueKind]int{KindInt8: 8, KindInt16: 16, KindInt32: 32}[kind]
		i, err := strconv.ParseInt(s, 0, bits)
		if err != nil {
			return Value{}, fmt.Errorf("wire: parse %s %q: %w", kind, s, err)
		}
		switch kind {
		case KindInt8:
			return NewInt8(int8(i)), nil
		case KindInt16:
			return NewInt16(int16(i)), nil
		default:
			return NewInt32(int32(i)), nil
		}
	case KindFloat32:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return Value{}, fmt.Errorf("wire: parse float %q: %w", s, err)
		}
		return NewFloat32(float32(f)), nil
	default:
		return Value{}, fmt.Errorf("wire: unknown value kind %d", uint8(kind))
	}
}
