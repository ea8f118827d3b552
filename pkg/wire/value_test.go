package wire

import (
	"errors"
	"testing"
)

func TestValueRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		v    Value
	}{
		{"bool false", NewBool(false)},
		{"bool true", NewBool(true)},
		{"uint8 zero", NewUint8(0)},
		{"uint8 max", NewUint8(255)},
		{"int8 min", NewInt8(-128)},
		{"int8 max", NewInt8(127)},
		{"uint16 max", NewUint16(65535)},
		{"int16 min", NewInt16(-32768)},
		{"int16 negative", NewInt16(-1)},
		{"uint32 max", NewUint32(0xFFFFFFFF)},
		{"int32 min", NewInt32(-2147483648)},
		{"float", NewFloat32(1.234)},
		{"float zero", NewFloat32(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := tt.v.MarshalCAN()
			got, err := DecodeValue(enc[:], tt.v.Kind())
			if err != nil {
				t.Fatalf("DecodeValue: %v", err)
			}
			if got != tt.v {
				t.Errorf("round trip = %v, want %v", got, tt.v)
			}
		})
	}
}

func TestValueEncodingLayout(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want [4]byte
	}{
		{"float 1.234", NewFloat32(1.234), [4]byte{0xb6, 0xf3, 0x9d, 0x3f}},
		{"bool true", NewBool(true), [4]byte{1, 0, 0, 0}},
		{"uint16 packs low", NewUint16(0x1234), [4]byte{0x34, 0x12, 0, 0}},
		{"int16 sign extension stays out of padding", NewInt16(-2), [4]byte{0xFE, 0xFF, 0, 0}},
		{"int8 keeps one byte", NewInt8(-1), [4]byte{0xFF, 0, 0, 0}},
		{"uint32 fills slot", NewUint32(0xA1B2C3D4), [4]byte{0xD4, 0xC3, 0xB2, 0xA1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.MarshalCAN(); got != tt.want {
				t.Errorf("MarshalCAN() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestBoolDecode(t *testing.T) {
	// True exactly when byte 0 equals 1. Anything else is false,
	// never an error.
	for _, b := range []byte{0, 1, 2, 3, 255} {
		v, err := DecodeValue([]byte{b, 0, 0, 0}, KindBool)
		if err != nil {
			t.Fatalf("DecodeValue(%d): %v", b, err)
		}
		if got, want := v.Bool(), b == 1; got != want {
			t.Errorf("byte %d decodes to %t, want %t", b, got, want)
		}
	}
}

func TestDecodeValueShort(t *testing.T) {
	if _, err := DecodeValue([]byte{1, 2, 3}, KindUint32); !errors.Is(err, ErrShortValue) {
		t.Errorf("3-byte slot: err = %v, want ErrShortValue", err)
	}

	// Extra bytes beyond the slot are ignored.
	v, err := DecodeValue([]byte{7, 0, 0, 0, 0xAA, 0xBB}, KindUint8)
	if err != nil || v.Uint8() != 7 {
		t.Errorf("wide slice decode = (%v, %v), want uint8 7", v, err)
	}
}

func TestValueKindFromString(t *testing.T) {
	for _, s := range []string{"bool", "uint8", "int8", "uint16", "int16", "uint32", "int32", "float"} {
		kind, ok := ValueKindFromString(s)
		if !ok {
			t.Fatalf("ValueKindFromString(%q) not recognized", s)
		}
		if kind.String() != s {
			t.Errorf("kind %q round trips to %q", s, kind.String())
		}
	}

	if _, ok := ValueKindFromString("endpoint_ref"); ok {
		t.Error("unknown type string must not be recognized")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		kind ValueKind
		in   string
		want Value
	}{
		{KindBool, "true", NewBool(true)},
		{KindUint8, "200", NewUint8(200)},
		{KindInt16, "-42", NewInt16(-42)},
		{KindUint32, "0x10", NewUint32(16)},
		{KindFloat32, "1.234", NewFloat32(1.234)},
	}
	for _, tt := range tests {
		got, err := ParseValue(tt.kind, tt.in)
		if err != nil {
			t.Fatalf("ParseValue(%s, %q): %v", tt.kind, tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseValue(%s, %q) = %v, want %v", tt.kind, tt.in, got, tt.want)
		}
	}

	if _, err := ParseValue(KindInt8, "300"); err == nil {
		t.Error("out-of-range int8 must fail")
	}
}
