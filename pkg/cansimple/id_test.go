package cansimple

import (
	"errors"
	"testing"
)

func TestIDPackUnpack(t *testing.T) {
	// ODrive node 1, command 9 (encoder estimates) packs to 0x029.
	id, err := NewID(1, 9)
	if err != nil {
		t.Fatalf("NewID(1, 9): %v", err)
	}
	if id.Raw() != 0x029 {
		t.Errorf("Raw() = 0x%03X, want 0x029", id.Raw())
	}
	if id.Node() != 1 || id.Command() != 9 {
		t.Errorf("unpack = (%d, %d), want (1, 9)", id.Node(), id.Command())
	}
}

func TestIDRoundTrip(t *testing.T) {
	for node := uint8(0); node <= 63; node++ {
		for command := uint8(0); command <= 31; command++ {
			id, err := NewID(node, command)
			if err != nil {
				t.Fatalf("NewID(%d, %d): %v", node, command, err)
			}
			back := IDFromRaw(id.Raw())
			if back.Node() != node || back.Command() != command {
				t.Fatalf("round trip (%d, %d) = (%d, %d)", node, command, back.Node(), back.Command())
			}
		}
	}
}

func TestIDFromRawMasks(t *testing.T) {
	for raw := 0; raw <= 0xFFFF; raw++ {
		id := IDFromRaw(uint16(raw))
		if id.Raw() != uint16(raw)&0x7FF {
			t.Fatalf("IDFromRaw(0x%04X).Raw() = 0x%04X, want 0x%04X", raw, id.Raw(), uint16(raw)&0x7FF)
		}
		// Masking is idempotent.
		if IDFromRaw(id.Raw()) != id {
			t.Fatalf("IDFromRaw not idempotent for 0x%04X", raw)
		}
	}
}

func TestNewIDRange(t *testing.T) {
	tests := []struct {
		name          string
		node, command uint8
	}{
		{"node too large", 64, 0},
		{"command too large", 0, 32},
		{"both too large", 255, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewID(tt.node, tt.command)
			var re *RangeError
			if !errors.As(err, &re) {
				t.Fatalf("NewID(%d, %d) = %v, want *RangeError", tt.node, tt.command, err)
			}
		})
	}
}

func TestNewFrameLimits(t *testing.T) {
	id := IDFromRaw(0x029)

	f, err := NewFrame(id, []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("NewFrame: %v", err)
	}
	if f.Remote {
		t.Error("data frame marked remote")
	}

	// The frame must not alias the caller's slice.
	src := []byte{9, 9}
	f, _ = NewFrame(id, src)
	src[0] = 0
	if f.Data[0] != 9 {
		t.Error("NewFrame aliased caller data")
	}

	if _, err := NewFrame(id, make([]byte, 9)); !errors.Is(err, ErrDataTooLong) {
		t.Errorf("9-byte frame: err = %v, want ErrDataTooLong", err)
	}

	r := NewRemoteFrame(id)
	if !r.Remote || len(r.Data) != 0 {
		t.Errorf("NewRemoteFrame = %+v, want remote with empty data", r)
	}
}
