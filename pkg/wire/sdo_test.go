package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestMarshalSDORead(t *testing.T) {
	got := MarshalSDORead(0x0102)
	want := []byte{0, 0x02, 0x01, 0, 0, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("MarshalSDORead = % X, want % X", got, want)
	}
}

func TestMarshalSDOWrite(t *testing.T) {
	got := MarshalSDOWrite(1, NewFloat32(1.234))
	want := []byte{1, 0x01, 0x00, 0, 0xb6, 0xf3, 0x9d, 0x3f}
	if !bytes.Equal(got, want) {
		t.Errorf("MarshalSDOWrite = % X, want % X", got, want)
	}
}

func TestParseSDOReply(t *testing.T) {
	data := []byte{0, 0x01, 0x00, 0, 0xb6, 0xf3, 0x9d, 0x3f}
	r, err := ParseSDOReply(data)
	if err != nil {
		t.Fatalf("ParseSDOReply: %v", err)
	}
	if r.Endpoint != 1 {
		t.Errorf("Endpoint = %d, want 1", r.Endpoint)
	}

	v, err := r.Value(KindFloat32)
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v.Float32() != 1.234 {
		t.Errorf("decoded %v, want 1.234", v.Float32())
	}

	var le *LengthError
	if _, err := ParseSDOReply(data[:7]); !errors.As(err, &le) {
		t.Errorf("short reply: err = %v, want *LengthError", err)
	}
}

func TestSDOReplyEndpoint(t *testing.T) {
	ep, ok := SDOReplyEndpoint([]byte{0, 0x34, 0x12, 0, 0, 0, 0, 0})
	if !ok || ep != 0x1234 {
		t.Errorf("SDOReplyEndpoint = (%d, %t)", ep, ok)
	}
	if _, ok := SDOReplyEndpoint([]byte{0, 0x34}); ok {
		t.Error("2-byte payload cannot carry an endpoint echo")
	}
}
