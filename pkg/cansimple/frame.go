package cansimple

import "errors"

// MaxDataLen is the classical CAN payload limit. CAN-FD payloads are
// not supported.
const MaxDataLen = 8

// ErrDataTooLong is returned when a frame payload exceeds MaxDataLen.
var ErrDataTooLong = errors.New("cansimple: frame data exceeds 8 bytes")

// Frame is one classical CAN frame as exchanged with a transport Bus.
// A frame never outlives a single exchange; the engine copies payloads
// it hands out.
type Frame struct {
	ID     ID
	Data   []byte
	Remote bool
}

// NewFrame builds a data frame, copying data so the caller's slice can
// be reused.
func NewFrame(id ID, data []byte) (Frame, error) {
	if len(data) > MaxDataLen {
		return Frame{}, ErrDataTooLong
	}
	d := make([]byte, len(data))
	copy(d, data)
	return Frame{ID: id, Data: d}, nil
}

// NewRemoteFrame builds a zero-length remote transmission request that
// solicits the data frame carrying the same identifier.
func NewRemoteFrame(id ID) Frame {
	return Frame{ID: id, Remote: true}
}
