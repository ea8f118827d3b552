package client

import (
	"errors"
	"fmt"

	"github.com/cansimple-protocol/cansimple-go/pkg/cansimple"
)

var (
	// ErrDispatcherClosed is returned by operations on a closed
	// dispatcher.
	ErrDispatcherClosed = errors.New("client: dispatcher closed")

	// ErrUnknownParameter is returned when a parameter name is not
	// present in the endpoint directory. Surfaced before any frame
	// is sent.
	ErrUnknownParameter = errors.New("client: parameter not in endpoint directory")

	// ErrEndpointRange is returned when a directory entry's id does
	// not fit the 16-bit endpoint field of the SDO payload.
	ErrEndpointRange = errors.New("client: endpoint id exceeds 16 bits")

	// ErrKindMismatch is returned when a value written by name does
	// not match the type the directory declares for the parameter.
	ErrKindMismatch = errors.New("client: value kind does not match directory entry")
)

// FrameLengthError reports a matched reply whose payload is not the
// fixed 8 bytes every CAN-Simple reply carries. It is terminal for the
// call that received it, never skipped or retried.
type FrameLengthError struct {
	ID  cansimple.ID
	Len int
}

func (e *FrameLengthError) Error() string {
	return fmt.Sprintf("client: reply %s carries %d payload bytes, want 8", e.ID, e.Len)
}
