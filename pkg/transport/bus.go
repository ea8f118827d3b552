package transport

import (
	"errors"

	"github.com/cansimple-protocol/cansimple-go/pkg/cansimple"
)

// ErrClosed is returned by operations on a closed bus.
var ErrClosed = errors.New("transport: bus closed")

// Bus is a frame transport. Implemented by SocketCAN and Pipe.
type Bus interface {
	// Send transmits one frame. Safe for concurrent use.
	Send(f cansimple.Frame) error

	// Receive blocks until the next inbound frame arrives or the
	// bus fails. Intended for a single consuming reader.
	Receive() (cansimple.Frame, error)

	// Close releases the bus and unblocks a pending Receive.
	Close() error
}
