//go:build !linux

package transport

import (
	"errors"

	"github.com/cansimple-protocol/cansimple-go/pkg/cansimple"
)

// ErrUnsupported is returned on platforms without SocketCAN.
var ErrUnsupported = errors.New("transport: socketcan requires linux")

// SocketCAN is only functional on Linux; this stub keeps callers
// compiling elsewhere.
type SocketCAN struct{}

// NewSocketCAN fails on non-Linux platforms.
func NewSocketCAN(ifname string) (*SocketCAN, error) {
	return nil, ErrUnsupported
}

// Name returns the bound interface name.
func (s *SocketCAN) Name() string { return "" }

// Send fails on non-Linux platforms.
func (s *SocketCAN) Send(cansimple.Frame) error { return ErrUnsupported }

// Receive fails on non-Linux platforms.
func (s *SocketCAN) Receive() (cansimple.Frame, error) {
	return cansimple.Frame{}, ErrUnsupported
}

// Close is a no-op.
func (s *SocketCAN) Close() error { return nil }

// Compile-time interface satisfaction check.
var _ Bus = (*SocketCAN)(nil)
