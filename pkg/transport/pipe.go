package transport

import (
	"sync"

	"github.com/cansimple-protocol/cansimple-go/pkg/cansimple"
)

// pipeBuffer is the per-direction frame capacity of a Pipe.
const pipeBuffer = 64

// pipeCore is the state shared by both ends of a Pipe.
type pipeCore struct {
	closeOnce sync.Once
	done      chan struct{}
}

func (c *pipeCore) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// PipeBus is one end of an in-memory bus. Frames sent on one end
// arrive at the other, in order.
type PipeBus struct {
	core *pipeCore
	out  chan<- cansimple.Frame
	in   <-chan cansimple.Frame
}

// Pipe returns two connected in-memory bus ends. Closing either end
// fails both.
func Pipe() (*PipeBus, *PipeBus) {
	core := &pipeCore{done: make(chan struct{})}
	ab := make(chan cansimple.Frame, pipeBuffer)
	ba := make(chan cansimple.Frame, pipeBuffer)

	a := &PipeBus{core: core, out: ab, in: ba}
	b := &PipeBus{core: core, out: ba, in: ab}
	return a, b
}

// Send queues a frame for the peer end.
func (p *PipeBus) Send(f cansimple.Frame) error {
	if len(f.Data) > cansimple.MaxDataLen {
		return cansimple.ErrDataTooLong
	}
	select {
	case p.out <- f:
		return nil
	case <-p.core.done:
		return ErrClosed
	}
}

// Receive blocks for the next frame from the peer end.
func (p *PipeBus) Receive() (cansimple.Frame, error) {
	select {
	case f := <-p.in:
		return f, nil
	case <-p.core.done:
		// Drain frames queued before the close.
		select {
		case f := <-p.in:
			return f, nil
		default:
			return cansimple.Frame{}, ErrClosed
		}
	}
}

// Close fails both ends of the pipe.
func (p *PipeBus) Close() error {
	p.core.close()
	return nil
}

// Compile-time interface satisfaction check.
var _ Bus = (*PipeBus)(nil)
