package client

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cansimple-protocol/cansimple-go/pkg/canlog"
	"github.com/cansimple-protocol/cansimple-go/pkg/cansimple"
	"github.com/cansimple-protocol/cansimple-go/pkg/transport"
	"github.com/cansimple-protocol/cansimple-go/pkg/wire"
)

// Dispatcher owns the receive side of a Bus and fans inbound frames
// out to the operations waiting on them. Create one per bus; any
// number of Axis values may share it.
type Dispatcher struct {
	bus    transport.Bus
	logger canlog.Logger

	mu      sync.Mutex
	waiters map[uint16][]*waiter
	err     error // sticky receive failure

	closeOnce sync.Once
}

// waiter is one outstanding query. Delivery is one-shot: the result
// channel is buffered so the read loop never blocks on a slow caller.
type waiter struct {
	exchangeID string
	endpoint   uint16
	filterEP   bool
	ch         chan waitResult
}

type waitResult struct {
	frame cansimple.Frame
	err   error
}

// NewDispatcher starts a dispatcher over the given bus. A nil logger
// disables protocol logging.
func NewDispatcher(bus transport.Bus, logger canlog.Logger) *Dispatcher {
	if logger == nil {
		logger = canlog.NoopLogger{}
	}
	d := &Dispatcher{
		bus:     bus,
		logger:  logger,
		waiters: make(map[uint16][]*waiter),
	}
	go d.readLoop()
	return d
}

// Close stops the dispatcher and closes the underlying bus. Every
// outstanding query fails with ErrDispatcherClosed.
func (d *Dispatcher) Close() error {
	var err error
	d.closeOnce.Do(func() {
		d.fail(ErrDispatcherClosed)
		err = d.bus.Close()
	})
	return err
}

// Send transmits one frame. Transport errors propagate verbatim; the
// engine never retries.
func (d *Dispatcher) Send(f cansimple.Frame) error {
	err := d.bus.Send(f)
	d.logger.Log(canlog.Event{
		Time:      time.Now(),
		Direction: canlog.DirectionTX,
		ID:        f.ID,
		Remote:    f.Remote,
		Len:       len(f.Data),
		Err:       err,
	})
	return err
}

func (d *Dispatcher) readLoop() {
	for {
		f, err := d.bus.Receive()
		if err != nil {
			d.fail(err)
			return
		}
		d.route(f)
	}
}

// fail delivers err to every outstanding waiter and makes it the
// sticky error for all future registrations.
func (d *Dispatcher) fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err == nil {
		d.err = err
	}
	for _, list := range d.waiters {
		for _, w := range list {
			w.ch <- waitResult{err: d.err}
		}
	}
	d.waiters = make(map[uint16][]*waiter)
}

// route hands an inbound frame to the first matching waiter, FIFO per
// identifier. Unmatched frames are not errors; the bus is shared and
// carries traffic for waiters that do not exist here.
func (d *Dispatcher) route(f cansimple.Frame) {
	d.mu.Lock()
	list := d.waiters[f.ID.Raw()]
	match := -1
	for i, w := range list {
		if w.filterEP {
			ep, ok := wire.SDOReplyEndpoint(f.Data)
			if !ok || ep != w.endpoint {
				continue
			}
		}
		match = i
		break
	}
	var w *waiter
	if match >= 0 {
		w = list[match]
		d.waiters[f.ID.Raw()] = append(list[:match], list[match+1:]...)
	}
	d.mu.Unlock()

	ev := canlog.Event{
		Time:      time.Now(),
		Direction: canlog.DirectionDrop,
		ID:        f.ID,
		Remote:    f.Remote,
		Len:       len(f.Data),
	}
	if w != nil {
		ev.Direction = canlog.DirectionRX
		ev.ExchangeID = w.exchangeID
		w.ch <- waitResult{frame: f}
	}
	d.logger.Log(ev)
}

// pending is a registered one-shot reply slot.
type pending struct {
	d *Dispatcher
	w *waiter
	k uint16
}

// expect registers interest in the next frame carrying id. Callers
// register before transmitting the request so a fast reply cannot be
// lost.
func (d *Dispatcher) expect(id cansimple.ID) (*pending, error) {
	return d.register(&waiter{
		exchangeID: uuid.NewString(),
		ch:         make(chan waitResult, 1),
	}, id)
}

// expectSDO registers interest in the next frame carrying id whose
// payload echoes the given endpoint. Replies for other endpoints pass
// by untouched: they belong to other outstanding reads.
func (d *Dispatcher) expectSDO(id cansimple.ID, endpoint uint16) (*pending, error) {
	return d.register(&waiter{
		exchangeID: uuid.NewString(),
		endpoint:   endpoint,
		filterEP:   true,
		ch:         make(chan waitResult, 1),
	}, id)
}

func (d *Dispatcher) register(w *waiter, id cansimple.ID) (*pending, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	d.waiters[id.Raw()] = append(d.waiters[id.Raw()], w)
	return &pending{d: d, w: w, k: id.Raw()}, nil
}

// exchangeID identifies this query in protocol logs.
func (p *pending) exchangeID() string {
	return p.w.exchangeID
}

// wait blocks until the matching frame arrives, the dispatcher fails,
// or ctx is cancelled.
func (p *pending) wait(ctx context.Context) (cansimple.Frame, error) {
	select {
	case res := <-p.w.ch:
		return res.frame, res.err
	case <-ctx.Done():
		p.cancel()
		// A frame may have been delivered while cancelling.
		select {
		case res := <-p.w.ch:
			return res.frame, res.err
		default:
			return cansimple.Frame{}, ctx.Err()
		}
	}
}

// cancel removes the waiter if it has not been matched yet.
func (p *pending) cancel() {
	p.d.mu.Lock()
	defer p.d.mu.Unlock()
	list := p.d.waiters[p.k]
	for i, w := range list {
		if w == p.w {
			p.d.waiters[p.k] = append(list[:i], list[i+1:]...)
			return
		}
	}
}
