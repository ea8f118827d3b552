// Package client is the CAN-Simple protocol engine: it correlates
// asynchronous reply frames with the requests that solicited them and
// exposes a typed per-axis command API.
//
// # Correlation
//
// CAN-Simple has no sequence numbers; the arbitration identifier (plus
// the endpoint echo for SDO reads) is the whole correlation key. A
// single Dispatcher goroutine owns the receive side of the Bus and
// routes every inbound frame to the first waiter whose key matches.
// Waiters sharing a key form a FIFO list, so concurrent queries for
// the identical (node, command) pair are answered in issue order
// instead of racing. Frames no waiter matches are dropped silently.
//
// # Blocking and timeouts
//
// The engine never retries and imposes no timeout of its own: a query
// whose reply never arrives blocks until its context is cancelled or
// the transport fails. Callers bound queries with context.WithTimeout.
package client
