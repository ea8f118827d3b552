// Package transport carries CAN-Simple frames over a physical or
// in-memory bus.
//
// The Bus interface is the collaborator the protocol engine drives:
// Send may be called from any goroutine, Receive is consumed by a
// single reader (the client Dispatcher fans inbound frames out to
// waiters). Implementations here:
//
//   - SocketCAN: a Linux CAN_RAW socket (classic can_frame layout).
//   - Pipe: two cross-connected in-memory ends, for tests and
//     simulated devices.
//
// Reconnection and backoff are out of scope; a failed bus surfaces its
// error and stays failed.
package transport
