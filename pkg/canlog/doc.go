// Package canlog provides frame-level protocol logging.
//
// The protocol engine emits one Event per frame it transmits, routes
// to a waiter, or drops. Applications plug in a Logger implementation;
// SlogAdapter bridges to log/slog for console use, NoopLogger disables
// logging entirely.
package canlog
