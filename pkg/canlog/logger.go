package canlog

// Logger is the interface applications implement to receive protocol
// events. Pass nil or NoopLogger to disable logging.
type Logger interface {
	// Log records a protocol event. Implementations must be
	// thread-safe; the engine calls Log from its read loop, so slow
	// implementations should queue.
	Log(event Event)
}

// NoopLogger discards all events. Safe for concurrent use and usable
// as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
