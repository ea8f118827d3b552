package canlog

import (
	"context"
	"fmt"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger at Debug level.
// Useful for development when you want to see bus traffic in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given
// slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("dir", event.Direction.String()),
		slog.String("id", fmt.Sprintf("0x%03X", event.ID.Raw())),
		slog.Int("node", int(event.ID.Node())),
		slog.String("cmd", fmt.Sprintf("0x%02X", event.ID.Command())),
		slog.Int("len", event.Len),
	}
	if event.Remote {
		attrs = append(attrs, slog.Bool("rtr", true))
	}
	if event.ExchangeID != "" {
		attrs = append(attrs, slog.String("exchange_id", event.ExchangeID))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "can frame", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
