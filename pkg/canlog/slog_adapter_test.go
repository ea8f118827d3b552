package canlog

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/cansimple-protocol/cansimple-go/pkg/cansimple"
)

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	adapter.Log(Event{
		Time:       time.Now(),
		Direction:  DirectionRX,
		ID:         cansimple.IDFromRaw(0x029),
		Len:        8,
		ExchangeID: "abc-123",
	})

	out := buf.String()
	for _, want := range []string{"dir=RX", "id=0x029", "node=1", "cmd=0x09", "len=8", "exchange_id=abc-123"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	adapter.Log(Event{Direction: DirectionDrop, ID: cansimple.IDFromRaw(0x3FF), Err: errors.New("boom")})
	if out := buf.String(); !strings.Contains(out, "dir=DROP") || !strings.Contains(out, "error=boom") {
		t.Errorf("drop event output:\n%s", out)
	}
}

func TestDirectionString(t *testing.T) {
	tests := []struct {
		d    Direction
		want string
	}{
		{DirectionTX, "TX"},
		{DirectionRX, "RX"},
		{DirectionDrop, "DROP"},
		{Direction(9), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.d.String(); got != tt.want {
			t.Errorf("Direction(%d).String() = %q, want %q", tt.d, got, tt.want)
		}
	}
}
