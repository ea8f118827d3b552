package transport

import (
	"errors"
	"testing"
	"time"

	"github.com/cansimple-protocol/cansimple-go/pkg/cansimple"
)

func TestPipeDelivery(t *testing.T) {
	a, b := Pipe()
	defer a.Close()

	f, _ := cansimple.NewFrame(cansimple.IDFromRaw(0x029), []byte{1, 2, 3})
	if err := a.Send(f); err != nil {
		t.Fatalf("Send: %v", err)
	}

	got, err := b.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if got.ID != f.ID || len(got.Data) != 3 || got.Data[0] != 1 {
		t.Errorf("received %+v, want %+v", got, f)
	}
}

func TestPipeOrdering(t *testing.T) {
	a, b := Pipe()
	defer a.Close()

	for i := 0; i < 10; i++ {
		f, _ := cansimple.NewFrame(cansimple.IDFromRaw(uint16(i)), nil)
		if err := a.Send(f); err != nil {
			t.Fatalf("Send %d: %v", i, err)
		}
	}
	for i := 0; i < 10; i++ {
		f, err := b.Receive()
		if err != nil {
			t.Fatalf("Receive %d: %v", i, err)
		}
		if f.ID.Raw() != uint16(i) {
			t.Fatalf("frame %d out of order: id 0x%03X", i, f.ID.Raw())
		}
	}
}

func TestPipeClose(t *testing.T) {
	a, b := Pipe()

	// A queued frame is still readable after close.
	f, _ := cansimple.NewFrame(cansimple.IDFromRaw(1), nil)
	if err := a.Send(f); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := b.Receive(); err != nil {
		t.Errorf("queued frame lost on close: %v", err)
	}
	if _, err := b.Receive(); !errors.Is(err, ErrClosed) {
		t.Errorf("Receive after drain = %v, want ErrClosed", err)
	}
	if err := a.Send(f); !errors.Is(err, ErrClosed) {
		t.Errorf("Send after close = %v, want ErrClosed", err)
	}
}

func TestPipeUnblocksReceiver(t *testing.T) {
	a, _ := Pipe()

	done := make(chan error, 1)
	go func() {
		_, err := a.Receive()
		done <- err
	}()

	a.Close()
	select {
	case err := <-done:
		if !errors.Is(err, ErrClosed) {
			t.Errorf("Receive = %v, want ErrClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Receive did not unblock on close")
	}
}

func TestPipeRejectsOversizedFrame(t *testing.T) {
	a, _ := Pipe()
	defer a.Close()

	f := cansimple.Frame{ID: cansimple.IDFromRaw(1), Data: make([]byte, 9)}
	if err := a.Send(f); !errors.Is(err, cansimple.ErrDataTooLong) {
		t.Errorf("Send = %v, want ErrDataTooLong", err)
	}
}
