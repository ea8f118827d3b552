package canlog

import (
	"time"

	"github.com/cansimple-protocol/cansimple-go/pkg/cansimple"
)

// Direction classifies what happened to the frame an event describes.
type Direction uint8

const (
	// DirectionTX marks a frame handed to the transport.
	DirectionTX Direction = iota

	// DirectionRX marks an inbound frame delivered to a waiter.
	DirectionRX

	// DirectionDrop marks an inbound frame no waiter matched.
	DirectionDrop
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionTX:
		return "TX"
	case DirectionRX:
		return "RX"
	case DirectionDrop:
		return "DROP"
	default:
		return "UNKNOWN"
	}
}

// Event is one frame-level protocol event.
type Event struct {
	// Time is when the event occurred.
	Time time.Time

	// Direction classifies the event.
	Direction Direction

	// ID is the frame's arbitration identifier.
	ID cansimple.ID

	// Remote is set for remote transmission requests.
	Remote bool

	// Len is the payload length in bytes.
	Len int

	// ExchangeID correlates a delivered reply with the query that
	// solicited it. Empty for unsolicited traffic.
	ExchangeID string

	// Err carries a transport or delivery failure, if any.
	Err error
}
