//go:build linux

package transport

import (
	"encoding/binary"
	"fmt"
	"net"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/cansimple-protocol/cansimple-go/pkg/cansimple"
)

// Classic can_frame flag bits and size, from <linux/can.h>.
const (
	canEFFFlag = 0x80000000 // extended (29-bit) frame
	canRTRFlag = 0x40000000 // remote transmission request
	canERRFlag = 0x20000000 // error message frame

	canFrameSize = 16
)

// SocketCAN is a Bus backed by a Linux CAN_RAW socket.
type SocketCAN struct {
	fd      int
	name    string
	writeMu sync.Mutex
}

// NewSocketCAN opens a CAN_RAW socket bound to the named interface
// (for example "can0").
func NewSocketCAN(ifname string) (*SocketCAN, error) {
	fd, err := unix.Socket(unix.AF_CAN, unix.SOCK_RAW, unix.CAN_RAW)
	if err != nil {
		return nil, fmt.Errorf("transport: socket: %w", err)
	}

	ifi, err := net.InterfaceByName(ifname)
	if err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("transport: interface %s: %w", ifname, err)
	}

	if err := unix.Bind(fd, &unix.SockaddrCAN{Ifindex: ifi.Index}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("transport: bind %s: %w", ifname, err)
	}

	return &SocketCAN{fd: fd, name: ifname}, nil
}

// Name returns the bound interface name.
func (s *SocketCAN) Name() string {
	return s.name
}

// Send transmits one frame in the classic 16-byte can_frame layout.
func (s *SocketCAN) Send(f cansimple.Frame) error {
	if len(f.Data) > cansimple.MaxDataLen {
		return cansimple.ErrDataTooLong
	}

	var buf [canFrameSize]byte
	id := uint32(f.ID.Raw())
	if f.Remote {
		id |= canRTRFlag
	}
	binary.LittleEndian.PutUint32(buf[0:4], id)
	buf[4] = byte(len(f.Data))
	copy(buf[8:], f.Data)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := unix.Write(s.fd, buf[:]); err != nil {
		return fmt.Errorf("transport: write %s: %w", s.name, err)
	}
	return nil
}

// Receive blocks for the next standard-identifier frame. Extended and
// error frames are outside the CAN-Simple identifier space and are
// skipped.
func (s *SocketCAN) Receive() (cansimple.Frame, error) {
	var buf [canFrameSize]byte
	for {
		n, err := unix.Read(s.fd, buf[:])
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return cansimple.Frame{}, fmt.Errorf("transport: read %s: %w", s.name, err)
		}
		if n < canFrameSize {
			continue
		}

		id := binary.LittleEndian.Uint32(buf[0:4])
		if id&(canEFFFlag|canERRFlag) != 0 {
			continue
		}

		f := cansimple.Frame{
			ID:     cansimple.IDFromRaw(uint16(id)),
			Remote: id&canRTRFlag != 0,
		}
		dlen := int(buf[4])
		if dlen > cansimple.MaxDataLen {
			dlen = cansimple.MaxDataLen
		}
		f.Data = make([]byte, dlen)
		copy(f.Data, buf[8:8+dlen])
		return f, nil
	}
}

// Close closes the socket, unblocking a pending Receive.
func (s *SocketCAN) Close() error {
	return unix.Close(s.fd)
}

// Compile-time interface satisfaction check.
var _ Bus = (*SocketCAN)(nil)
