package wire

import "encoding/binary"

// SDO opcodes, byte 0 of an RxSdo request.
const (
	SDOOpcodeRead  uint8 = 0
	SDOOpcodeWrite uint8 = 1
)

// SDO payload layout, request and reply alike:
//
//	[0]    opcode (request) / unused (reply)
//	[1:3]  endpoint id, little-endian
//	[3]    reserved
//	[4:8]  value slot (zero for read requests)

// MarshalSDORead builds the 8-byte RxSdo payload requesting the value
// of an endpoint.
func MarshalSDORead(endpoint uint16) []byte {
	b := make([]byte, 8)
	b[0] = SDOOpcodeRead
	binary.LittleEndian.PutUint16(b[1:3], endpoint)
	return b
}

// MarshalSDOWrite builds the 8-byte RxSdo payload writing a value to
// an endpoint.
func MarshalSDOWrite(endpoint uint16, v Value) []byte {
	b := make([]byte, 8)
	b[0] = SDOOpcodeWrite
	binary.LittleEndian.PutUint16(b[1:3], endpoint)
	slot := v.MarshalCAN()
	copy(b[4:8], slot[:])
	return b
}

// SDOReply is a parsed TxSdo payload. The endpoint echo is the second
// half of the correlation key: several reads may be outstanding on the
// same reply identifier at once.
type SDOReply struct {
	Opcode   uint8
	Endpoint uint16
	Slot     [4]byte
}

// ParseSDOReply parses a TxSdo payload.
func ParseSDOReply(data []byte) (SDOReply, error) {
	if err := checkLen("TxSdo", data); err != nil {
		return SDOReply{}, err
	}
	r := SDOReply{
		Opcode:   data[0],
		Endpoint: binary.LittleEndian.Uint16(data[1:3]),
	}
	copy(r.Slot[:], data[4:8])
	return r, nil
}

// Value decodes the reply's value slot with the expected kind. The
// wire carries no type tag; the kind comes from the directory lookup
// that produced the endpoint id.
func (r SDOReply) Value(kind ValueKind) (Value, error) {
	return DecodeValue(r.Slot[:], kind)
}

// SDOReplyEndpoint extracts the endpoint echo from a TxSdo payload
// without requiring a full 8-byte parse. Used by the dispatcher to
// route reply frames; ok is false when the payload is too short to
// carry an endpoint.
func SDOReplyEndpoint(data []byte) (uint16, bool) {
	if len(data) < 3 {
		return 0, false
	}
	return binary.LittleEndian.Uint16(data[1:3]), true
}
