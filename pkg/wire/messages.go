package wire

import (
	"encoding/binary"
	"fmt"
	"math"
)

// LengthError reports a telemetry payload that is not the fixed 8
// bytes its layout requires.
type LengthError struct {
	Name string
	Len  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("wire: %s payload is %d bytes, want %d", e.Name, e.Len, ReplyLen)
}

func checkLen(name string, data []byte) error {
	if len(data) != ReplyLen {
		return &LengthError{Name: name, Len: len(data)}
	}
	return nil
}

// twoFloats decodes the common telemetry layout: two little-endian
// float32 fields at offsets 0 and 4.
func twoFloats(data []byte) (float32, float32) {
	a := math.Float32frombits(binary.LittleEndian.Uint32(data[0:4]))
	b := math.Float32frombits(binary.LittleEndian.Uint32(data[4:8]))
	return a, b
}

func putTwoFloats(a, b float32) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint32(out[0:4], math.Float32bits(a))
	binary.LittleEndian.PutUint32(out[4:8], math.Float32bits(b))
	return out
}

// VersionInfo is the Get_Version reply, one field per payload byte.
type VersionInfo struct {
	Protocol     uint8
	HWMajor      uint8
	HWMinor      uint8
	HWVariant    uint8
	FWMajor      uint8
	FWMinor      uint8
	FWRevision   uint8
	FWUnreleased bool
}

// DecodeVersionInfo decodes a Get_Version reply payload.
func DecodeVersionInfo(data []byte) (VersionInfo, error) {
	if err := checkLen("Get_Version", data); err != nil {
		return VersionInfo{}, err
	}
	return VersionInfo{
		Protocol:     data[0],
		HWMajor:      data[1],
		HWMinor:      data[2],
		HWVariant:    data[3],
		FWMajor:      data[4],
		FWMinor:      data[5],
		FWRevision:   data[6],
		FWUnreleased: data[7] == 1,
	}, nil
}

func (v VersionInfo) String() string {
	s := fmt.Sprintf("hw %d.%d.%d fw %d.%d.%d (protocol %d)",
		v.HWMajor, v.HWMinor, v.HWVariant, v.FWMajor, v.FWMinor, v.FWRevision, v.Protocol)
	if v.FWUnreleased {
		s += " unreleased"
	}
	return s
}

// ErrorState is the Get_Error reply: the active error bitset and the
// bitset recorded at the moment the axis disarmed.
type ErrorState struct {
	Active       AxisErrors
	DisarmReason AxisErrors
}

// DecodeErrorState decodes a Get_Error reply payload.
func DecodeErrorState(data []byte) (ErrorState, error) {
	if err := checkLen("Get_Error", data); err != nil {
		return ErrorState{}, err
	}
	return ErrorState{
		Active:       AxisErrors(binary.LittleEndian.Uint32(data[0:4])),
		DisarmReason: AxisErrors(binary.LittleEndian.Uint32(data[4:8])),
	}, nil
}

// Heartbeat is the periodic axis status broadcast.
type Heartbeat struct {
	Errors         AxisErrors
	State          AxisState
	Result         ProcedureResult
	TrajectoryDone bool
}

// DecodeHeartbeat decodes a Heartbeat payload.
func DecodeHeartbeat(data []byte) (Heartbeat, error) {
	if err := checkLen("Heartbeat", data); err != nil {
		return Heartbeat{}, err
	}
	return Heartbeat{
		Errors:         AxisErrors(binary.LittleEndian.Uint32(data[0:4])),
		State:          AxisState(data[4]),
		Result:         ProcedureResult(data[5]),
		TrajectoryDone: data[6]&0x01 != 0,
	}, nil
}

// EncoderEstimates is the Get_Encoder_Estimates reply.
type EncoderEstimates struct {
	Position float32 // rev
	Velocity float32 // rev/s
}

// DecodeEncoderEstimates decodes a Get_Encoder_Estimates reply payload.
func DecodeEncoderEstimates(data []byte) (EncoderEstimates, error) {
	if err := checkLen("Get_Encoder_Estimates", data); err != nil {
		return EncoderEstimates{}, err
	}
	p, v := twoFloats(data)
	return EncoderEstimates{Position: p, Velocity: v}, nil
}

// Iq is the Get_Iq reply.
type Iq struct {
	Setpoint float32 // A
	Measured float32 // A
}

// DecodeIq decodes a Get_Iq reply payload.
func DecodeIq(data []byte) (Iq, error) {
	if err := checkLen("Get_Iq", data); err != nil {
		return Iq{}, err
	}
	s, m := twoFloats(data)
	return Iq{Setpoint: s, Measured: m}, nil
}

// Temperatures is the Get_Temperature reply.
type Temperatures struct {
	FET   float32 // degC
	Motor float32 // degC
}

// DecodeTemperatures decodes a Get_Temperature reply payload.
func DecodeTemperatures(data []byte) (Temperatures, error) {
	if err := checkLen("Get_Temperature", data); err != nil {
		return Temperatures{}, err
	}
	f, m := twoFloats(data)
	return Temperatures{FET: f, Motor: m}, nil
}

// BusVoltageCurrent is the Get_Bus_Voltage_Current reply.
type BusVoltageCurrent struct {
	Voltage float32 // V
	Current float32 // A
}

// DecodeBusVoltageCurrent decodes a Get_Bus_Voltage_Current reply payload.
func DecodeBusVoltageCurrent(data []byte) (BusVoltageCurrent, error) {
	if err := checkLen("Get_Bus_Voltage_Current", data); err != nil {
		return BusVoltageCurrent{}, err
	}
	v, c := twoFloats(data)
	return BusVoltageCurrent{Voltage: v, Current: c}, nil
}

// Torques is the Get_Torques reply.
type Torques struct {
	Target   float32 // Nm
	Estimate float32 // Nm
}

// DecodeTorques decodes a Get_Torques reply payload.
func DecodeTorques(data []byte) (Torques, error) {
	if err := checkLen("Get_Torques", data); err != nil {
		return Torques{}, err
	}
	tgt, est := twoFloats(data)
	return Torques{Target: tgt, Estimate: est}, nil
}

// Powers is the Get_Powers reply.
type Powers struct {
	Electrical float32 // W
	Mechanical float32 // W
}

// DecodePowers decodes a Get_Powers reply payload.
func DecodePowers(data []byte) (Powers, error) {
	if err := checkLen("Get_Powers", data); err != nil {
		return Powers{}, err
	}
	e, m := twoFloats(data)
	return Powers{Electrical: e, Mechanical: m}, nil
}

// RebootAction selects what the Reboot command does.
type RebootAction uint8

const (
	RebootActionReboot RebootAction = 0
	RebootActionSave   RebootAction = 1
	RebootActionErase  RebootAction = 2
	RebootActionDFU2   RebootAction = 3
)

// Outbound payload encoders. Each produces exactly the RequestLen the
// catalog declares for its command.

// EncodeAxisState encodes a Set_Axis_State payload.
func EncodeAxisState(s AxisState) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, uint32(s))
	return out
}

// EncodeControllerMode encodes a Set_Controller_Mode payload.
func EncodeControllerMode(c ControlMode, i InputMode) []byte {
	return []byte{uint8(c), uint8(i)}
}

// EncodeInputPos encodes a Set_Input_Pos payload.
// Velocity and torque feed-forwards are in firmware scale units
// (0.001 rev/s and 0.001 Nm by default).
func EncodeInputPos(position float32, velocityFF, torqueFF int16) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint32(out[0:4], math.Float32bits(position))
	binary.LittleEndian.PutUint16(out[4:6], uint16(velocityFF))
	binary.LittleEndian.PutUint16(out[6:8], uint16(torqueFF))
	return out
}

// EncodeInputVel encodes a Set_Input_Vel payload.
func EncodeInputVel(velocity, torqueFF float32) []byte {
	return putTwoFloats(velocity, torqueFF)
}

// EncodeInputTorque encodes a Set_Input_Torque payload.
func EncodeInputTorque(torque float32) []byte {
	return EncodeFloat32(torque)
}

// EncodeLimits encodes a Set_Limits payload.
func EncodeLimits(velocityLimit, currentLimit float32) []byte {
	return putTwoFloats(velocityLimit, currentLimit)
}

// EncodeTrajAccelLimits encodes a Set_Traj_Accel_Limits payload.
func EncodeTrajAccelLimits(accel, decel float32) []byte {
	return putTwoFloats(accel, decel)
}

// EncodeVelGains encodes a Set_Vel_Gains payload.
func EncodeVelGains(gain, integratorGain float32) []byte {
	return putTwoFloats(gain, integratorGain)
}

// EncodeReboot encodes a Reboot payload.
func EncodeReboot(action RebootAction) []byte {
	return []byte{uint8(action)}
}

// EncodeClearErrors encodes a Clear_Errors payload. The identify flag
// makes the device blink its status LED.
func EncodeClearErrors(identify bool) []byte {
	if identify {
		return []byte{1}
	}
	return []byte{0}
}

// EncodeFloat32 encodes the single-float payload shared by
// Set_Traj_Vel_Limit, Set_Traj_Inertia, Set_Absolute_Position and
// Set_Pos_Gain.
func EncodeFloat32(f float32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, math.Float32bits(f))
	return out
}
