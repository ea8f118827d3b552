package wire

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
)

func TestDecodeVersionInfo(t *testing.T) {
	data := []byte{2, 4, 4, 58, 0, 6, 8, 1}
	v, err := DecodeVersionInfo(data)
	if err != nil {
		t.Fatalf("DecodeVersionInfo: %v", err)
	}
	want := VersionInfo{
		Protocol: 2, HWMajor: 4, HWMinor: 4, HWVariant: 58,
		FWMajor: 0, FWMinor: 6, FWRevision: 8, FWUnreleased: true,
	}
	if v != want {
		t.Errorf("decoded %+v, want %+v", v, want)
	}

	var le *LengthError
	if _, err := DecodeVersionInfo(data[:7]); !errors.As(err, &le) {
		t.Errorf("7-byte payload: err = %v, want *LengthError", err)
	}
}

func TestDecodeErrorStatePreservesUnknownBits(t *testing.T) {
	data := make([]byte, 8)
	// 0x80000001: INITIALIZING plus a bit this client does not name.
	binary.LittleEndian.PutUint32(data[0:4], 0x80000001)
	binary.LittleEndian.PutUint32(data[4:8], uint32(AxisErrorEstopRequested))

	s, err := DecodeErrorState(data)
	if err != nil {
		t.Fatalf("DecodeErrorState: %v", err)
	}
	if uint32(s.Active) != 0x80000001 {
		t.Errorf("Active = 0x%X, unknown bits must be retained", uint32(s.Active))
	}
	if !s.Active.Has(AxisErrorInitializing) {
		t.Error("known bit lost")
	}
	if s.DisarmReason != AxisErrorEstopRequested {
		t.Errorf("DisarmReason = %v", s.DisarmReason)
	}
}

func TestDecodeHeartbeat(t *testing.T) {
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data[0:4], uint32(AxisErrorDRVFault))
	data[4] = uint8(AxisStateClosedLoopControl)
	data[5] = uint8(ProcedureResultBusy)
	data[6] = 1

	h, err := DecodeHeartbeat(data)
	if err != nil {
		t.Fatalf("DecodeHeartbeat: %v", err)
	}
	if h.Errors != AxisErrorDRVFault || h.State != AxisStateClosedLoopControl ||
		h.Result != ProcedureResultBusy || !h.TrajectoryDone {
		t.Errorf("decoded %+v", h)
	}
}

func TestTwoFloatTelemetry(t *testing.T) {
	payload := func(a, b float32) []byte {
		out := make([]byte, 8)
		binary.LittleEndian.PutUint32(out[0:4], math.Float32bits(a))
		binary.LittleEndian.PutUint32(out[4:8], math.Float32bits(b))
		return out
	}

	enc, err := DecodeEncoderEstimates(payload(1.5, -0.25))
	if err != nil || enc.Position != 1.5 || enc.Velocity != -0.25 {
		t.Errorf("EncoderEstimates = %+v, %v", enc, err)
	}

	iq, err := DecodeIq(payload(3, 2.5))
	if err != nil || iq.Setpoint != 3 || iq.Measured != 2.5 {
		t.Errorf("Iq = %+v, %v", iq, err)
	}

	temp, err := DecodeTemperatures(payload(41.5, 38))
	if err != nil || temp.FET != 41.5 || temp.Motor != 38 {
		t.Errorf("Temperatures = %+v, %v", temp, err)
	}

	bus, err := DecodeBusVoltageCurrent(payload(24.1, 1.2))
	if err != nil || bus.Voltage != 24.1 || bus.Current != 1.2 {
		t.Errorf("BusVoltageCurrent = %+v, %v", bus, err)
	}

	tq, err := DecodeTorques(payload(0.5, 0.45))
	if err != nil || tq.Target != 0.5 || tq.Estimate != 0.45 {
		t.Errorf("Torques = %+v, %v", tq, err)
	}

	pw, err := DecodePowers(payload(12, 10))
	if err != nil || pw.Electrical != 12 || pw.Mechanical != 10 {
		t.Errorf("Powers = %+v, %v", pw, err)
	}
}

func TestEncodeInputPos(t *testing.T) {
	data := EncodeInputPos(1.234, -2, 3)
	if math.Float32frombits(binary.LittleEndian.Uint32(data[0:4])) != 1.234 {
		t.Error("position field wrong")
	}
	if int16(binary.LittleEndian.Uint16(data[4:6])) != -2 {
		t.Error("velocity feed-forward field wrong")
	}
	if int16(binary.LittleEndian.Uint16(data[6:8])) != 3 {
		t.Error("torque feed-forward field wrong")
	}
}

func TestAxisErrorsString(t *testing.T) {
	if got := AxisErrors(0).String(); got != "NONE" {
		t.Errorf("empty set = %q", got)
	}
	e := AxisErrorDRVFault | AxisErrorMotorOverTemp | 0x80000000
	got := e.String()
	if got != "DRV_FAULT|MOTOR_OVER_TEMP|0x80000000" {
		t.Errorf("String() = %q", got)
	}
}
