package client

import (
	"context"
	"math"

	"github.com/cansimple-protocol/cansimple-go/pkg/cansimple"
	"github.com/cansimple-protocol/cansimple-go/pkg/endpoints"
	"github.com/cansimple-protocol/cansimple-go/pkg/wire"
)

// Axis addresses one motor axis on the bus. All methods are safe for
// concurrent use; queries on the same command form an ordered wait list
// in the dispatcher.
type Axis struct {
	d    *Dispatcher
	node uint8
	dir  *endpoints.Directory
}

// NewAxis returns an axis bound to the given node id (0-63). The
// directory may be nil; name-based parameter access then fails with
// ErrUnknownParameter.
func NewAxis(d *Dispatcher, node uint8, dir *endpoints.Directory) (*Axis, error) {
	if _, err := cansimple.NewID(node, 0); err != nil {
		return nil, err
	}
	return &Axis{d: d, node: node, dir: dir}, nil
}

// Node returns the axis node id.
func (a *Axis) Node() uint8 { return a.node }

// id builds the arbitration identifier for a command on this axis. The
// node was validated at construction and every catalog command fits 5
// bits, so this cannot fail.
func (a *Axis) id(cmd wire.Command) cansimple.ID {
	id, _ := cansimple.NewID(a.node, uint8(cmd))
	return id
}

// send transmits a fire-and-forget data frame.
func (a *Axis) send(cmd wire.Command, payload []byte) error {
	f, err := cansimple.NewFrame(a.id(cmd), payload)
	if err != nil {
		return err
	}
	return a.d.Send(f)
}

// query solicits a reply with a remote transmission request and blocks
// until it arrives. The waiter is registered before the request goes
// out so a fast device cannot answer into the void.
func (a *Axis) query(ctx context.Context, cmd wire.Command) ([]byte, error) {
	id := a.id(cmd)
	p, err := a.d.expect(id)
	if err != nil {
		return nil, err
	}
	if err := a.d.Send(cansimple.NewRemoteFrame(id)); err != nil {
		p.cancel()
		return nil, err
	}
	return a.await(ctx, p)
}

// await waits for a matched frame and enforces the fixed reply length.
// A short or long matched reply is terminal for this call, never
// skipped in favor of a later frame.
func (a *Axis) await(ctx context.Context, p *pending) ([]byte, error) {
	f, err := p.wait(ctx)
	if err != nil {
		return nil, err
	}
	if len(f.Data) != wire.ReplyLen {
		return nil, &FrameLengthError{ID: f.ID, Len: len(f.Data)}
	}
	return f.Data, nil
}

// Estop requests an immediate motor stop. Fire and forget; confirm via
// GetError or the heartbeat.
func (a *Axis) Estop() error {
	return a.send(wire.CmdEstop, nil)
}

// SetAxisState requests a state transition.
func (a *Axis) SetAxisState(s wire.AxisState) error {
	return a.send(wire.CmdSetAxisState, wire.EncodeAxisState(s))
}

// SetControllerMode selects the control and input modes.
func (a *Axis) SetControllerMode(c wire.ControlMode, i wire.InputMode) error {
	return a.send(wire.CmdSetControllerMode, wire.EncodeControllerMode(c, i))
}

// SetInputPosition sets the position setpoint with velocity and torque
// feed-forwards in firmware scale units.
func (a *Axis) SetInputPosition(position float32, velocityFF, torqueFF int16) error {
	return a.send(wire.CmdSetInputPos, wire.EncodeInputPos(position, velocityFF, torqueFF))
}

// SetInputVelocity sets the velocity setpoint and torque feed-forward.
func (a *Axis) SetInputVelocity(velocity, torqueFF float32) error {
	return a.send(wire.CmdSetInputVel, wire.EncodeInputVel(velocity, torqueFF))
}

// SetInputTorque sets the torque setpoint.
func (a *Axis) SetInputTorque(torque float32) error {
	return a.send(wire.CmdSetInputTorque, wire.EncodeInputTorque(torque))
}

// SetLimits sets the velocity and current limits.
func (a *Axis) SetLimits(velocityLimit, currentLimit float32) error {
	return a.send(wire.CmdSetLimits, wire.EncodeLimits(velocityLimit, currentLimit))
}

// SetTrajectoryVelocityLimit sets the trajectory planner velocity limit.
func (a *Axis) SetTrajectoryVelocityLimit(limit float32) error {
	return a.send(wire.CmdSetTrajVelLimit, wire.EncodeFloat32(limit))
}

// SetTrajectoryAccelLimits sets the trajectory planner acceleration and
// deceleration limits.
func (a *Axis) SetTrajectoryAccelLimits(accel, decel float32) error {
	return a.send(wire.CmdSetTrajAccelLimits, wire.EncodeTrajAccelLimits(accel, decel))
}

// SetTrajectoryInertia sets the trajectory planner inertia.
func (a *Axis) SetTrajectoryInertia(inertia float32) error {
	return a.send(wire.CmdSetTrajInertia, wire.EncodeFloat32(inertia))
}

// SetAbsolutePosition overwrites the current encoder position.
func (a *Axis) SetAbsolutePosition(position float32) error {
	return a.send(wire.CmdSetAbsolutePosition, wire.EncodeFloat32(position))
}

// SetPositionGain sets the position controller gain.
func (a *Axis) SetPositionGain(gain float32) error {
	return a.send(wire.CmdSetPosGain, wire.EncodeFloat32(gain))
}

// SetVelocityGains sets the velocity controller gains.
func (a *Axis) SetVelocityGains(gain, integratorGain float32) error {
	return a.send(wire.CmdSetVelGains, wire.EncodeVelGains(gain, integratorGain))
}

// ClearErrors clears the device error state. With identify set the
// device blinks its status LED instead.
func (a *Axis) ClearErrors(identify bool) error {
	return a.send(wire.CmdClearErrors, wire.EncodeClearErrors(identify))
}

// Reboot reboots the device without saving configuration.
func (a *Axis) Reboot() error {
	return a.send(wire.CmdReboot, wire.EncodeReboot(wire.RebootActionReboot))
}

// SaveConfiguration persists configuration and reboots.
func (a *Axis) SaveConfiguration() error {
	return a.send(wire.CmdReboot, wire.EncodeReboot(wire.RebootActionSave))
}

// EraseConfiguration erases configuration and reboots.
func (a *Axis) EraseConfiguration() error {
	return a.send(wire.CmdReboot, wire.EncodeReboot(wire.RebootActionErase))
}

// EnterDFUMode2 reboots the device into DFU mode 2.
func (a *Axis) EnterDFUMode2() error {
	return a.send(wire.CmdReboot, wire.EncodeReboot(wire.RebootActionDFU2))
}

// GetVersion queries hardware and firmware versions.
func (a *Axis) GetVersion(ctx context.Context) (wire.VersionInfo, error) {
	data, err := a.query(ctx, wire.CmdGetVersion)
	if err != nil {
		return wire.VersionInfo{}, err
	}
	return wire.DecodeVersionInfo(data)
}

// GetError queries the active error bitset and the disarm reason.
func (a *Axis) GetError(ctx context.Context) (wire.ErrorState, error) {
	data, err := a.query(ctx, wire.CmdGetError)
	if err != nil {
		return wire.ErrorState{}, err
	}
	return wire.DecodeErrorState(data)
}

// GetEncoderEstimates queries the position and velocity estimates.
func (a *Axis) GetEncoderEstimates(ctx context.Context) (wire.EncoderEstimates, error) {
	data, err := a.query(ctx, wire.CmdGetEncoderEstimates)
	if err != nil {
		return wire.EncoderEstimates{}, err
	}
	return wire.DecodeEncoderEstimates(data)
}

// GetIq queries the measured and setpoint quadrature currents.
func (a *Axis) GetIq(ctx context.Context) (wire.Iq, error) {
	data, err := a.query(ctx, wire.CmdGetIq)
	if err != nil {
		return wire.Iq{}, err
	}
	return wire.DecodeIq(data)
}

// GetTemperature queries the FET and motor temperatures.
func (a *Axis) GetTemperature(ctx context.Context) (wire.Temperatures, error) {
	data, err := a.query(ctx, wire.CmdGetTemperature)
	if err != nil {
		return wire.Temperatures{}, err
	}
	return wire.DecodeTemperatures(data)
}

// GetBusVoltageCurrent queries the DC bus voltage and current.
func (a *Axis) GetBusVoltageCurrent(ctx context.Context) (wire.BusVoltageCurrent, error) {
	data, err := a.query(ctx, wire.CmdGetBusVoltageCurrent)
	if err != nil {
		return wire.BusVoltageCurrent{}, err
	}
	return wire.DecodeBusVoltageCurrent(data)
}

// GetTorques queries the target and estimated torques.
func (a *Axis) GetTorques(ctx context.Context) (wire.Torques, error) {
	data, err := a.query(ctx, wire.CmdGetTorques)
	if err != nil {
		return wire.Torques{}, err
	}
	return wire.DecodeTorques(data)
}

// GetPowers queries the electrical and mechanical powers.
func (a *Axis) GetPowers(ctx context.Context) (wire.Powers, error) {
	data, err := a.query(ctx, wire.CmdGetPowers)
	if err != nil {
		return wire.Powers{}, err
	}
	return wire.DecodePowers(data)
}

// WaitHeartbeat blocks until the next heartbeat broadcast from this
// axis. The device sends heartbeats unsolicited; nothing is
// transmitted.
func (a *Axis) WaitHeartbeat(ctx context.Context) (wire.Heartbeat, error) {
	p, err := a.d.expect(a.id(wire.CmdHeartbeat))
	if err != nil {
		return wire.Heartbeat{}, err
	}
	data, err := a.await(ctx, p)
	if err != nil {
		return wire.Heartbeat{}, err
	}
	return wire.DecodeHeartbeat(data)
}

// ReadEndpoint reads one parameter over SDO. The reply is matched on
// the reply identifier plus the endpoint echo; the reply's opcode byte
// is not checked, matching device behavior in the field.
func (a *Axis) ReadEndpoint(ctx context.Context, endpoint uint16, kind wire.ValueKind) (wire.Value, error) {
	replyID := a.id(wire.CmdTxSDO)
	p, err := a.d.expectSDO(replyID, endpoint)
	if err != nil {
		return wire.Value{}, err
	}
	if err := a.send(wire.CmdRxSDO, wire.MarshalSDORead(endpoint)); err != nil {
		p.cancel()
		return wire.Value{}, err
	}
	data, err := a.await(ctx, p)
	if err != nil {
		return wire.Value{}, err
	}
	reply, err := wire.ParseSDOReply(data)
	if err != nil {
		return wire.Value{}, err
	}
	return reply.Value(kind)
}

// WriteEndpoint writes one parameter over SDO. The device does not
// acknowledge writes; read the endpoint back to confirm. The context
// is consulted before transmission only.
func (a *Axis) WriteEndpoint(ctx context.Context, endpoint uint16, v wire.Value) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.send(wire.CmdRxSDO, wire.MarshalSDOWrite(endpoint, v))
}

// lookup resolves a parameter name against the directory and range
// checks the endpoint id. Fails before any wire traffic.
func (a *Axis) lookup(name string) (uint16, wire.ValueKind, error) {
	if a.dir == nil {
		return 0, 0, ErrUnknownParameter
	}
	e, ok := a.dir.Lookup(name)
	if !ok {
		return 0, 0, ErrUnknownParameter
	}
	if e.ID > math.MaxUint16 {
		return 0, 0, ErrEndpointRange
	}
	return uint16(e.ID), e.Kind, nil
}

// ReadParameter reads a parameter by its directory name.
func (a *Axis) ReadParameter(ctx context.Context, name string) (wire.Value, error) {
	ep, kind, err := a.lookup(name)
	if err != nil {
		return wire.Value{}, err
	}
	return a.ReadEndpoint(ctx, ep, kind)
}

// WriteParameter writes a parameter by its directory name. The value's
// kind must match the type the directory declares.
func (a *Axis) WriteParameter(ctx context.Context, name string, v wire.Value) error {
	ep, kind, err := a.lookup(name)
	if err != nil {
		return err
	}
	if v.Kind() != kind {
		return ErrKindMismatch
	}
	return a.WriteEndpoint(ctx, ep, v)
}
