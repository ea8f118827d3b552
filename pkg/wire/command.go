package wire

import "fmt"

// Command is a CAN-Simple command code, carried in the low 5 bits of
// the arbitration identifier.
type Command uint8

// The CAN-Simple command set.
const (
	CmdGetVersion           Command = 0x00
	CmdHeartbeat            Command = 0x01
	CmdEstop                Command = 0x02
	CmdGetError             Command = 0x03
	CmdRxSDO                Command = 0x04
	CmdTxSDO                Command = 0x05
	CmdSetAxisState         Command = 0x07
	CmdGetEncoderEstimates  Command = 0x09
	CmdSetControllerMode    Command = 0x0B
	CmdSetInputPos          Command = 0x0C
	CmdSetInputVel          Command = 0x0D
	CmdSetInputTorque       Command = 0x0E
	CmdSetLimits            Command = 0x0F
	CmdSetTrajVelLimit      Command = 0x11
	CmdSetTrajAccelLimits   Command = 0x12
	CmdSetTrajInertia       Command = 0x13
	CmdGetIq                Command = 0x14
	CmdGetTemperature       Command = 0x15
	CmdReboot               Command = 0x16
	CmdGetBusVoltageCurrent Command = 0x17
	CmdClearErrors          Command = 0x18
	CmdSetAbsolutePosition  Command = 0x19
	CmdSetPosGain           Command = 0x1A
	CmdSetVelGains          Command = 0x1B
	CmdGetTorques           Command = 0x1C
	CmdGetPowers            Command = 0x1D
)

// ReplyLen is the fixed payload length of every solicited reply.
// Shorter or longer matching replies are a data-integrity error, never
// skipped.
const ReplyLen = 8

// Descriptor is one entry of the command catalog: the fixed wire
// layout of a command as the device firmware implements it.
type Descriptor struct {
	Cmd Command

	// Name is the protocol-level message name.
	Name string

	// RequestLen is the outbound payload length in bytes.
	RequestLen int

	// ReplyLen is the inbound payload length: ReplyLen (8) for
	// messages the device answers or broadcasts, 0 for
	// fire-and-forget commands.
	ReplyLen int

	// Query marks messages solicited with a remote transmission
	// request instead of a data frame.
	Query bool
}

// catalog is the single source of truth for per-command payload
// arities. Field layouts live in the per-message codecs of this
// package; the catalog pins the lengths they must produce.
var catalog = []Descriptor{
	{Cmd: CmdGetVersion, Name: "Get_Version", RequestLen: 0, ReplyLen: ReplyLen, Query: true},
	{Cmd: CmdHeartbeat, Name: "Heartbeat", RequestLen: 0, ReplyLen: ReplyLen},
	{Cmd: CmdEstop, Name: "Estop", RequestLen: 0},
	{Cmd: CmdGetError, Name: "Get_Error", RequestLen: 0, ReplyLen: ReplyLen, Query: true},
	{Cmd: CmdRxSDO, Name: "RxSdo", RequestLen: 8},
	{Cmd: CmdTxSDO, Name: "TxSdo", RequestLen: 0, ReplyLen: ReplyLen},
	{Cmd: CmdSetAxisState, Name: "Set_Axis_State", RequestLen: 4},
	{Cmd: CmdGetEncoderEstimates, Name: "Get_Encoder_Estimates", RequestLen: 0, ReplyLen: ReplyLen, Query: true},
	{Cmd: CmdSetControllerMode, Name: "Set_Controller_Mode", RequestLen: 2},
	{Cmd: CmdSetInputPos, Name: "Set_Input_Pos", RequestLen: 8},
	{Cmd: CmdSetInputVel, Name: "Set_Input_Vel", RequestLen: 8},
	{Cmd: CmdSetInputTorque, Name: "Set_Input_Torque", RequestLen: 4},
	{Cmd: CmdSetLimits, Name: "Set_Limits", RequestLen: 8},
	{Cmd: CmdSetTrajVelLimit, Name: "Set_Traj_Vel_Limit", RequestLen: 4},
	{Cmd: CmdSetTrajAccelLimits, Name: "Set_Traj_Accel_Limits", RequestLen: 8},
	{Cmd: CmdSetTrajInertia, Name: "Set_Traj_Inertia", RequestLen: 4},
	{Cmd: CmdGetIq, Name: "Get_Iq", RequestLen: 0, ReplyLen: ReplyLen, Query: true},
	{Cmd: CmdGetTemperature, Name: "Get_Temperature", RequestLen: 0, ReplyLen: ReplyLen, Query: true},
	{Cmd: CmdReboot, Name: "Reboot", RequestLen: 1},
	{Cmd: CmdGetBusVoltageCurrent, Name: "Get_Bus_Voltage_Current", RequestLen: 0, ReplyLen: ReplyLen, Query: true},
	{Cmd: CmdClearErrors, Name: "Clear_Errors", RequestLen: 1},
	{Cmd: CmdSetAbsolutePosition, Name: "Set_Absolute_Position", RequestLen: 4},
	{Cmd: CmdSetPosGain, Name: "Set_Pos_Gain", RequestLen: 4},
	{Cmd: CmdSetVelGains, Name: "Set_Vel_Gains", RequestLen: 8},
	{Cmd: CmdGetTorques, Name: "Get_Torques", RequestLen: 0, ReplyLen: ReplyLen, Query: true},
	{Cmd: CmdGetPowers, Name: "Get_Powers", RequestLen: 0, ReplyLen: ReplyLen, Query: true},
}

var catalogByCmd map[Command]Descriptor

func init() {
	catalogByCmd = make(map[Command]Descriptor, len(catalog))
	for _, d := range catalog {
		if d.Cmd > 0x1F {
			panic(fmt.Sprintf("wire: command 0x%02X exceeds 5 bits", uint8(d.Cmd)))
		}
		if d.RequestLen < 0 || d.RequestLen > 8 {
			panic(fmt.Sprintf("wire: %s: request length %d out of range", d.Name, d.RequestLen))
		}
		if d.ReplyLen != 0 && d.ReplyLen != ReplyLen {
			panic(fmt.Sprintf("wire: %s: reply length %d must be 0 or %d", d.Name, d.ReplyLen, ReplyLen))
		}
		if d.Query && d.ReplyLen == 0 {
			panic(fmt.Sprintf("wire: %s: query without reply", d.Name))
		}
		if _, dup := catalogByCmd[d.Cmd]; dup {
			panic(fmt.Sprintf("wire: duplicate command 0x%02X", uint8(d.Cmd)))
		}
		catalogByCmd[d.Cmd] = d
	}
}

// Describe looks up the catalog entry for a command.
func Describe(c Command) (Descriptor, bool) {
	d, ok := catalogByCmd[c]
	return d, ok
}

// Commands returns the full catalog in command order.
func Commands() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog)
	return out
}

func (c Command) String() string {
	if d, ok := catalogByCmd[c]; ok {
		return d.Name
	}
	return fmt.Sprintf("Command(0x%02X)", uint8(c))
}
