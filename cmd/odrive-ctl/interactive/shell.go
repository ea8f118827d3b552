// Package interactive provides the interactive command-line interface
// for odrive-ctl.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/cansimple-protocol/cansimple-go/pkg/client"
	"github.com/cansimple-protocol/cansimple-go/pkg/endpoints"
	"github.com/cansimple-protocol/cansimple-go/pkg/wire"
)

// defaultTimeout bounds every query issued from the shell. The engine
// itself never times out.
const defaultTimeout = 2 * time.Second

// Shell handles interactive mode for odrive-ctl.
type Shell struct {
	axis    *client.Axis
	dir     *endpoints.Directory
	rl      *readline.Instance
	timeout time.Duration
}

// New creates a new interactive shell for the given axis. The directory
// may be nil; named parameter commands then report an error.
func New(axis *client.Axis, dir *endpoints.Directory) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          fmt.Sprintf("axis%d> ", axis.Node()),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{
		axis:    axis,
		dir:     dir,
		rl:      rl,
		timeout: defaultTimeout,
	}, nil
}

// Stdout returns a writer that properly coordinates with the readline
// input. Use this for log output to avoid interfering with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "version":
			s.cmdVersion()

		case "errors", "e":
			s.cmdErrors()

		case "clear":
			s.cmdClear(args)

		case "heartbeat", "hb":
			s.cmdHeartbeat()

		case "status":
			s.cmdStatus()

		case "encoder":
			s.cmdEncoder()

		case "iq":
			s.cmdIq()

		case "temp":
			s.cmdTemp()

		case "vbus":
			s.cmdVbus()

		case "torques":
			s.cmdTorques()

		case "powers":
			s.cmdPowers()

		case "state":
			s.cmdState(args)

		case "mode":
			s.cmdMode(args)

		case "pos", "p":
			s.cmdPos(args)

		case "vel", "v":
			s.cmdVel(args)

		case "torque", "t":
			s.cmdTorque(args)

		case "limits":
			s.cmdLimits(args)

		case "traj-vel":
			s.cmdTrajVel(args)

		case "traj-accel":
			s.cmdTrajAccel(args)

		case "traj-inertia":
			s.cmdTrajInertia(args)

		case "abs-pos":
			s.cmdAbsPos(args)

		case "pos-gain":
			s.cmdPosGain(args)

		case "vel-gains":
			s.cmdVelGains(args)

		case "read", "r":
			s.cmdRead(args)

		case "write", "w":
			s.cmdWrite(args)

		case "ep":
			s.cmdEndpoint(args)

		case "params":
			s.cmdParams(args)

		case "estop":
			s.cmdEstop()

		case "reboot":
			s.cmdReboot(s.axis.Reboot, "Reboot requested")

		case "save":
			s.cmdReboot(s.axis.SaveConfiguration, "Save and reboot requested")

		case "erase":
			s.cmdReboot(s.axis.EraseConfiguration, "Erase and reboot requested")

		case "dfu":
			s.cmdReboot(s.axis.EnterDFUMode2, "DFU mode requested")

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
ODrive Axis Commands:
  Telemetry:
    version            - Query hardware/firmware versions
    errors             - Query active errors and disarm reason
    heartbeat          - Wait for the next heartbeat broadcast
    status             - Query all telemetry at once
    encoder            - Position/velocity estimates
    iq                 - Quadrature current setpoint/measured
    temp               - FET/motor temperatures
    vbus               - DC bus voltage/current
    torques            - Target/estimated torque
    powers             - Electrical/mechanical power

  Control:
    state <s>          - Request axis state (number or idle/calibration/closed-loop)
    mode <c> <i>       - Set control and input modes (numeric)
    pos <rev> [vff] [tff] - Position setpoint with optional feed-forwards
    vel <rev/s> [tff]  - Velocity setpoint with optional torque feed-forward
    torque <nm>        - Torque setpoint
    limits <vel> <cur> - Velocity and current limits
    traj-vel <v>       - Trajectory velocity limit
    traj-accel <a> <d> - Trajectory accel/decel limits
    traj-inertia <i>   - Trajectory inertia
    abs-pos <rev>      - Overwrite absolute position
    pos-gain <g>       - Position controller gain
    vel-gains <g> <ig> - Velocity controller gains
    estop              - Emergency stop
    clear [identify]   - Clear errors (or blink the status LED)

  Parameters (SDO):
    read <name>            - Read a parameter by directory name
    write <name> <value>   - Write a parameter by directory name
    ep r <id> <type>       - Read a raw endpoint (type: bool,uint8,...,float)
    ep w <id> <type> <val> - Write a raw endpoint
    params [prefix]        - List known parameter names

  Device:
    reboot | save | erase | dfu - Reboot variants

  General:
    help               - Show this help
    quit               - Exit`)
}

// queryCtx bounds one query with the shell timeout.
func (s *Shell) queryCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func (s *Shell) cmdVersion() {
	ctx, cancel := s.queryCtx()
	defer cancel()
	v, err := s.axis.GetVersion(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), v)
}

func (s *Shell) cmdErrors() {
	ctx, cancel := s.queryCtx()
	defer cancel()
	e, err := s.axis.GetError(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Active:        %s\n", e.Active)
	fmt.Fprintf(s.rl.Stdout(), "Disarm reason: %s\n", e.DisarmReason)
}

func (s *Shell) cmdClear(args []string) {
	identify := len(args) > 0 && args[0] == "identify"
	if err := s.axis.ClearErrors(identify); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if identify {
		fmt.Fprintln(s.rl.Stdout(), "Identify requested")
	} else {
		fmt.Fprintln(s.rl.Stdout(), "Errors cleared")
	}
}

func (s *Shell) cmdHeartbeat() {
	ctx, cancel := s.queryCtx()
	defer cancel()
	hb, err := s.axis.WaitHeartbeat(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "State:    %s\n", hb.State)
	fmt.Fprintf(s.rl.Stdout(), "Errors:   %s\n", hb.Errors)
	fmt.Fprintf(s.rl.Stdout(), "Result:   %s\n", hb.Result)
	fmt.Fprintf(s.rl.Stdout(), "Traj done: %t\n", hb.TrajectoryDone)
}

func (s *Shell) cmdStatus() {
	s.cmdEncoder()
	s.cmdIq()
	s.cmdTemp()
	s.cmdVbus()
	s.cmdTorques()
	s.cmdPowers()
}

func (s *Shell) cmdEncoder() {
	ctx, cancel := s.queryCtx()
	defer cancel()
	est, err := s.axis.GetEncoderEstimates(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Position: %.4f rev   Velocity: %.4f rev/s\n", est.Position, est.Velocity)
}

func (s *Shell) cmdIq() {
	ctx, cancel := s.queryCtx()
	defer cancel()
	iq, err := s.axis.GetIq(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Iq setpoint: %.3f A   measured: %.3f A\n", iq.Setpoint, iq.Measured)
}

func (s *Shell) cmdTemp() {
	ctx, cancel := s.queryCtx()
	defer cancel()
	t, err := s.axis.GetTemperature(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "FET: %.1f C   Motor: %.1f C\n", t.FET, t.Motor)
}

func (s *Shell) cmdVbus() {
	ctx, cancel := s.queryCtx()
	defer cancel()
	b, err := s.axis.GetBusVoltageCurrent(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Bus: %.2f V   %.2f A\n", b.Voltage, b.Current)
}

func (s *Shell) cmdTorques() {
	ctx, cancel := s.queryCtx()
	defer cancel()
	t, err := s.axis.GetTorques(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Torque target: %.4f Nm   estimate: %.4f Nm\n", t.Target, t.Estimate)
}

func (s *Shell) cmdPowers() {
	ctx, cancel := s.queryCtx()
	defer cancel()
	p, err := s.axis.GetPowers(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Power electrical: %.2f W   mechanical: %.2f W\n", p.Electrical, p.Mechanical)
}

// parseAxisState accepts a numeric state or a common alias.
func parseAxisState(s string) (wire.AxisState, error) {
	switch strings.ToLower(s) {
	case "idle":
		return wire.AxisStateIdle, nil
	case "calibration", "calib":
		return wire.AxisStateFullCalibration, nil
	case "closed-loop", "closed_loop", "cl":
		return wire.AxisStateClosedLoopControl, nil
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid state %q", s)
	}
	return wire.AxisState(n), nil
}

func (s *Shell) cmdState(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: state <number|idle|calibration|closed-loop>")
		return
	}
	st, err := parseAxisState(args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if err := s.axis.SetAxisState(st); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Requested state %s\n", st)
}

func (s *Shell) cmdMode(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: mode <control-mode> <input-mode>")
		return
	}
	c, err1 := strconv.ParseUint(args[0], 10, 8)
	i, err2 := strconv.ParseUint(args[1], 10, 8)
	if err1 != nil || err2 != nil {
		fmt.Fprintln(s.rl.Stdout(), "Modes are numeric, e.g. 'mode 3 1' for position/passthrough")
		return
	}
	if err := s.axis.SetControllerMode(wire.ControlMode(c), wire.InputMode(i)); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Mode set: %s / %s\n", wire.ControlMode(c), wire.InputMode(i))
}

func parseFloats(args []string, want int) ([]float32, error) {
	if len(args) < want {
		return nil, fmt.Errorf("need %d numeric arguments", want)
	}
	out := make([]float32, 0, len(args))
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out = append(out, float32(f))
	}
	return out, nil
}

func (s *Shell) cmdPos(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: pos <rev> [vel-ff] [torque-ff]")
		return
	}
	pos, err := strconv.ParseFloat(args[0], 32)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid position: %v\n", err)
		return
	}
	var velFF, torqueFF int64
	if len(args) > 1 {
		if velFF, err = strconv.ParseInt(args[1], 10, 16); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid velocity feed-forward: %v\n", err)
			return
		}
	}
	if len(args) > 2 {
		if torqueFF, err = strconv.ParseInt(args[2], 10, 16); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Invalid torque feed-forward: %v\n", err)
			return
		}
	}
	if err := s.axis.SetInputPosition(float32(pos), int16(velFF), int16(torqueFF)); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Position setpoint %.4f rev\n", pos)
}

func (s *Shell) cmdVel(args []string) {
	vals, err := parseFloats(args, 1)
	if err != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: vel <rev/s> [torque-ff]")
		return
	}
	var torqueFF float32
	if len(vals) > 1 {
		torqueFF = vals[1]
	}
	if err := s.axis.SetInputVelocity(vals[0], torqueFF); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Velocity setpoint %.4f rev/s\n", vals[0])
}

func (s *Shell) cmdTorque(args []string) {
	vals, err := parseFloats(args, 1)
	if err != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: torque <nm>")
		return
	}
	if err := s.axis.SetInputTorque(vals[0]); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Torque setpoint %.4f Nm\n", vals[0])
}

func (s *Shell) cmdLimits(args []string) {
	vals, err := parseFloats(args, 2)
	if err != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: limits <vel-limit> <current-limit>")
		return
	}
	if err := s.axis.SetLimits(vals[0], vals[1]); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Limits set: %.2f rev/s, %.2f A\n", vals[0], vals[1])
}

func (s *Shell) cmdTrajVel(args []string) {
	vals, err := parseFloats(args, 1)
	if err != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: traj-vel <limit>")
		return
	}
	if err := s.axis.SetTrajectoryVelocityLimit(vals[0]); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "OK")
}

func (s *Shell) cmdTrajAccel(args []string) {
	vals, err := parseFloats(args, 2)
	if err != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: traj-accel <accel> <decel>")
		return
	}
	if err := s.axis.SetTrajectoryAccelLimits(vals[0], vals[1]); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "OK")
}

func (s *Shell) cmdTrajInertia(args []string) {
	vals, err := parseFloats(args, 1)
	if err != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: traj-inertia <inertia>")
		return
	}
	if err := s.axis.SetTrajectoryInertia(vals[0]); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "OK")
}

func (s *Shell) cmdAbsPos(args []string) {
	vals, err := parseFloats(args, 1)
	if err != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: abs-pos <rev>")
		return
	}
	if err := s.axis.SetAbsolutePosition(vals[0]); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "OK")
}

func (s *Shell) cmdPosGain(args []string) {
	vals, err := parseFloats(args, 1)
	if err != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: pos-gain <gain>")
		return
	}
	if err := s.axis.SetPositionGain(vals[0]); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "OK")
}

func (s *Shell) cmdVelGains(args []string) {
	vals, err := parseFloats(args, 2)
	if err != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: vel-gains <gain> <integrator-gain>")
		return
	}
	if err := s.axis.SetVelocityGains(vals[0], vals[1]); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "OK")
}

// cmdRead handles the read command.
func (s *Shell) cmdRead(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: read <name>")
		fmt.Fprintln(s.rl.Stdout(), "  Example: read axis0.config.motor.current_soft_max")
		return
	}
	ctx, cancel := s.queryCtx()
	defer cancel()
	v, err := s.axis.ReadParameter(ctx, args[0])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "%s = %s (%s)\n", args[0], v, v.Kind())
}

// cmdWrite handles the write command.
func (s *Shell) cmdWrite(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: write <name> <value>")
		fmt.Fprintln(s.rl.Stdout(), "  Example: write axis0.config.motor.current_soft_max 20")
		return
	}
	if s.dir == nil {
		fmt.Fprintln(s.rl.Stdout(), "No endpoint directory loaded")
		return
	}
	entry, ok := s.dir.Lookup(args[0])
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown parameter: %s\n", args[0])
		return
	}
	v, err := wire.ParseValue(entry.Kind, args[1])
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	ctx, cancel := s.queryCtx()
	defer cancel()
	if err := s.axis.WriteParameter(ctx, args[0], v); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Write failed: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "OK")
}

// cmdEndpoint handles raw endpoint access by numeric id.
func (s *Shell) cmdEndpoint(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: ep r <id> <type>")
		fmt.Fprintln(s.rl.Stdout(), "       ep w <id> <type> <value>")
		return
	}

	id, err := strconv.ParseUint(args[1], 0, 16)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid endpoint id: %v\n", err)
		return
	}
	kind, ok := wire.ValueKindFromString(args[2])
	if !ok {
		fmt.Fprintf(s.rl.Stdout(), "Unknown type %q (bool, uint8, int8, uint16, int16, uint32, int32, float)\n", args[2])
		return
	}

	ctx, cancel := s.queryCtx()
	defer cancel()

	switch args[0] {
	case "r", "read":
		v, err := s.axis.ReadEndpoint(ctx, uint16(id), kind)
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
			return
		}
		fmt.Fprintf(s.rl.Stdout(), "endpoint %d = %s\n", id, v)

	case "w", "write":
		if len(args) < 4 {
			fmt.Fprintln(s.rl.Stdout(), "Usage: ep w <id> <type> <value>")
			return
		}
		v, err := wire.ParseValue(kind, args[3])
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
			return
		}
		if err := s.axis.WriteEndpoint(ctx, uint16(id), v); err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Write failed: %v\n", err)
			return
		}
		fmt.Fprintln(s.rl.Stdout(), "OK")

	default:
		fmt.Fprintf(s.rl.Stdout(), "Unknown subcommand %q (r or w)\n", args[0])
	}
}

// cmdParams lists directory names, optionally filtered by prefix.
func (s *Shell) cmdParams(args []string) {
	if s.dir == nil {
		fmt.Fprintln(s.rl.Stdout(), "No endpoint directory loaded")
		return
	}
	prefix := ""
	if len(args) > 0 {
		prefix = args[0]
	}
	count := 0
	for _, name := range s.dir.Names() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		entry, _ := s.dir.Lookup(name)
		fmt.Fprintf(s.rl.Stdout(), "  %-60s %s (id %d)\n", name, entry.Kind, entry.ID)
		count++
	}
	fmt.Fprintf(s.rl.Stdout(), "%d parameters\n", count)
}

func (s *Shell) cmdEstop() {
	if err := s.axis.Estop(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "ESTOP sent")
}

func (s *Shell) cmdReboot(fn func() error, msg string) {
	if err := fn(); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), msg)
}
