package wire

import "fmt"

// AxisState is the requested or reported state machine position of an
// axis.
type AxisState uint8

const (
	// AxisStateUndefined falls through to idle.
	AxisStateUndefined AxisState = 0

	// AxisStateIdle disables motor PWM.
	AxisStateIdle AxisState = 1

	// AxisStateStartupSequence runs the configured startup procedure.
	AxisStateStartupSequence AxisState = 2

	// AxisStateFullCalibration runs every calibration procedure the
	// current configuration needs.
	AxisStateFullCalibration AxisState = 3

	// AxisStateMotorCalibration measures phase resistance and
	// inductance.
	AxisStateMotorCalibration AxisState = 4

	// AxisStateEncoderIndexSearch turns the motor until the encoder
	// index is traversed.
	AxisStateEncoderIndexSearch AxisState = 6

	// AxisStateEncoderOffsetCalibration measures the offset between
	// encoder position and electrical phase.
	AxisStateEncoderOffsetCalibration AxisState = 7

	// AxisStateClosedLoopControl runs closed loop control.
	AxisStateClosedLoopControl AxisState = 8

	// AxisStateLockinSpin runs lockin spin.
	AxisStateLockinSpin AxisState = 9

	// AxisStateEncoderDirFind runs encoder direction search.
	AxisStateEncoderDirFind AxisState = 10

	// AxisStateHoming runs the axis homing function.
	AxisStateHoming AxisState = 11

	// AxisStateEncoderHallPolarityCalibration calibrates hall
	// polarity.
	AxisStateEncoderHallPolarityCalibration AxisState = 12

	// AxisStateEncoderHallPhaseCalibration calibrates hall sensor
	// edge offsets.
	AxisStateEncoderHallPhaseCalibration AxisState = 13

	// AxisStateAnticoggingCalibration calibrates the anticogging
	// algorithm.
	AxisStateAnticoggingCalibration AxisState = 14

	// AxisStateHarmonicCalibration calibrates harmonic compensation.
	AxisStateHarmonicCalibration AxisState = 15

	// AxisStateHarmonicCalibrationCommutation calibrates harmonic
	// compensation for the commutation encoder.
	AxisStateHarmonicCalibrationCommutation AxisState = 16
)

func (s AxisState) String() string {
	switch s {
	case AxisStateUndefined:
		return "UNDEFINED"
	case AxisStateIdle:
		return "IDLE"
	case AxisStateStartupSequence:
		return "STARTUP_SEQUENCE"
	case AxisStateFullCalibration:
		return "FULL_CALIBRATION_SEQUENCE"
	case AxisStateMotorCalibration:
		return "MOTOR_CALIBRATION"
	case AxisStateEncoderIndexSearch:
		return "ENCODER_INDEX_SEARCH"
	case AxisStateEncoderOffsetCalibration:
		return "ENCODER_OFFSET_CALIBRATION"
	case AxisStateClosedLoopControl:
		return "CLOSED_LOOP_CONTROL"
	case AxisStateLockinSpin:
		return "LOCKIN_SPIN"
	case AxisStateEncoderDirFind:
		return "ENCODER_DIR_FIND"
	case AxisStateHoming:
		return "HOMING"
	case AxisStateEncoderHallPolarityCalibration:
		return "ENCODER_HALL_POLARITY_CALIBRATION"
	case AxisStateEncoderHallPhaseCalibration:
		return "ENCODER_HALL_PHASE_CALIBRATION"
	case AxisStateAnticoggingCalibration:
		return "ANTICOGGING_CALIBRATION"
	case AxisStateHarmonicCalibration:
		return "HARMONIC_CALIBRATION"
	case AxisStateHarmonicCalibrationCommutation:
		return "HARMONIC_CALIBRATION_COMMUTATION"
	default:
		return fmt.Sprintf("AxisState(%d)", uint8(s))
	}
}

// ControlMode selects which control loops are active.
type ControlMode uint8

const (
	// ControlModeVoltage is not used internally by the firmware.
	ControlModeVoltage ControlMode = 0

	// ControlModeTorque uses only the inner torque loop.
	ControlModeTorque ControlMode = 1

	// ControlModeVelocity adds the velocity loop.
	ControlModeVelocity ControlMode = 2

	// ControlModePosition adds the outer position loop.
	ControlModePosition ControlMode = 3
)

func (m ControlMode) String() string {
	switch m {
	case ControlModeVoltage:
		return "VOLTAGE_CONTROL"
	case ControlModeTorque:
		return "TORQUE_CONTROL"
	case ControlModeVelocity:
		return "VELOCITY_CONTROL"
	case ControlModePosition:
		return "POSITION_CONTROL"
	default:
		return fmt.Sprintf("ControlMode(%d)", uint8(m))
	}
}

// InputMode selects how setpoint inputs are shaped before they reach
// the control loops.
type InputMode uint8

const (
	// InputModeInactive disables inputs; setpoints keep their last
	// value.
	InputModeInactive InputMode = 0

	// InputModePassthrough passes inputs straight to setpoints.
	InputModePassthrough InputMode = 1

	// InputModeVelRamp ramps velocity commands to the target.
	InputModeVelRamp InputMode = 2

	// InputModePosFilter runs a second-order position tracking
	// filter.
	InputModePosFilter InputMode = 3

	// InputModeMixChannels is not implemented by the firmware.
	InputModeMixChannels InputMode = 4

	// InputModeTrapTraj runs the online trapezoidal trajectory
	// planner.
	InputModeTrapTraj InputMode = 5

	// InputModeTorqueRamp ramps torque commands to the target.
	InputModeTorqueRamp InputMode = 6

	// InputModeMirror mirrors another axis electronically.
	InputModeMirror InputMode = 7

	// InputModeTuning is the tuning mode.
	InputModeTuning InputMode = 8
)

func (m InputMode) String() string {
	switch m {
	case InputModeInactive:
		return "INACTIVE"
	case InputModePassthrough:
		return "PASSTHROUGH"
	case InputModeVelRamp:
		return "VEL_RAMP"
	case InputModePosFilter:
		return "POS_FILTER"
	case InputModeMixChannels:
		return "MIX_CHANNELS"
	case InputModeTrapTraj:
		return "TRAP_TRAJ"
	case InputModeTorqueRamp:
		return "TORQUE_RAMP"
	case InputModeMirror:
		return "MIRROR"
	case InputModeTuning:
		return "TUNING"
	default:
		return fmt.Sprintf("InputMode(%d)", uint8(m))
	}
}

// ProcedureResult reports how the last requested procedure ended.
// Carried in the heartbeat.
type ProcedureResult uint8

const (
	ProcedureResultSuccess                   ProcedureResult = 0
	ProcedureResultBusy                      ProcedureResult = 1
	ProcedureResultCancelled                 ProcedureResult = 2
	ProcedureResultDisarmed                  ProcedureResult = 3
	ProcedureResultNoResponse                ProcedureResult = 4
	ProcedureResultPolePairCprMismatch       ProcedureResult = 5
	ProcedureResultPhaseResistanceOutOfRange ProcedureResult = 6
	ProcedureResultPhaseInductanceOutOfRange ProcedureResult = 7
	ProcedureResultUnbalancedPhases          ProcedureResult = 8
	ProcedureResultInvalidMotorType          ProcedureResult = 9
	ProcedureResultIllegalHallState          ProcedureResult = 10
	ProcedureResultTimeout                   ProcedureResult = 11
	ProcedureResultHomingWithoutEndstop      ProcedureResult = 12
	ProcedureResultInvalidState              ProcedureResult = 13
	ProcedureResultNotCalibrated             ProcedureResult = 14
	ProcedureResultNotConverging             ProcedureResult = 15
)

func (r ProcedureResult) String() string {
	switch r {
	case ProcedureResultSuccess:
		return "SUCCESS"
	case ProcedureResultBusy:
		return "BUSY"
	case ProcedureResultCancelled:
		return "CANCELLED"
	case ProcedureResultDisarmed:
		return "DISARMED"
	case ProcedureResultNoResponse:
		return "NO_RESPONSE"
	case ProcedureResultPolePairCprMismatch:
		return "POLE_PAIR_CPR_MISMATCH"
	case ProcedureResultPhaseResistanceOutOfRange:
		return "PHASE_RESISTANCE_OUT_OF_RANGE"
	case ProcedureResultPhaseInductanceOutOfRange:
		return "PHASE_INDUCTANCE_OUT_OF_RANGE"
	case ProcedureResultUnbalancedPhases:
		return "UNBALANCED_PHASES"
	case ProcedureResultInvalidMotorType:
		return "INVALID_MOTOR_TYPE"
	case ProcedureResultIllegalHallState:
		return "ILLEGAL_HALL_STATE"
	case ProcedureResultTimeout:
		return "TIMEOUT"
	case ProcedureResultHomingWithoutEndstop:
		return "HOMING_WITHOUT_ENDSTOP"
	case ProcedureResultInvalidState:
		return "INVALID_STATE"
	case ProcedureResultNotCalibrated:
		return "NOT_CALIBRATED"
	case ProcedureResultNotConverging:
		return "NOT_CONVERGING"
	default:
		return fmt.Sprintf("ProcedureResult(%d)", uint8(r))
	}
}
