package wire

import (
	"fmt"
	"strings"
)

// AxisErrors is the open 32-bit error bitset reported by the device.
//
// The set is deliberately not a closed enumeration: firmware newer
// than this client may set flags the named constants below do not
// cover, and those bits are preserved verbatim through decode and
// String.
type AxisErrors uint32

const (
	AxisErrorInitializing           AxisErrors = 0x1
	AxisErrorSystemLevel            AxisErrors = 0x2
	AxisErrorTimingError            AxisErrors = 0x4
	AxisErrorMissingEstimate        AxisErrors = 0x8
	AxisErrorBadConfig              AxisErrors = 0x10
	AxisErrorDRVFault               AxisErrors = 0x20
	AxisErrorMissingInput           AxisErrors = 0x40
	AxisErrorDCBusOverVoltage       AxisErrors = 0x100
	AxisErrorDCBusUnderVoltage      AxisErrors = 0x200
	AxisErrorDCBusOverCurrent       AxisErrors = 0x400
	AxisErrorDCBusOverRegenCurrent  AxisErrors = 0x800
	AxisErrorCurrentLimitViolation  AxisErrors = 0x1000
	AxisErrorMotorOverTemp          AxisErrors = 0x2000
	AxisErrorInverterOverTemp       AxisErrors = 0x4000
	AxisErrorVelocityLimitViolation AxisErrors = 0x8000
	AxisErrorPositionLimitViolation AxisErrors = 0x10000
	AxisErrorWatchdogTimerExpired   AxisErrors = 0x1000000
	AxisErrorEstopRequested         AxisErrors = 0x2000000
	AxisErrorSpinoutDetected        AxisErrors = 0x4000000
	AxisErrorBrakeResistorDisarmed  AxisErrors = 0x8000000
	AxisErrorThermistorDisconnected AxisErrors = 0x10000000
	AxisErrorCalibrationError       AxisErrors = 0x40000000
)

var axisErrorNames = []struct {
	bit  AxisErrors
	name string
}{
	{AxisErrorInitializing, "INITIALIZING"},
	{AxisErrorSystemLevel, "SYSTEM_LEVEL"},
	{AxisErrorTimingError, "TIMING_ERROR"},
	{AxisErrorMissingEstimate, "MISSING_ESTIMATE"},
	{AxisErrorBadConfig, "BAD_CONFIG"},
	{AxisErrorDRVFault, "DRV_FAULT"},
	{AxisErrorMissingInput, "MISSING_INPUT"},
	{AxisErrorDCBusOverVoltage, "DC_BUS_OVER_VOLTAGE"},
	{AxisErrorDCBusUnderVoltage, "DC_BUS_UNDER_VOLTAGE"},
	{AxisErrorDCBusOverCurrent, "DC_BUS_OVER_CURRENT"},
	{AxisErrorDCBusOverRegenCurrent, "DC_BUS_OVER_REGEN_CURRENT"},
	{AxisErrorCurrentLimitViolation, "CURRENT_LIMIT_VIOLATION"},
	{AxisErrorMotorOverTemp, "MOTOR_OVER_TEMP"},
	{AxisErrorInverterOverTemp, "INVERTER_OVER_TEMP"},
	{AxisErrorVelocityLimitViolation, "VELOCITY_LIMIT_VIOLATION"},
	{AxisErrorPositionLimitViolation, "POSITION_LIMIT_VIOLATION"},
	{AxisErrorWatchdogTimerExpired, "WATCHDOG_TIMER_EXPIRED"},
	{AxisErrorEstopRequested, "ESTOP_REQUESTED"},
	{AxisErrorSpinoutDetected, "SPINOUT_DETECTED"},
	{AxisErrorBrakeResistorDisarmed, "BRAKE_RESISTOR_DISARMED"},
	{AxisErrorThermistorDisconnected, "THERMISTOR_DISCONNECTED"},
	{AxisErrorCalibrationError, "CALIBRATION_ERROR"},
}

// Has reports whether every bit of flag is set.
func (e AxisErrors) Has(flag AxisErrors) bool {
	return e&flag == flag
}

// None reports whether no error bit is set.
func (e AxisErrors) None() bool {
	return e == 0
}

// String lists the named flags that are set, followed by any unnamed
// bits as a hex remainder.
func (e AxisErrors) String() string {
	if e == 0 {
		return "NONE"
	}
	var parts []string
	rest := e
	for _, n := range axisErrorNames {
		if rest.Has(n.bit) {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%X", uint32(rest)))
	}
	return strings.Join(parts, "|")
}
