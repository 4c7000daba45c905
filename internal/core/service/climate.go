package service

import (
	"fmt"
	"math"
	"slices"

	"smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/core/port"
	"smile2mqtt/pkg/smile"
)

// HVAC modes and actions use the Home Assistant vocabulary so they can go
// straight onto MQTT state topics.
const (
	HVACModeHeat     = "heat"
	HVACModeCool     = "cool"
	HVACModeHeatCool = "heat_cool"
	HVACModeAuto     = "auto"

	HVACActionHeating = "heating"
	HVACActionCooling = "cooling"
	HVACActionIdle    = "idle"
)

// Cooling capability flags reported on the heater device record.
const (
	flagElgaCooling     = "elga_cooling_enabled"
	flagLorthermCooling = "lortherm_cooling_enabled"
	flagAdamCooling     = "adam_cooling_enabled"
)

const minSetpointStep = 0.1

type OutOfRangeError struct {
	Channel string
	Value   float64
	Min     float64
	Max     float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %g out of range [%g, %g]", e.Channel, e.Value, e.Min, e.Max)
}

type UnsupportedModeError struct {
	Mode      string
	Supported []string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("unsupported hvac mode %q, supported: %v", e.Mode, e.Supported)
}

type DefaultClimateLogic struct{}

// DeriveAction reports what the installation is doing right now. The
// thermostat's explicit control_state wins; without one the heater's
// binary flags decide.
func (DefaultClimateLogic) DeriveAction(device, heater smile.Device) string {
	if state, ok := device.String(smile.KeyControlState); ok {
		switch state {
		case "cooling":
			return HVACActionCooling
		case "heating", "preheating":
			return HVACActionHeating
		case "off":
			return HVACActionIdle
		}
	}
	if heater.BinarySensors().Bool("heating_state") {
		return HVACActionHeating
	}
	if heater.BinarySensors().Bool("cooling_state") {
		return HVACActionCooling
	}
	return HVACActionIdle
}

// DeriveAvailableModes lists the selectable HVAC modes. Cooling support
// replaces plain heat: a combined heat/cool unit offers heat_cool, a
// cooling-only brand flag offers cool. The combined branch takes
// precedence, the two never stack. Auto is offered whenever the location
// has at least one real schedule.
func (DefaultClimateLogic) DeriveAvailableModes(device, heater smile.Device, coolingPresent bool) []string {
	modes := []string{HVACModeHeat}
	if coolingPresent {
		if heater.Bool(flagElgaCooling) {
			modes = []string{HVACModeHeatCool}
		} else if heater.Bool(flagLorthermCooling) || heater.Bool(flagAdamCooling) {
			modes = []string{HVACModeCool}
		}
	}
	for _, schedule := range device.Strings(smile.KeyAvailableSchedules) {
		if schedule != smile.NoScheduleSentinel {
			modes = append(modes, HVACModeAuto)
			break
		}
	}
	return modes
}

// DeriveReportedMode maps the gateway's reported mode onto the available
// set. Anything missing or outside the set reads as heat.
func (DefaultClimateLogic) DeriveReportedMode(device smile.Device, modes []string) string {
	mode, ok := device.String(smile.KeyMode)
	if !ok || !slices.Contains(modes, mode) {
		return HVACModeHeat
	}
	return mode
}

// DeriveCapabilities reads the per-thermostat bounds and options.
func (logic DefaultClimateLogic) DeriveCapabilities(device, heater smile.Device, coolingPresent bool) domain.ClimateCapabilities {
	thermostat := device.Thermostat()
	minTemp, _ := thermostat.Float(smile.KeyLowerBound)
	maxTemp, _ := thermostat.Float(smile.KeyUpperBound)
	step, ok := thermostat.Float(smile.KeyResolution)
	if !ok {
		step = minSetpointStep
	}
	return domain.ClimateCapabilities{
		Modes:         logic.DeriveAvailableModes(device, heater, coolingPresent),
		MinTemp:       minTemp,
		MaxTemp:       maxTemp,
		TempStep:      math.Max(step, minSetpointStep),
		Presets:       device.Strings(smile.KeyPresetModes),
		SupportsRange: coolingPresent && heater.Bool(flagElgaCooling),
	}
}

// ValidateSetpoints checks every requested channel against the thermostat
// bounds. On any failure no command may be issued; the error names the
// offending channel.
func (DefaultClimateLogic) ValidateSetpoints(setpoints map[string]float64, min, max float64) error {
	if len(setpoints) == 0 {
		return fmt.Errorf("no setpoints in request")
	}
	for channel, value := range setpoints {
		switch channel {
		case smile.SetpointSingle, smile.SetpointHigh, smile.SetpointLow:
		default:
			return fmt.Errorf("unknown setpoint channel %q", channel)
		}
		if value < min || value > max {
			return &OutOfRangeError{Channel: channel, Value: value, Min: min, Max: max}
		}
	}
	return nil
}

// ScheduleStateForMode maps an HVAC mode command onto the gateway's
// schedule switch: auto turns the schedule on, every other mode turns it
// off and leaves regulation to the setpoint.
func (DefaultClimateLogic) ScheduleStateForMode(mode string) string {
	if mode == HVACModeAuto {
		return smile.ScheduleOn
	}
	return smile.ScheduleOff
}

// ensure interface compliance
var _ port.ClimateLogic = DefaultClimateLogic{}
