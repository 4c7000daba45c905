package service

import (
	"errors"
	"testing"

	"smile2mqtt/pkg/smile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var logic = DefaultClimateLogic{}

func thermostatDevice(controlState string, schedules ...string) smile.Device {
	device := smile.Device{
		"dev_class": smile.DevClassThermostat,
	}
	if controlState != "" {
		device[smile.KeyControlState] = controlState
	}
	if len(schedules) > 0 {
		device[smile.KeyAvailableSchedules] = schedules
	}
	return device
}

func heaterDevice(flags map[string]bool, binary map[string]bool) smile.Device {
	device := smile.Device{
		"dev_class": smile.DevClassHeaterCentral,
	}
	for k, v := range flags {
		device[k] = v
	}
	binarySensors := map[string]any{}
	for k, v := range binary {
		binarySensors[k] = v
	}
	device[smile.KeyBinarySensors] = binarySensors
	return device
}

// action

func TestActionControlStateWins(t *testing.T) {
	// heater flags say heating, control_state says cooling
	heater := heaterDevice(nil, map[string]bool{"heating_state": true})

	assert.Equal(t, HVACActionCooling, logic.DeriveAction(thermostatDevice("cooling"), heater))
	assert.Equal(t, HVACActionHeating, logic.DeriveAction(thermostatDevice("heating"), heater))
	assert.Equal(t, HVACActionHeating, logic.DeriveAction(thermostatDevice("preheating"), heater))
	assert.Equal(t, HVACActionIdle, logic.DeriveAction(thermostatDevice("off"), heater))
}

func TestActionFallsBackToHeaterFlags(t *testing.T) {
	device := thermostatDevice("")

	heating := heaterDevice(nil, map[string]bool{"heating_state": true, "cooling_state": false})
	assert.Equal(t, HVACActionHeating, logic.DeriveAction(device, heating))

	cooling := heaterDevice(nil, map[string]bool{"heating_state": false, "cooling_state": true})
	assert.Equal(t, HVACActionCooling, logic.DeriveAction(device, cooling))

	idle := heaterDevice(nil, map[string]bool{"heating_state": false, "cooling_state": false})
	assert.Equal(t, HVACActionIdle, logic.DeriveAction(device, idle))

	// missing flags read as off
	assert.Equal(t, HVACActionIdle, logic.DeriveAction(device, heaterDevice(nil, nil)))
}

// modes

func TestModesHeatOnlyByDefault(t *testing.T) {
	modes := logic.DeriveAvailableModes(thermostatDevice(""), heaterDevice(nil, nil), false)
	assert.Equal(t, []string{HVACModeHeat}, modes)
}

func TestModesCombinedCoolingReplacesHeat(t *testing.T) {
	heater := heaterDevice(map[string]bool{"elga_cooling_enabled": true}, nil)
	modes := logic.DeriveAvailableModes(thermostatDevice(""), heater, true)
	assert.Equal(t, []string{HVACModeHeatCool}, modes)
}

func TestModesBrandCoolingReplacesHeat(t *testing.T) {
	lortherm := heaterDevice(map[string]bool{"lortherm_cooling_enabled": true}, nil)
	assert.Equal(t, []string{HVACModeCool}, logic.DeriveAvailableModes(thermostatDevice(""), lortherm, true))

	adam := heaterDevice(map[string]bool{"adam_cooling_enabled": true}, nil)
	assert.Equal(t, []string{HVACModeCool}, logic.DeriveAvailableModes(thermostatDevice(""), adam, true))
}

func TestModesCombinedFlagSuppressesBrandFlags(t *testing.T) {
	// both flag families set: only heat_cool may be offered
	heater := heaterDevice(map[string]bool{
		"elga_cooling_enabled": true,
		"adam_cooling_enabled": true,
	}, nil)
	modes := logic.DeriveAvailableModes(thermostatDevice(""), heater, true)
	assert.Equal(t, []string{HVACModeHeatCool}, modes)
}

func TestModesCoolingFlagsIgnoredWithoutCoolingPresent(t *testing.T) {
	heater := heaterDevice(map[string]bool{"elga_cooling_enabled": true}, nil)
	modes := logic.DeriveAvailableModes(thermostatDevice(""), heater, false)
	assert.Equal(t, []string{HVACModeHeat}, modes)
}

func TestModesAutoRequiresRealSchedule(t *testing.T) {
	heater := heaterDevice(nil, nil)

	modes := logic.DeriveAvailableModes(thermostatDevice("", "Normaal", "None"), heater, false)
	assert.Equal(t, []string{HVACModeHeat, HVACModeAuto}, modes)

	// the "None" sentinel alone offers no auto mode
	modes = logic.DeriveAvailableModes(thermostatDevice("", "None"), heater, false)
	assert.Equal(t, []string{HVACModeHeat}, modes)

	modes = logic.DeriveAvailableModes(thermostatDevice(""), heater, false)
	assert.Equal(t, []string{HVACModeHeat}, modes)
}

// reported mode

func TestReportedModeFallsBackToHeat(t *testing.T) {
	modes := []string{HVACModeHeat, HVACModeAuto}

	device := thermostatDevice("")
	device[smile.KeyMode] = "auto"
	assert.Equal(t, HVACModeAuto, logic.DeriveReportedMode(device, modes))

	device[smile.KeyMode] = "cool"
	assert.Equal(t, HVACModeHeat, logic.DeriveReportedMode(device, modes))

	delete(device, smile.KeyMode)
	assert.Equal(t, HVACModeHeat, logic.DeriveReportedMode(device, modes))
}

// capabilities

func TestCapabilitiesBoundsAndStep(t *testing.T) {
	device := thermostatDevice("", "Normaal")
	device[smile.KeyThermostat] = map[string]any{
		"setpoint":    20.5,
		"lower_bound": 4.0,
		"upper_bound": 30.0,
		"resolution":  0.01,
	}
	device[smile.KeyPresetModes] = []string{"home", "away"}

	caps := logic.DeriveCapabilities(device, heaterDevice(nil, nil), false)
	assert.Equal(t, 4.0, caps.MinTemp)
	assert.Equal(t, 30.0, caps.MaxTemp)
	// step never goes below 0.1 regardless of the reported resolution
	assert.Equal(t, 0.1, caps.TempStep)
	assert.Equal(t, []string{"home", "away"}, caps.Presets)
	assert.False(t, caps.SupportsRange)
	assert.Equal(t, []string{HVACModeHeat, HVACModeAuto}, caps.Modes)
}

func TestCapabilitiesRangeWithCombinedCooling(t *testing.T) {
	heater := heaterDevice(map[string]bool{"elga_cooling_enabled": true}, nil)
	caps := logic.DeriveCapabilities(thermostatDevice(""), heater, true)
	assert.True(t, caps.SupportsRange)
}

// setpoint validation

func TestValidateSetpointsInRange(t *testing.T) {
	err := logic.ValidateSetpoints(map[string]float64{
		smile.SetpointSingle: 20.5,
	}, 4, 30)
	assert.NoError(t, err)

	err = logic.ValidateSetpoints(map[string]float64{
		smile.SetpointHigh: 24,
		smile.SetpointLow:  18,
	}, 4, 30)
	assert.NoError(t, err)
}

func TestValidateSetpointsOutOfRangeNamesChannel(t *testing.T) {
	err := logic.ValidateSetpoints(map[string]float64{
		smile.SetpointHigh: 24,
		smile.SetpointLow:  2,
	}, 4, 30)
	require.Error(t, err)

	var oor *OutOfRangeError
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, smile.SetpointLow, oor.Channel)
	assert.Equal(t, 2.0, oor.Value)
	assert.Equal(t, 4.0, oor.Min)
	assert.Equal(t, 30.0, oor.Max)
}

func TestValidateSetpointsBoundsInclusive(t *testing.T) {
	assert.NoError(t, logic.ValidateSetpoints(map[string]float64{smile.SetpointSingle: 4}, 4, 30))
	assert.NoError(t, logic.ValidateSetpoints(map[string]float64{smile.SetpointSingle: 30}, 4, 30))
	assert.Error(t, logic.ValidateSetpoints(map[string]float64{smile.SetpointSingle: 30.1}, 4, 30))
}

func TestValidateSetpointsRejectsUnknownChannelAndEmpty(t *testing.T) {
	assert.Error(t, logic.ValidateSetpoints(map[string]float64{"target": 20}, 4, 30))
	assert.Error(t, logic.ValidateSetpoints(nil, 4, 30))
}

// mode to schedule mapping

func TestScheduleStateForMode(t *testing.T) {
	assert.Equal(t, smile.ScheduleOn, logic.ScheduleStateForMode(HVACModeAuto))
	assert.Equal(t, smile.ScheduleOff, logic.ScheduleStateForMode(HVACModeHeat))
	assert.Equal(t, smile.ScheduleOff, logic.ScheduleStateForMode(HVACModeCool))
	assert.Equal(t, smile.ScheduleOff, logic.ScheduleStateForMode(HVACModeHeatCool))
}
