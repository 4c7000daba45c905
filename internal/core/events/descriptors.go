package events

import (
	"fmt"

	"smile2mqtt/internal/core/service"
	"smile2mqtt/pkg/smile"
)

const (
	SENSOR_ID_BRIDGE_STATE = "bridge"

	STATE_CLASS_MEASUREMENT      = "measurement"
	STATE_CLASS_TOTAL            = "total"
	STATE_CLASS_TOTAL_INCREASING = "total_increasing"

	DEVICE_CLASS_BATTERY      = "battery"
	DEVICE_CLASS_CONNECTIVITY = "connectivity"
	DEVICE_CLASS_ENERGY       = "energy"
	DEVICE_CLASS_GAS          = "gas"
	DEVICE_CLASS_HUMIDITY     = "humidity"
	DEVICE_CLASS_ILLUMINANCE  = "illuminance"
	DEVICE_CLASS_POWER        = "power"
	DEVICE_CLASS_PRESSURE     = "pressure"
	DEVICE_CLASS_TEMPERATURE  = "temperature"
	DEVICE_CLASS_VOLTAGE      = "voltage"

	ENTITY_CLASS_DIAGNOSTIC = "diagnostic"
	ENTITY_CLASS_CONFIG     = "config"

	SENSOR_TYPE_SENSOR = "sensor"
	SENSOR_TYPE_BINARY = "binary_sensor"

	NUMBER_MODE_BOX    = "box"
	NUMBER_MODE_SLIDER = "slider"
)

// MASTER_THERMOSTATS are the device classes that get a climate entity.
var MASTER_THERMOSTATS = []string{
	smile.DevClassThermostat,
	smile.DevClassZoneThermostat,
	smile.DevClassZoneThermometer,
	smile.DevClassRadiatorValve,
}

// SensorDescriptor maps one sensor reading onto a Home Assistant sensor
// entity. Source decides where the value comes from; everything else is
// discovery metadata.
type SensorDescriptor struct {
	Key              string
	Name             string
	Unit             string
	StateClass       string
	DeviceClass      string
	EntityCategory   string
	Icon             string
	EnabledByDefault *bool
	Decimals         uint
	Source           service.ValueSource
}

// BinarySensorDescriptor maps one on/off flag from a device's
// binary_sensors sub-map onto a binary_sensor entity.
type BinarySensorDescriptor struct {
	Key              string
	Name             string
	DeviceClass      string
	EntityCategory   string
	Icon             string
	EnabledByDefault *bool
}

// NumberDescriptor maps a writable gateway setpoint onto a number entity.
// Value and bounds all resolve from the device record; the command path
// goes through SetNumberSetpoint with Key.
type NumberDescriptor struct {
	Key            string
	Name           string
	Unit           string
	DeviceClass    string
	EntityCategory string
	Mode           string
	Decimals       uint
	Value          service.ValueSource
	Min            service.ValueSource
	Max            service.ValueSource
	Step           service.ValueSource
}

// netElectricity prefers the meter's own net reading and falls back to
// consumed minus produced when the meter does not report one.
func netElectricity(directKey, consumedKey, producedKey string) service.ValueFunc {
	return func(device smile.Device) (float64, bool) {
		if v, ok := device.Sensors().Float(directKey); ok {
			return v, true
		}
		consumed, okC := device.Sensors().Float(consumedKey)
		produced, okP := device.Sensors().Float(producedKey)
		if !okC && !okP {
			return 0, false
		}
		return consumed - produced, true
	}
}

var SENSORS = []SensorDescriptor{
	{Key: "setpoint", Name: "Setpoint", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, Decimals: 1, Source: service.DirectKey("setpoint")},
	{Key: "setpoint_high", Name: "Cooling setpoint", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, Decimals: 1, Source: service.DirectKey("setpoint_high")},
	{Key: "setpoint_low", Name: "Heating setpoint", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, Decimals: 1, Source: service.DirectKey("setpoint_low")},
	{Key: "temperature", Name: "Temperature", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, Decimals: 1, Source: service.DirectKey("temperature")},
	{Key: "intended_boiler_temperature", Name: "Intended boiler temperature", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Decimals: 1, Source: service.DirectKey("intended_boiler_temperature")},
	{Key: "temperature_difference", Name: "Temperature difference", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, EnabledByDefault: optionalBool(false), Decimals: 1, Source: service.DirectKey("temperature_difference")},
	{Key: "outdoor_temperature", Name: "Outdoor temperature", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, Decimals: 1, Source: service.DirectKey("outdoor_temperature")},
	{Key: "outdoor_air_temperature", Name: "Outdoor air temperature", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Decimals: 1, Source: service.DirectKey("outdoor_air_temperature")},
	{Key: "water_temperature", Name: "Water temperature", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Decimals: 1, Source: service.DirectKey("water_temperature")},
	{Key: "return_temperature", Name: "Return temperature", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Decimals: 1, Source: service.DirectKey("return_temperature")},
	{Key: "dhw_temperature", Name: "DHW temperature", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, EnabledByDefault: optionalBool(false), Decimals: 1, Source: service.DirectKey("dhw_temperature")},
	{Key: "domestic_hot_water_setpoint", Name: "DHW setpoint", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, EnabledByDefault: optionalBool(false), Decimals: 1, Source: service.DirectKey("domestic_hot_water_setpoint")},
	{Key: "maximum_boiler_temperature", Name: "Maximum boiler temperature setpoint", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Decimals: 1, Source: service.DirectKey("maximum_boiler_temperature")},
	{Key: "cooling_activation_outdoor_temperature", Name: "Cooling activation outdoor temperature", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Decimals: 1, Source: service.DirectKey("cooling_activation_outdoor_temperature")},
	{Key: "cooling_deactivation_threshold", Name: "Cooling deactivation threshold", Unit: "°C", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_TEMPERATURE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Decimals: 1, Source: service.DirectKey("cooling_deactivation_threshold")},

	{Key: "electricity_consumed", Name: "Electricity consumed", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_consumed")},
	{Key: "electricity_produced", Name: "Electricity produced", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, EnabledByDefault: optionalBool(false), Decimals: 1, Source: service.DirectKey("electricity_produced")},
	{Key: "electricity_consumed_interval", Name: "Electricity consumed interval", Unit: "Wh", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_ENERGY, Decimals: 2, Source: service.DirectKey("electricity_consumed_interval")},
	{Key: "electricity_produced_interval", Name: "Electricity produced interval", Unit: "Wh", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_ENERGY, EnabledByDefault: optionalBool(false), Decimals: 2, Source: service.DirectKey("electricity_produced_interval")},
	{Key: "electricity_consumed_peak_interval", Name: "Electricity consumed peak interval", Unit: "Wh", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_ENERGY, Decimals: 2, Source: service.DirectKey("electricity_consumed_peak_interval")},
	{Key: "electricity_consumed_off_peak_interval", Name: "Electricity consumed off peak interval", Unit: "Wh", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_ENERGY, Decimals: 2, Source: service.DirectKey("electricity_consumed_off_peak_interval")},
	{Key: "electricity_produced_peak_interval", Name: "Electricity produced peak interval", Unit: "Wh", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_ENERGY, Decimals: 2, Source: service.DirectKey("electricity_produced_peak_interval")},
	{Key: "electricity_produced_off_peak_interval", Name: "Electricity produced off peak interval", Unit: "Wh", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_ENERGY, Decimals: 2, Source: service.DirectKey("electricity_produced_off_peak_interval")},
	{Key: "electricity_consumed_point", Name: "Electricity consumed point", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_consumed_point")},
	{Key: "electricity_consumed_peak_point", Name: "Electricity consumed peak point", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_consumed_peak_point")},
	{Key: "electricity_consumed_off_peak_point", Name: "Electricity consumed off peak point", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_consumed_off_peak_point")},
	{Key: "electricity_produced_point", Name: "Electricity produced point", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, EnabledByDefault: optionalBool(false), Decimals: 1, Source: service.DirectKey("electricity_produced_point")},
	{Key: "electricity_produced_peak_point", Name: "Electricity produced peak point", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_produced_peak_point")},
	{Key: "electricity_produced_off_peak_point", Name: "Electricity produced off peak point", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_produced_off_peak_point")},
	{Key: "electricity_consumed_peak_cumulative", Name: "Electricity consumed peak cumulative", Unit: "kWh", StateClass: STATE_CLASS_TOTAL_INCREASING, DeviceClass: DEVICE_CLASS_ENERGY, Decimals: 3, Source: service.DirectKey("electricity_consumed_peak_cumulative")},
	{Key: "electricity_consumed_off_peak_cumulative", Name: "Electricity consumed off peak cumulative", Unit: "kWh", StateClass: STATE_CLASS_TOTAL_INCREASING, DeviceClass: DEVICE_CLASS_ENERGY, Decimals: 3, Source: service.DirectKey("electricity_consumed_off_peak_cumulative")},
	{Key: "electricity_produced_peak_cumulative", Name: "Electricity produced peak cumulative", Unit: "kWh", StateClass: STATE_CLASS_TOTAL_INCREASING, DeviceClass: DEVICE_CLASS_ENERGY, Decimals: 3, Source: service.DirectKey("electricity_produced_peak_cumulative")},
	{Key: "electricity_produced_off_peak_cumulative", Name: "Electricity produced off peak cumulative", Unit: "kWh", StateClass: STATE_CLASS_TOTAL_INCREASING, DeviceClass: DEVICE_CLASS_ENERGY, Decimals: 3, Source: service.DirectKey("electricity_produced_off_peak_cumulative")},
	{Key: "electricity_phase_one_consumed", Name: "Electricity phase one consumed", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_phase_one_consumed")},
	{Key: "electricity_phase_two_consumed", Name: "Electricity phase two consumed", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_phase_two_consumed")},
	{Key: "electricity_phase_three_consumed", Name: "Electricity phase three consumed", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_phase_three_consumed")},
	{Key: "electricity_phase_one_produced", Name: "Electricity phase one produced", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_phase_one_produced")},
	{Key: "electricity_phase_two_produced", Name: "Electricity phase two produced", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_phase_two_produced")},
	{Key: "electricity_phase_three_produced", Name: "Electricity phase three produced", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1, Source: service.DirectKey("electricity_phase_three_produced")},
	{Key: "voltage_phase_one", Name: "Voltage phase one", Unit: "V", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_VOLTAGE, EnabledByDefault: optionalBool(false), Decimals: 1, Source: service.DirectKey("voltage_phase_one")},
	{Key: "voltage_phase_two", Name: "Voltage phase two", Unit: "V", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_VOLTAGE, EnabledByDefault: optionalBool(false), Decimals: 1, Source: service.DirectKey("voltage_phase_two")},
	{Key: "voltage_phase_three", Name: "Voltage phase three", Unit: "V", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_VOLTAGE, EnabledByDefault: optionalBool(false), Decimals: 1, Source: service.DirectKey("voltage_phase_three")},
	{Key: "net_electricity_point", Name: "Net electricity point", Unit: "W", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_POWER, Decimals: 1,
		Source: netElectricity("net_electricity_point", "electricity_consumed_point", "electricity_produced_point")},
	{Key: "net_electricity_cumulative", Name: "Net electricity cumulative", Unit: "kWh", StateClass: STATE_CLASS_TOTAL, DeviceClass: DEVICE_CLASS_ENERGY, Decimals: 3,
		Source: netElectricity("net_electricity_cumulative", "electricity_consumed_peak_cumulative", "electricity_produced_peak_cumulative")},
	{Key: "gas_consumed_interval", Name: "Gas consumed interval", Unit: "m³", StateClass: STATE_CLASS_MEASUREMENT, Icon: "mdi:meter-gas", Decimals: 2, Source: service.DirectKey("gas_consumed_interval")},
	{Key: "gas_consumed_cumulative", Name: "Gas consumed cumulative", Unit: "m³", StateClass: STATE_CLASS_TOTAL_INCREASING, DeviceClass: DEVICE_CLASS_GAS, Decimals: 3, Source: service.DirectKey("gas_consumed_cumulative")},

	{Key: "battery", Name: "Battery", Unit: "%", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_BATTERY, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Decimals: 0, Source: service.DirectKey("battery")},
	{Key: "illuminance", Name: "Illuminance", Unit: "lx", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_ILLUMINANCE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Decimals: 1, Source: service.DirectKey("illuminance")},
	{Key: "modulation_level", Name: "Modulation level", Unit: "%", StateClass: STATE_CLASS_MEASUREMENT, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Icon: "mdi:percent", Decimals: 0, Source: service.DirectKey("modulation_level")},
	{Key: "valve_position", Name: "Valve position", Unit: "%", StateClass: STATE_CLASS_MEASUREMENT, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Icon: "mdi:valve", Decimals: 0, Source: service.DirectKey("valve_position")},
	{Key: "water_pressure", Name: "Water pressure", Unit: "bar", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_PRESSURE, EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Decimals: 2, Source: service.DirectKey("water_pressure")},
	{Key: "humidity", Name: "Relative humidity", Unit: "%", StateClass: STATE_CLASS_MEASUREMENT, DeviceClass: DEVICE_CLASS_HUMIDITY, Decimals: 1, Source: service.DirectKey("humidity")},
}

var BINARY_SENSORS = []BinarySensorDescriptor{
	{Key: "heating_state", Name: "Heating", Icon: "mdi:radiator"},
	{Key: "cooling_state", Name: "Cooling", Icon: "mdi:snowflake"},
	{Key: "dhw_state", Name: "DHW state", Icon: "mdi:water-pump"},
	{Key: "flame_state", Name: "Flame state", Icon: "mdi:fire", EntityCategory: ENTITY_CLASS_DIAGNOSTIC},
	{Key: "slave_boiler_state", Name: "Secondary boiler state", Icon: "mdi:fire", EntityCategory: ENTITY_CLASS_DIAGNOSTIC, EnabledByDefault: optionalBool(false)},
	{Key: "compressor_state", Name: "Compressor state", Icon: "mdi:hvac", EntityCategory: ENTITY_CLASS_DIAGNOSTIC},
	{Key: "plugwise_notification", Name: "Plugwise notification", EntityCategory: ENTITY_CLASS_DIAGNOSTIC, Icon: "mdi:mailbox-up-outline"},
}

var NUMBERS = []NumberDescriptor{
	{
		Key:            "maximum_boiler_temperature",
		Name:           "Maximum boiler temperature setpoint",
		Unit:           "°C",
		DeviceClass:    DEVICE_CLASS_TEMPERATURE,
		EntityCategory: ENTITY_CLASS_CONFIG,
		Mode:           NUMBER_MODE_BOX,
		Decimals:       1,
		Value:          service.NestedPath{"maximum_boiler_temperature", smile.KeySetpoint},
		Min:            service.NestedPath{"maximum_boiler_temperature", smile.KeyLowerBound},
		Max:            service.NestedPath{"maximum_boiler_temperature", smile.KeyUpperBound},
		Step:           service.NestedPath{"maximum_boiler_temperature", smile.KeyResolution},
	},
	{
		Key:            "max_dhw_temperature",
		Name:           "Domestic hot water setpoint",
		Unit:           "°C",
		DeviceClass:    DEVICE_CLASS_TEMPERATURE,
		EntityCategory: ENTITY_CLASS_CONFIG,
		Mode:           NUMBER_MODE_BOX,
		Decimals:       1,
		Value:          service.NestedPath{"max_dhw_temperature", smile.KeySetpoint},
		Min:            service.NestedPath{"max_dhw_temperature", smile.KeyLowerBound},
		Max:            service.NestedPath{"max_dhw_temperature", smile.KeyUpperBound},
		Step:           service.NestedPath{"max_dhw_temperature", smile.KeyResolution},
	},
}

// ValidateDescriptorTables fails fast on a descriptor that can never
// resolve. Runs once at startup, before the first poll.
func ValidateDescriptorTables() error {
	for _, s := range SENSORS {
		if err := service.CheckValueSource(s.Source); err != nil {
			return fmt.Errorf("sensor descriptor %q: %w", s.Key, err)
		}
	}
	for _, n := range NUMBERS {
		for name, source := range map[string]service.ValueSource{
			"value": n.Value, "min": n.Min, "max": n.Max, "step": n.Step,
		} {
			if err := service.CheckValueSource(source); err != nil {
				return fmt.Errorf("number descriptor %q %s: %w", n.Key, name, err)
			}
		}
	}
	return nil
}
