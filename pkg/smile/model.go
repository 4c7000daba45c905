package smile

// Device classes reported by the gateway.
const (
	DevClassGateway         = "gateway"
	DevClassHeaterCentral   = "heater_central"
	DevClassThermostat      = "thermostat"
	DevClassZoneThermostat  = "zone_thermostat"
	DevClassZoneThermometer = "zone_thermometer"
	DevClassRadiatorValve   = "thermostatic_radiator_valve"
	DevClassSmartMeter      = "smartmeter"
)

// Structural keys within a device record.
const (
	KeyDevClass           = "dev_class"
	KeyName               = "name"
	KeyModel              = "model"
	KeyVendor             = "vendor"
	KeyFirmware           = "firmware"
	KeyLocation           = "location"
	KeyMode               = "mode"
	KeyControlState       = "control_state"
	KeyActivePreset       = "active_preset"
	KeyPresetModes        = "preset_modes"
	KeyAvailableSchedules = "available_schedules"
	KeySelectedSchedule   = "selected_schedule"
	KeyLastUsedSchedule   = "last_used"
	KeySensors            = "sensors"
	KeyBinarySensors      = "binary_sensors"
	KeyThermostat         = "thermostat"
	KeySetpoint           = "setpoint"
	KeyLowerBound         = "lower_bound"
	KeyUpperBound         = "upper_bound"
	KeyResolution         = "resolution"
)

// NoScheduleSentinel is the schedule name the gateway reports when a
// location has no schedule configured.
const NoScheduleSentinel = "None"

type GatewayInfo struct {
	GatewayID      string `json:"gateway_id"`
	HeaterID       string `json:"heater_id"`
	SmileName      string `json:"smile_name"`
	Version        string `json:"smile_version"`
	CoolingPresent bool   `json:"cooling_present"`
}

// Snapshot is the full gateway state as read during one polling cycle.
// It is replaced wholesale on every poll and never mutated in place.
type Snapshot struct {
	Gateway GatewayInfo       `json:"gateway"`
	Devices map[string]Device `json:"devices"`
}

// Device is one appliance/thermostat record within a snapshot. The gateway
// reports loosely typed nested data, so the record stays a generic map with
// typed accessors. A nil Device is valid and reads as empty.
type Device map[string]any

func (d Device) String(key string) (string, bool) {
	v, ok := d[key].(string)
	return v, ok
}

func (d Device) Float(key string) (float64, bool) {
	switch v := d[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Bool returns false for a missing or non-boolean value.
func (d Device) Bool(key string) bool {
	v, _ := d[key].(bool)
	return v
}

func (d Device) Map(key string) (Device, bool) {
	switch v := d[key].(type) {
	case Device:
		return v, true
	case map[string]any:
		return Device(v), true
	}
	return nil, false
}

func (d Device) Strings(key string) []string {
	switch v := d[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func (d Device) Class() string {
	v, _ := d.String(KeyDevClass)
	return v
}

func (d Device) Name() string {
	v, _ := d.String(KeyName)
	return v
}

func (d Device) Location() string {
	v, _ := d.String(KeyLocation)
	return v
}

func (d Device) Sensors() Device {
	v, _ := d.Map(KeySensors)
	return v
}

func (d Device) BinarySensors() Device {
	v, _ := d.Map(KeyBinarySensors)
	return v
}

func (d Device) Thermostat() Device {
	v, _ := d.Map(KeyThermostat)
	return v
}

// HeaterCentral returns the central heating appliance record, if any.
func (s *Snapshot) HeaterCentral() Device {
	if s.Gateway.HeaterID == "" {
		return nil
	}
	return s.Devices[s.Gateway.HeaterID]
}

func (s *Snapshot) Device(id string) (Device, bool) {
	d, ok := s.Devices[id]
	return d, ok
}
