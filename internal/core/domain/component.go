package domain

type Device struct {
	Id           string
	Name         string
	Version      string
	Model        string
	Manufacturer string
	ViaDevice    string
}

type GenericSensor struct {
	Device            Device
	Id                string
	SensorType        string
	Name              string
	UniqueId          string
	UnitOfMeasurement string
	StateClass        string // measurement, total, total_increasing (for meters)
	DeviceClass       string // temperature, power, energy, gas, ...
	EntityCategory    string // diagnostic, config, nil
	EnabledByDefault  *bool
	Icon              string
}

// ClimateCapabilities is everything about a thermostat that is fixed per
// snapshot: what the discovery config announces and what commands are
// validated against.
type ClimateCapabilities struct {
	Modes         []string
	MinTemp       float64
	MaxTemp       float64
	TempStep      float64
	Presets       []string
	SupportsRange bool
}

type GenericClimate struct {
	Device       Device
	Id           string
	Name         string
	UniqueId     string
	Capabilities ClimateCapabilities
}

type GenericNumber struct {
	Device            Device
	Id                string
	Name              string
	UniqueId          string
	Icon              string
	Max               float64
	Min               float64
	Step              float64
	Mode              string
	UnitOfMeasurement string
	DeviceClass       string
	EntityCategory    string
	InitialValue      float64
}
