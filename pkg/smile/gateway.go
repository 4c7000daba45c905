package smile

// Setpoint channels accepted by SetTemperature. Up to three may be present
// in one request; the full set is sent as a single command.
const (
	SetpointSingle = "setpoint"
	SetpointHigh   = "setpoint_high"
	SetpointLow    = "setpoint_low"
)

// Schedule states accepted by SetScheduleState.
const (
	ScheduleOn  = "on"
	ScheduleOff = "off"
)

// Gateway is the device-command and state-read interface of a Plugwise
// Smile gateway. Command failures are returned as-is; callers decide
// whether to retry.
type Gateway interface {
	Connect() error
	Close() error

	// FetchSnapshot reads the complete gateway state. The returned
	// snapshot is a fresh value on every call.
	FetchSnapshot() (*Snapshot, error)

	// SetTemperature updates the thermostat setpoint(s) of a location
	// as one atomic request.
	SetTemperature(location string, setpoints map[string]float64) error

	// SetScheduleState enables or disables a named schedule for a location.
	SetScheduleState(location, schedule, state string) error

	// SetPreset activates a preset (home, away, asleep, ...) for a location.
	SetPreset(location, preset string) error

	// SetNumberSetpoint updates a named gateway-level setpoint, e.g.
	// maximum_boiler_temperature.
	SetNumberSetpoint(key string, value float64) error
}
