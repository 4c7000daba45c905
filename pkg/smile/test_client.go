package smile

import "sync"

const (
	TestGatewayID    = "fe799307f1b945f5a2099ebca4f0f613"
	TestHeaterID     = "1cbf783bb11e4a7c8a6843dee3a86927"
	TestAnnaID       = "ad4838d7d35c4d6ea796ee12ae5aedf8"
	TestLisaID       = "f61f1a2535f54f52ad006a3d18e459ca"
	TestP1ID         = "aaaa0000aaaa0000aaaa0000aaaa00aa"
	TestAnnaLocation = "c50f167537524366a5af7aa3942feb1e"
	TestLisaLocation = "82fa13f017d240daa0d0ea1775420f24"
)

func CreateTestGateway() *TestGateway {
	return &TestGateway{}
}

// TestGateway serves a fixed Adam + Anna + Lisa + P1 installation and records
// the last command of each kind.
type TestGateway struct {
	mu sync.Mutex

	LastTemperature   map[string]float64
	LastTempLocation  string
	LastSchedule      string
	LastScheduleState string
	LastPreset        string
	LastNumberKey     string
	LastNumberValue   float64
}

func (g *TestGateway) Connect() error {
	return nil
}

func (g *TestGateway) Close() error {
	return nil
}

func (g *TestGateway) FetchSnapshot() (*Snapshot, error) {
	return &Snapshot{
		Gateway: GatewayInfo{
			GatewayID:      TestGatewayID,
			HeaterID:       TestHeaterID,
			SmileName:      "Adam",
			Version:        "3.7.8",
			CoolingPresent: false,
		},
		Devices: map[string]Device{
			TestGatewayID: {
				KeyDevClass: DevClassGateway,
				KeyName:     "Adam",
				KeyModel:    "Gateway",
				KeyVendor:   "Plugwise",
				KeyFirmware: "3.7.8",
				KeyLocation: "1f9dcf6cd4ce4ecd9f9f4a3dd1b4d1e2",
				KeySensors: map[string]any{
					"outdoor_temperature": 7.69,
				},
				KeyBinarySensors: map[string]any{
					"plugwise_notification": false,
				},
			},
			TestHeaterID: {
				KeyDevClass: DevClassHeaterCentral,
				KeyName:     "OpenTherm",
				KeyModel:    "Generic heater",
				KeyVendor:   "Techneco",
				KeySensors: map[string]any{
					"water_temperature":           47.0,
					"intended_boiler_temperature": 49.0,
					"modulation_level":            36.0,
					"return_temperature":          41.5,
					"water_pressure":              1.57,
					"maximum_boiler_temperature":  60.0,
					"outdoor_air_temperature":     7.6,
					"domestic_hot_water_setpoint": 60.0,
					"dhw_temperature":             53.9,
				},
				KeyBinarySensors: map[string]any{
					"heating_state":      true,
					"cooling_state":      false,
					"dhw_state":          false,
					"flame_state":        true,
					"slave_boiler_state": false,
				},
				"maximum_boiler_temperature": map[string]any{
					KeySetpoint:   60.0,
					KeyLowerBound: 25.0,
					KeyUpperBound: 95.0,
					KeyResolution: 0.01,
				},
				"max_dhw_temperature": map[string]any{
					KeySetpoint:   60.0,
					KeyLowerBound: 40.0,
					KeyUpperBound: 60.0,
					KeyResolution: 0.01,
				},
			},
			TestAnnaID: {
				KeyDevClass:           DevClassThermostat,
				KeyName:               "Anna",
				KeyModel:              "ThermoTouch",
				KeyVendor:             "Plugwise",
				KeyFirmware:           "2018-02-08T11:15:53+01:00",
				KeyLocation:           TestAnnaLocation,
				KeyMode:               "auto",
				KeyControlState:       "heating",
				KeyActivePreset:       "home",
				KeyPresetModes:        []any{"home", "asleep", "away", "vacation", "no_frost"},
				KeyAvailableSchedules: []any{"Normaal", "Thuiswerken", NoScheduleSentinel},
				KeySelectedSchedule:   "Normaal",
				KeyLastUsedSchedule:   "Normaal",
				KeyThermostat: map[string]any{
					KeySetpoint:   20.5,
					KeyLowerBound: 4.0,
					KeyUpperBound: 30.0,
					KeyResolution: 0.1,
				},
				KeySensors: map[string]any{
					"temperature": 20.4,
					"setpoint":    20.5,
					"illuminance": 40.5,
					"cooling_activation_outdoor_temperature": 21.0,
					"cooling_deactivation_threshold":         4.0,
				},
			},
			TestLisaID: {
				KeyDevClass:           DevClassZoneThermostat,
				KeyName:               "Zone Lisa Bios",
				KeyModel:              "Lisa",
				KeyVendor:             "Plugwise",
				KeyLocation:           TestLisaLocation,
				KeyMode:               "heat",
				KeyControlState:       "off",
				KeyActivePreset:       "away",
				KeyPresetModes:        []any{"home", "asleep", "away", "vacation", "no_frost"},
				KeyAvailableSchedules: []any{NoScheduleSentinel},
				KeySelectedSchedule:   NoScheduleSentinel,
				KeyThermostat: map[string]any{
					KeySetpoint:   13.0,
					KeyLowerBound: 0.0,
					KeyUpperBound: 99.9,
					KeyResolution: 0.01,
				},
				KeySensors: map[string]any{
					"temperature": 16.5,
					"setpoint":    13.0,
					"battery":     67.0,
				},
			},
			TestP1ID: {
				KeyDevClass: DevClassSmartMeter,
				KeyName:     "P1",
				KeyModel:    "KFM5KAIFA-METER",
				KeyVendor:   "SHENZHEN KAIFA TECHNOLOGY",
				KeySensors: map[string]any{
					"electricity_consumed":                     1030.39,
					"electricity_produced":                     0.0,
					"electricity_consumed_interval":            9.78,
					"electricity_produced_interval":            0.0,
					"electricity_consumed_peak_point":          1030.39,
					"electricity_consumed_off_peak_point":      0.0,
					"electricity_produced_peak_point":          0.0,
					"electricity_produced_off_peak_point":      0.0,
					"electricity_consumed_peak_cumulative":     13966.608,
					"electricity_consumed_off_peak_cumulative": 17643.423,
					"electricity_produced_peak_cumulative":     0.0,
					"electricity_produced_off_peak_cumulative": 0.0,
					"net_electricity_point":                    1030.39,
					"net_electricity_cumulative":               31610.031,
					"voltage_phase_one":                        233.2,
					"gas_consumed_interval":                    0.06,
					"gas_consumed_cumulative":                  9903.613,
				},
			},
		},
	}, nil
}

func (g *TestGateway) SetTemperature(location string, setpoints map[string]float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.LastTempLocation = location
	g.LastTemperature = setpoints
	return nil
}

func (g *TestGateway) SetScheduleState(location, schedule, state string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.LastSchedule = schedule
	g.LastScheduleState = state
	return nil
}

func (g *TestGateway) SetPreset(location, preset string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.LastPreset = preset
	return nil
}

func (g *TestGateway) SetNumberSetpoint(key string, value float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.LastNumberKey = key
	g.LastNumberValue = value
	return nil
}

var _ Gateway = (*TestGateway)(nil)
