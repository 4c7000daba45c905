package smile

import (
	"testing"
	"time"
)

func TestTimeoutForVersion(t *testing.T) {
	cases := map[string]time.Duration{
		"":       30 * time.Second,
		"1.8.22": 30 * time.Second,
		"3.1.9":  30 * time.Second,
		"3.2.0":  10 * time.Second,
		"3.7.8":  10 * time.Second,
		"4.4.2":  10 * time.Second,
	}
	for version, want := range cases {
		if got := TimeoutForVersion(version); got != want {
			t.Errorf("TimeoutForVersion(%q) = %v, want %v", version, got, want)
		}
	}
}

func TestSnapshotAccessors(t *testing.T) {
	gw := CreateTestGateway()
	snap, err := gw.FetchSnapshot()
	if err != nil {
		t.Fatal(err)
	}

	heater := snap.HeaterCentral()
	if heater == nil {
		t.Fatal("no heater_central device")
	}
	if heater.Class() != DevClassHeaterCentral {
		t.Errorf("heater class = %q", heater.Class())
	}
	if v, ok := heater.Sensors().Float("water_temperature"); !ok || v != 47.0 {
		t.Errorf("water_temperature = %v (%v)", v, ok)
	}
	if !heater.BinarySensors().Bool("heating_state") {
		t.Error("heating_state should be true")
	}
	if heater.BinarySensors().Bool("cooling_state") {
		t.Error("cooling_state should be false")
	}

	anna, ok := snap.Device(TestAnnaID)
	if !ok {
		t.Fatal("no anna device")
	}
	if anna.Location() != TestAnnaLocation {
		t.Errorf("anna location = %q", anna.Location())
	}
	thermostat := anna.Thermostat()
	if v, ok := thermostat.Float(KeyUpperBound); !ok || v != 30.0 {
		t.Errorf("anna upper_bound = %v (%v)", v, ok)
	}
	schedules := anna.Strings(KeyAvailableSchedules)
	if len(schedules) != 3 {
		t.Errorf("anna schedules = %v", schedules)
	}

	// missing keys read as absent, not as zero values
	if _, ok := anna.Float("no_such_sensor"); ok {
		t.Error("missing float should not be ok")
	}
	if anna.BinarySensors().Bool("no_such_flag") {
		t.Error("missing bool should be false")
	}
}

func TestGatewayRecordsCommands(t *testing.T) {
	gw := CreateTestGateway()

	err := gw.SetTemperature(TestAnnaLocation, map[string]float64{SetpointSingle: 21.5})
	if err != nil {
		t.Fatal(err)
	}
	if gw.LastTempLocation != TestAnnaLocation || gw.LastTemperature[SetpointSingle] != 21.5 {
		t.Errorf("temperature command not recorded: %v %v", gw.LastTempLocation, gw.LastTemperature)
	}

	err = gw.SetScheduleState(TestAnnaLocation, "Normaal", ScheduleOn)
	if err != nil {
		t.Fatal(err)
	}
	if gw.LastSchedule != "Normaal" || gw.LastScheduleState != ScheduleOn {
		t.Errorf("schedule command not recorded: %v %v", gw.LastSchedule, gw.LastScheduleState)
	}

	err = gw.SetNumberSetpoint("maximum_boiler_temperature", 65)
	if err != nil {
		t.Fatal(err)
	}
	if gw.LastNumberKey != "maximum_boiler_temperature" || gw.LastNumberValue != 65 {
		t.Errorf("number command not recorded: %v %v", gw.LastNumberKey, gw.LastNumberValue)
	}
}
