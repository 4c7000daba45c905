package events

import (
	"testing"

	"smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/core/service"
	"smile2mqtt/pkg/smile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var climateLogic = service.DefaultClimateLogic{}

func testSnapshot(t *testing.T) *smile.Snapshot {
	t.Helper()
	snap, err := smile.CreateTestGateway().FetchSnapshot()
	require.NoError(t, err)
	return snap
}

func TestDescriptorTablesValidate(t *testing.T) {
	assert.NoError(t, ValidateDescriptorTables())
}

func TestSnapshotSensorsOnlyForPresentReadings(t *testing.T) {
	snap := testSnapshot(t)
	sensors := SnapshotSensors(snap)
	require.NotEmpty(t, sensors)

	byId := map[string]domain.GenericSensor{}
	for _, s := range sensors {
		byId[s.Id] = s
	}

	// present reading becomes an entity
	waterTemp, ok := byId[SensorEntityId(smile.TestHeaterID, "water_temperature")]
	require.True(t, ok)
	assert.Equal(t, SENSOR_TYPE_SENSOR, waterTemp.SensorType)
	assert.Equal(t, "°C", waterTemp.UnitOfMeasurement)
	assert.Equal(t, DEVICE_CLASS_TEMPERATURE, waterTemp.DeviceClass)

	// heater binary flag becomes a binary_sensor entity
	heating, ok := byId[SensorEntityId(smile.TestHeaterID, "heating_state")]
	require.True(t, ok)
	assert.Equal(t, SENSOR_TYPE_BINARY, heating.SensorType)

	// the heater reports no humidity, so no entity exists for it
	_, ok = byId[SensorEntityId(smile.TestHeaterID, "humidity")]
	assert.False(t, ok)
}

func TestSnapshotSensorsDeterministicOrder(t *testing.T) {
	snap := testSnapshot(t)
	first := SnapshotSensors(snap)
	second := SnapshotSensors(snap)
	assert.Equal(t, first, second)
}

func TestSnapshotClimatesOnePerMasterThermostat(t *testing.T) {
	snap := testSnapshot(t)
	climates := SnapshotClimates(snap, climateLogic)
	require.Len(t, climates, 2)

	byId := map[string]domain.GenericClimate{}
	for _, c := range climates {
		byId[c.Id] = c
	}

	anna, ok := byId[ClimateEntityId(smile.TestAnnaID)]
	require.True(t, ok)
	assert.Equal(t, "Anna", anna.Name)
	assert.Equal(t, 4.0, anna.Capabilities.MinTemp)
	assert.Equal(t, 30.0, anna.Capabilities.MaxTemp)
	assert.Contains(t, anna.Capabilities.Modes, "auto")
	assert.Contains(t, anna.Capabilities.Presets, "home")

	lisa, ok := byId[ClimateEntityId(smile.TestLisaID)]
	require.True(t, ok)
	// Lisa only has the "None" schedule sentinel, so no auto mode
	assert.Equal(t, []string{"heat"}, lisa.Capabilities.Modes)
}

func TestSnapshotNumbers(t *testing.T) {
	snap := testSnapshot(t)
	numbers := SnapshotNumbers(snap)
	require.Len(t, numbers, 2)

	byId := map[string]domain.GenericNumber{}
	for _, n := range numbers {
		byId[n.Id] = n
	}

	boiler, ok := byId[NumberEntityId(smile.TestHeaterID, "maximum_boiler_temperature")]
	require.True(t, ok)
	assert.Equal(t, 25.0, boiler.Min)
	assert.Equal(t, 95.0, boiler.Max)
	assert.Equal(t, 60.0, boiler.InitialValue)

	dhw, ok := byId[NumberEntityId(smile.TestHeaterID, "max_dhw_temperature")]
	require.True(t, ok)
	assert.Equal(t, 40.0, dhw.Min)
	assert.Equal(t, 60.0, dhw.Max)
}

func TestSnapshotToUpdateEvents(t *testing.T) {
	snap := testSnapshot(t)
	updates := SnapshotToUpdateEvents(snap, climateLogic)
	require.NotEmpty(t, updates)

	var climates []domain.ClimateStateUpdateEvent
	var floats []domain.FloatSensorUpdateEvent
	var binaries []domain.BinarySensorUpdateEvent
	var numbers []domain.NumberSensorUpdateEvent
	for _, e := range updates {
		switch ev := e.(type) {
		case domain.ClimateStateUpdateEvent:
			climates = append(climates, ev)
		case domain.FloatSensorUpdateEvent:
			floats = append(floats, ev)
		case domain.BinarySensorUpdateEvent:
			binaries = append(binaries, ev)
		case domain.NumberSensorUpdateEvent:
			numbers = append(numbers, ev)
		}
	}

	require.Len(t, climates, 2)
	require.Len(t, numbers, 2)
	assert.NotEmpty(t, floats)
	assert.NotEmpty(t, binaries)

	var anna domain.ClimateStateUpdateEvent
	for _, c := range climates {
		if c.SensorId() == ClimateEntityId(smile.TestAnnaID) {
			anna = c
		}
	}
	require.NotEmpty(t, anna.SensorId())
	assert.Equal(t, "auto", anna.Mode)
	assert.Equal(t, "heating", anna.Action)
	assert.Equal(t, "home", anna.Preset)
	assert.Equal(t, "Normaal", anna.SelectedSchedule)
	require.NotNil(t, anna.CurrentTemperature)
	assert.Equal(t, 20.4, *anna.CurrentTemperature)
	require.NotNil(t, anna.TargetTemperature)
	assert.Equal(t, 20.5, *anna.TargetTemperature)
	assert.Nil(t, anna.TargetTempHigh)
	assert.Nil(t, anna.TargetTempLow)
}

func TestFindClimateDevice(t *testing.T) {
	snap := testSnapshot(t)

	id, device, ok := FindClimateDevice(snap, ClimateEntityId(smile.TestAnnaID))
	require.True(t, ok)
	assert.Equal(t, smile.TestAnnaID, id)
	assert.Equal(t, smile.TestAnnaLocation, device.Location())

	_, _, ok = FindClimateDevice(snap, "deadbeef_climate")
	assert.False(t, ok)
}

func TestFindNumberTarget(t *testing.T) {
	snap := testSnapshot(t)

	desc, heater, ok := FindNumberTarget(snap, NumberEntityId(smile.TestHeaterID, "max_dhw_temperature"))
	require.True(t, ok)
	assert.Equal(t, "max_dhw_temperature", desc.Key)
	assert.Equal(t, smile.DevClassHeaterCentral, heater.Class())

	_, _, ok = FindNumberTarget(snap, "unknown_number")
	assert.False(t, ok)
}

func TestNetElectricityFallback(t *testing.T) {
	device := smile.Device{
		"sensors": map[string]any{
			"electricity_consumed_point": 500.0,
			"electricity_produced_point": 120.0,
		},
	}
	source := netElectricity("net_electricity_point", "electricity_consumed_point", "electricity_produced_point")

	v, ok := service.Resolve(source, device)
	require.True(t, ok)
	assert.Equal(t, 380.0, v)

	// direct reading wins over the computed fallback
	device["sensors"].(map[string]any)["net_electricity_point"] = 400.0
	v, ok = service.Resolve(source, device)
	require.True(t, ok)
	assert.Equal(t, 400.0, v)
}
