package events

import (
	. "smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/core/port"
	"smile2mqtt/internal/core/service"
	"smile2mqtt/pkg/smile"
)

// SnapshotToUpdateEvents maps one polled snapshot onto the flat list of
// entity state events. Only values present in the snapshot produce events;
// a sensor that disappears simply stops updating.
func SnapshotToUpdateEvents(snap *smile.Snapshot, logic port.ClimateLogic) []any {
	var events []any
	for _, id := range sortedDeviceIds(snap) {
		device := snap.Devices[id]
		events = append(events, deviceSensorUpdateEvents(id, device)...)
		if IsMasterThermostat(device) {
			events = append(events, climateUpdateEvent(id, device, snap, logic))
		}
	}
	if heater := snap.HeaterCentral(); heater != nil {
		events = append(events, numberUpdateEvents(snap.Gateway.HeaterID, heater)...)
	}
	return events
}

func deviceSensorUpdateEvents(id string, device smile.Device) []any {
	var events []any
	for _, desc := range SENSORS {
		value, ok := service.Resolve(desc.Source, device)
		if !ok {
			continue
		}
		events = append(events, FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SensorEntityId(id, desc.Key),
			},
			Value:    value,
			Decimals: desc.Decimals,
		})
	}
	binarySensors := device.BinarySensors()
	for _, desc := range BINARY_SENSORS {
		if _, present := binarySensors[desc.Key]; !present {
			continue
		}
		events = append(events, BinarySensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SensorEntityId(id, desc.Key),
			},
			Value: binarySensors.Bool(desc.Key),
		})
	}
	return events
}

func climateUpdateEvent(id string, device smile.Device, snap *smile.Snapshot, logic port.ClimateLogic) ClimateStateUpdateEvent {
	heater := snap.HeaterCentral()
	capabilities := logic.DeriveCapabilities(device, heater, snap.Gateway.CoolingPresent)

	event := ClimateStateUpdateEvent{
		SensorUpdateEventMixIn: SensorUpdateEventMixIn{
			Id: ClimateEntityId(id),
		},
		Mode:               logic.DeriveReportedMode(device, capabilities.Modes),
		Action:             logic.DeriveAction(device, heater),
		AvailableSchedules: device.Strings(smile.KeyAvailableSchedules),
	}
	if preset, ok := device.String(smile.KeyActivePreset); ok {
		event.Preset = preset
	}
	if schedule, ok := device.String(smile.KeySelectedSchedule); ok {
		event.SelectedSchedule = schedule
	}
	if v, ok := device.Sensors().Float("temperature"); ok {
		event.CurrentTemperature = &v
	}
	if capabilities.SupportsRange {
		if v, ok := device.Sensors().Float(smile.SetpointHigh); ok {
			event.TargetTempHigh = &v
		}
		if v, ok := device.Sensors().Float(smile.SetpointLow); ok {
			event.TargetTempLow = &v
		}
	} else if v, ok := device.Sensors().Float(smile.SetpointSingle); ok {
		event.TargetTemperature = &v
	}
	return event
}

func numberUpdateEvents(heaterId string, heater smile.Device) []any {
	var events []any
	for _, desc := range NUMBERS {
		value, ok := service.Resolve(desc.Value, heater)
		if !ok {
			continue
		}
		events = append(events, NumberSensorUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: NumberEntityId(heaterId, desc.Key),
			},
			Value:    value,
			Decimals: desc.Decimals,
		})
	}
	return events
}

func BridgeStateUpdateEvents(online bool) []any {
	return []any{
		BridgeStateUpdateEvent{
			SensorUpdateEventMixIn: SensorUpdateEventMixIn{
				Id: SENSOR_ID_BRIDGE_STATE,
			},
			Value: online,
		},
	}
}
