package events

import (
	"slices"

	. "smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/core/port"
	"smile2mqtt/internal/core/service"
	"smile2mqtt/pkg/smile"
)

// sortedDeviceIds keeps discovery and event order stable across polls.
func sortedDeviceIds(snap *smile.Snapshot) []string {
	ids := make([]string, 0, len(snap.Devices))
	for id := range snap.Devices {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func haDeviceFor(id string, device smile.Device, snap *smile.Snapshot) Device {
	gatewayDevice := GatewayDevice(snap.Gateway, snap.Devices[snap.Gateway.GatewayID])
	if id == snap.Gateway.GatewayID {
		return gatewayDevice
	}
	return ApplianceDevice(id, device, gatewayDevice)
}

func IsMasterThermostat(device smile.Device) bool {
	return slices.Contains(MASTER_THERMOSTATS, device.Class())
}

// SnapshotSensors builds the sensor entities of every device. An entity
// exists when its descriptor resolves against the snapshot; absent readings
// create no entity at all.
func SnapshotSensors(snap *smile.Snapshot) []GenericSensor {
	var sensors []GenericSensor
	for _, id := range sortedDeviceIds(snap) {
		device := snap.Devices[id]
		haDevice := haDeviceFor(id, device, snap)
		for _, desc := range SENSORS {
			if _, ok := service.Resolve(desc.Source, device); !ok {
				continue
			}
			entityId := SensorEntityId(id, desc.Key)
			sensors = append(sensors, GenericSensor{
				Device:            haDevice,
				Id:                entityId,
				SensorType:        SENSOR_TYPE_SENSOR,
				Name:              desc.Name,
				UnitOfMeasurement: desc.Unit,
				StateClass:        desc.StateClass,
				DeviceClass:       desc.DeviceClass,
				EntityCategory:    desc.EntityCategory,
				EnabledByDefault:  desc.EnabledByDefault,
				Icon:              desc.Icon,
				UniqueId:          uniqueId(haDevice.Id, entityId),
			})
		}
		binarySensors := device.BinarySensors()
		for _, desc := range BINARY_SENSORS {
			if _, present := binarySensors[desc.Key]; !present {
				continue
			}
			entityId := SensorEntityId(id, desc.Key)
			sensors = append(sensors, GenericSensor{
				Device:           haDevice,
				Id:               entityId,
				SensorType:       SENSOR_TYPE_BINARY,
				Name:             desc.Name,
				DeviceClass:      desc.DeviceClass,
				EntityCategory:   desc.EntityCategory,
				EnabledByDefault: desc.EnabledByDefault,
				Icon:             desc.Icon,
				UniqueId:         uniqueId(haDevice.Id, entityId),
			})
		}
	}
	return sensors
}

// SnapshotClimates builds one climate entity per master thermostat.
func SnapshotClimates(snap *smile.Snapshot, logic port.ClimateLogic) []GenericClimate {
	heater := snap.HeaterCentral()
	var climates []GenericClimate
	for _, id := range sortedDeviceIds(snap) {
		device := snap.Devices[id]
		if !IsMasterThermostat(device) {
			continue
		}
		haDevice := haDeviceFor(id, device, snap)
		entityId := ClimateEntityId(id)
		climates = append(climates, GenericClimate{
			Device:       haDevice,
			Id:           entityId,
			Name:         device.Name(),
			UniqueId:     uniqueId(haDevice.Id, entityId),
			Capabilities: logic.DeriveCapabilities(device, heater, snap.Gateway.CoolingPresent),
		})
	}
	return climates
}

// SnapshotNumbers builds the writable setpoint entities of the heater.
func SnapshotNumbers(snap *smile.Snapshot) []GenericNumber {
	heater := snap.HeaterCentral()
	if heater == nil {
		return nil
	}
	haDevice := haDeviceFor(snap.Gateway.HeaterID, heater, snap)
	var numbers []GenericNumber
	for _, desc := range NUMBERS {
		value, ok := service.Resolve(desc.Value, heater)
		if !ok {
			continue
		}
		min, _ := service.Resolve(desc.Min, heater)
		max, _ := service.Resolve(desc.Max, heater)
		step, ok := service.Resolve(desc.Step, heater)
		if !ok || step <= 0 {
			step = 0.5
		}
		entityId := NumberEntityId(snap.Gateway.HeaterID, desc.Key)
		numbers = append(numbers, GenericNumber{
			Device:            haDevice,
			Id:                entityId,
			Name:              desc.Name,
			UniqueId:          uniqueId(haDevice.Id, entityId),
			Max:               max,
			Min:               min,
			Step:              step,
			Mode:              desc.Mode,
			UnitOfMeasurement: desc.Unit,
			DeviceClass:       desc.DeviceClass,
			EntityCategory:    desc.EntityCategory,
			InitialValue:      value,
		})
	}
	return numbers
}

func BridgeSensors(bridgeDevice Device) []GenericSensor {
	return []GenericSensor{
		{
			Device:         bridgeDevice,
			Id:             SENSOR_ID_BRIDGE_STATE,
			SensorType:     SENSOR_TYPE_BINARY,
			Name:           "Connection state",
			DeviceClass:    DEVICE_CLASS_CONNECTIVITY,
			EntityCategory: ENTITY_CLASS_DIAGNOSTIC,
			UniqueId:       uniqueId(bridgeDevice.Id, SENSOR_ID_BRIDGE_STATE),
		},
	}
}

// FindClimateDevice resolves a climate entity id back to the thermostat
// it was derived from.
func FindClimateDevice(snap *smile.Snapshot, climateId string) (string, smile.Device, bool) {
	for _, id := range sortedDeviceIds(snap) {
		device := snap.Devices[id]
		if IsMasterThermostat(device) && ClimateEntityId(id) == climateId {
			return id, device, true
		}
	}
	return "", nil, false
}

// FindNumberTarget resolves a number entity id back to its descriptor and
// the heater record holding its bounds.
func FindNumberTarget(snap *smile.Snapshot, numberId string) (NumberDescriptor, smile.Device, bool) {
	heater := snap.HeaterCentral()
	if heater == nil {
		return NumberDescriptor{}, nil, false
	}
	for _, desc := range NUMBERS {
		if NumberEntityId(snap.Gateway.HeaterID, desc.Key) == numberId {
			return desc, heater, true
		}
	}
	return NumberDescriptor{}, nil, false
}
