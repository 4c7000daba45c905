package domain

import (
	"fmt"

	"smile2mqtt/pkg/smile"
)

type SensorUpdateEventMixIn struct {
	Id string
}

type SensorUpdateEvent interface {
	SensorUpdateEvent() string
	SensorId() string
}

func (e SensorUpdateEventMixIn) SensorUpdateEvent() string {
	return fmt.Sprintf("%T", e)
}

func (e SensorUpdateEventMixIn) SensorId() string {
	return e.Id
}

type FloatSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value    float64
	Decimals uint
}

type BinarySensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type TextSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value string
}

type BridgeStateUpdateEvent struct {
	SensorUpdateEventMixIn
	Value bool
}

type NumberSensorUpdateEvent struct {
	SensorUpdateEventMixIn
	Value    float64
	Decimals uint
}

// ClimateStateUpdateEvent carries the full climate entity state of one
// thermostat. Temperature fields are pointers: nil means the channel does
// not apply to this unit (single setpoint vs heat/cool range).
type ClimateStateUpdateEvent struct {
	SensorUpdateEventMixIn
	CurrentTemperature *float64
	TargetTemperature  *float64
	TargetTempHigh     *float64
	TargetTempLow      *float64
	Mode               string
	Action             string
	Preset             string
	AvailableSchedules []string
	SelectedSchedule   string
}

// SnapshotUpdateEvent publishes a freshly polled snapshot on the event
// stream so stateful actors can replace theirs wholesale.
type SnapshotUpdateEvent struct {
	Snapshot *smile.Snapshot
}
