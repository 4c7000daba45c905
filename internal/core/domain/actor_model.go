package domain

import "smile2mqtt/pkg/smile"

const (
	ACTOR_ID_MASTER       = "master"
	ACTOR_ID_GATEWAY      = "gateway"
	ACTOR_ID_POLLER       = "poller"
	ACTOR_ID_MQTT         = "mqtt"
	ACTOR_ID_CONTROL      = "control"
	ACTOR_ID_HA_DISCOVERY = "hadiscovery"
)

type GetSnapshotRequest struct {
	ActorRequestMixIn
}

type GetSnapshotResponse struct {
	ActorResponseMixIn
	Snapshot *smile.Snapshot
}

type SetTemperatureRequest struct {
	ActorRequestMixIn
	Location  string
	Setpoints map[string]float64
}

type SetTemperatureResponse struct {
	ActorResponseMixIn
}

type SetScheduleStateRequest struct {
	ActorRequestMixIn
	Location string
	Schedule string
	State    string
}

type SetScheduleStateResponse struct {
	ActorResponseMixIn
}

type SetPresetRequest struct {
	ActorRequestMixIn
	Location string
	Preset   string
}

type SetPresetResponse struct {
	ActorResponseMixIn
}

type SetNumberSetpointRequest struct {
	ActorRequestMixIn
	Key   string
	Value float64
}

type SetNumberSetpointResponse struct {
	ActorResponseMixIn
}

// RefreshRequest forces a poll outside the regular interval, used after a
// command so entity state catches up quickly.
type RefreshRequest struct {
	ActorRequestMixIn
}

type PublishMessageRequest struct {
	ActorRequestMixIn
	Topic   string
	Payload string
	Retain  bool
}

type PublishMessageResponse struct {
	ActorResponseMixIn
}

type PublishSensorUpdateRequest struct {
	ActorRequestMixIn
	Retain bool
	Event  SensorUpdateEvent
}

type PublishSensorUpdateResponse struct {
	ActorResponseMixIn
}

type PublishDiscoveryRequest struct {
	ActorRequestMixIn
	Sensors  []GenericSensor
	Climates []GenericClimate
	Numbers  []GenericNumber
}

type PublishDiscoveryResponse struct {
	ActorResponseMixIn
}

type ActorHealthRequest struct {
	ActorRequestMixIn
}

type ActorHealthResponse struct {
	ActorResponseMixIn
	Id      string
	Healthy bool
	State   string
}
