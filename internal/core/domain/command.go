package domain

import "fmt"

// ControlRequest

type ControlRequest interface {
	ActorRequest
	ControlCommand() string
}

type ControlRequestMixIn struct {
	ActorRequestMixIn
}

func (r ControlRequestMixIn) ControlCommand() string {
	return fmt.Sprintf("%T", r)
}

// ControlResponse

type ControlResponse interface {
	ActorResponse
	ControlResponse() string
}

type ControlResponseMixIn struct {
	ActorResponseMixIn
}

func (r ControlResponseMixIn) ControlResponse() string {
	return fmt.Sprintf("%T", r)
}

// Entity commands, parsed from MQTT command topics and validated against
// the latest snapshot before anything reaches the gateway.

type ClimateSetTemperatureRequest struct {
	ControlRequestMixIn
	ClimateId string
	Setpoints map[string]float64
}

type ClimateSetTemperatureResponse struct {
	ControlResponseMixIn
}

type ClimateSetModeRequest struct {
	ControlRequestMixIn
	ClimateId string
	Mode      string
}

type ClimateSetModeResponse struct {
	ControlResponseMixIn
}

type ClimateSetPresetRequest struct {
	ControlRequestMixIn
	ClimateId string
	Preset    string
}

type ClimateSetPresetResponse struct {
	ControlResponseMixIn
}

type NumberSetValueRequest struct {
	ControlRequestMixIn
	NumberId string
	Value    float64
}

type NumberSetValueResponse struct {
	ControlResponseMixIn
}

// ensure interface compliance
var _ ControlRequest = (*ClimateSetTemperatureRequest)(nil)
