package mqtt

import (
	"fmt"

	"smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/core/events"
)

type HADiscoveryConfig struct {
	Device            HADiscoveryDevice `json:"device"`
	StateTopic        string            `json:"state_topic,omitempty"`
	CommandTopic      string            `json:"command_topic,omitempty"`
	StateClass        string            `json:"state_class,omitempty"`
	DeviceClass       string            `json:"device_class,omitempty"`
	UnitOfMeasurement string            `json:"unit_of_measurement,omitempty"`
	AvTopic           string            `json:"availability_topic,omitempty"`
	EntityCategory    string            `json:"entity_category,omitempty"`
	Name              string            `json:"name"`
	UniqueId          string            `json:"unique_id"`
	Platform          string            `json:"platform"`
	EnabledByDefault  *bool             `json:"enabled_by_default,omitempty"`
	PayloadOn         string            `json:"payload_on,omitempty"`
	PayloadOff        string            `json:"payload_off,omitempty"`
	Icon              string            `json:"icon,omitempty"`
	Min               float64           `json:"min,omitempty"`
	Max               float64           `json:"max,omitempty"`
	Step              float64           `json:"step,omitempty"`
	Mode              string            `json:"mode,omitempty"`
	InitialValue      float64           `json:"initial,omitempty"`

	// climate
	CurrentTemperatureTopic string   `json:"current_temperature_topic,omitempty"`
	TemperatureStateTopic   string   `json:"temperature_state_topic,omitempty"`
	TemperatureCommandTopic string   `json:"temperature_command_topic,omitempty"`
	TempHighStateTopic      string   `json:"temperature_high_state_topic,omitempty"`
	TempHighCommandTopic    string   `json:"temperature_high_command_topic,omitempty"`
	TempLowStateTopic       string   `json:"temperature_low_state_topic,omitempty"`
	TempLowCommandTopic     string   `json:"temperature_low_command_topic,omitempty"`
	ModeStateTopic          string   `json:"mode_state_topic,omitempty"`
	ModeCommandTopic        string   `json:"mode_command_topic,omitempty"`
	ActionTopic             string   `json:"action_topic,omitempty"`
	PresetModeStateTopic    string   `json:"preset_mode_state_topic,omitempty"`
	PresetModeCommandTopic  string   `json:"preset_mode_command_topic,omitempty"`
	Modes                   []string `json:"modes,omitempty"`
	PresetModes             []string `json:"preset_modes,omitempty"`
	MinTemp                 float64  `json:"min_temp,omitempty"`
	MaxTemp                 float64  `json:"max_temp,omitempty"`
	TempStep                float64  `json:"temp_step,omitempty"`
	JsonAttributesTopic     string   `json:"json_attributes_topic,omitempty"`
}

type HADiscoveryDevice struct {
	Id           []string `json:"identifiers"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Version      string   `json:"sw_version,omitempty"`
	Model        string   `json:"model,omitempty"`
	Name         string   `json:"name,omitempty"`
	ViaDevice    string   `json:"via_device,omitempty"`
}

func HADiscoverySensorTopic(sensor domain.GenericSensor) string {
	return fmt.Sprintf("homeassistant/%s/%s/%s/config", sensor.SensorType, sensor.Device.Id, sensor.Id)
}

func HADiscoveryClimateTopic(climate domain.GenericClimate) string {
	return fmt.Sprintf("homeassistant/climate/%s/%s/config", climate.Device.Id, climate.Id)
}

func HADiscoveryNumberTopic(number domain.GenericNumber) string {
	return fmt.Sprintf("homeassistant/number/%s/%s/config", number.Device.Id, number.Id)
}

func GenericSensorToHADiscoveryMessage(client *MQTTClient, sensor domain.GenericSensor) HADiscoveryConfig {
	dev := device(sensor.Device)
	var topic string
	switch {
	case sensor.Id == events.SENSOR_ID_BRIDGE_STATE:
		topic = client.BridgeStateTopic()
	case sensor.SensorType == events.SENSOR_TYPE_SENSOR:
		topic = client.SensorStateTopic(sensor.Id)
	case sensor.SensorType == events.SENSOR_TYPE_BINARY:
		topic = client.BinarySensorStateTopic(sensor.Id)
	}
	disConfig := HADiscoveryConfig{
		Device:            dev,
		StateTopic:        topic,
		StateClass:        sensor.StateClass,
		DeviceClass:       sensor.DeviceClass,
		UnitOfMeasurement: sensor.UnitOfMeasurement,
		AvTopic:           client.BridgeStateTopic(),
		EntityCategory:    sensor.EntityCategory,
		Name:              sensor.Name,
		UniqueId:          sensor.UniqueId,
		Icon:              sensor.Icon,
		EnabledByDefault:  sensor.EnabledByDefault,
		Platform:          "mqtt",
	}
	if sensor.Id == events.SENSOR_ID_BRIDGE_STATE {
		disConfig.PayloadOn = MQTT_PAYLOAD_ONLINE
		disConfig.PayloadOff = MQTT_PAYLOAD_OFFLINE
	} else if sensor.SensorType == events.SENSOR_TYPE_BINARY {
		disConfig.PayloadOn = MQTT_PAYLOAD_ON
		disConfig.PayloadOff = MQTT_PAYLOAD_OFF
	}
	return disConfig
}

func GenericClimateToHADiscoveryMessage(client *MQTTClient, climate domain.GenericClimate) HADiscoveryConfig {
	dev := device(climate.Device)
	caps := climate.Capabilities
	disConfig := HADiscoveryConfig{
		Device:                  dev,
		AvTopic:                 client.BridgeStateTopic(),
		Name:                    climate.Name,
		UniqueId:                climate.UniqueId,
		Platform:                "mqtt",
		CurrentTemperatureTopic: client.ClimateStateTopic(climate.Id, CLIMATE_FIELD_CURRENT_TEMPERATURE),
		ModeStateTopic:          client.ClimateStateTopic(climate.Id, CLIMATE_FIELD_MODE),
		ModeCommandTopic:        client.ClimateCommandTopic(climate.Id, CLIMATE_FIELD_MODE),
		ActionTopic:             client.ClimateStateTopic(climate.Id, CLIMATE_FIELD_ACTION),
		Modes:                   caps.Modes,
		MinTemp:                 caps.MinTemp,
		MaxTemp:                 caps.MaxTemp,
		TempStep:                caps.TempStep,
		JsonAttributesTopic:     client.ClimateAttributesTopic(climate.Id),
	}
	if caps.SupportsRange {
		disConfig.TempHighStateTopic = client.ClimateStateTopic(climate.Id, CLIMATE_FIELD_TEMPERATURE_HIGH)
		disConfig.TempHighCommandTopic = client.ClimateCommandTopic(climate.Id, CLIMATE_FIELD_TEMPERATURE_HIGH)
		disConfig.TempLowStateTopic = client.ClimateStateTopic(climate.Id, CLIMATE_FIELD_TEMPERATURE_LOW)
		disConfig.TempLowCommandTopic = client.ClimateCommandTopic(climate.Id, CLIMATE_FIELD_TEMPERATURE_LOW)
	} else {
		disConfig.TemperatureStateTopic = client.ClimateStateTopic(climate.Id, CLIMATE_FIELD_TEMPERATURE)
		disConfig.TemperatureCommandTopic = client.ClimateCommandTopic(climate.Id, CLIMATE_FIELD_TEMPERATURE)
	}
	if len(caps.Presets) > 0 {
		disConfig.PresetModes = caps.Presets
		disConfig.PresetModeStateTopic = client.ClimateStateTopic(climate.Id, CLIMATE_FIELD_PRESET)
		disConfig.PresetModeCommandTopic = client.ClimateCommandTopic(climate.Id, CLIMATE_FIELD_PRESET)
	}
	return disConfig
}

func GenericNumberToHADiscoveryMessage(client *MQTTClient, number domain.GenericNumber) HADiscoveryConfig {
	dev := device(number.Device)
	topic := client.NumberStateTopic(number.Id)
	cmdTopic := client.NumberCommandTopic(number.Id)
	disConfig := HADiscoveryConfig{
		Device:            dev,
		StateTopic:        topic,
		CommandTopic:      cmdTopic,
		AvTopic:           client.BridgeStateTopic(),
		Name:              number.Name,
		UniqueId:          number.UniqueId,
		Icon:              number.Icon,
		UnitOfMeasurement: number.UnitOfMeasurement,
		DeviceClass:       number.DeviceClass,
		EntityCategory:    number.EntityCategory,
		Platform:          "mqtt",
		Min:               number.Min,
		Max:               number.Max,
		Step:              number.Step,
		Mode:              number.Mode,
		InitialValue:      number.InitialValue,
	}
	return disConfig
}

func device(d domain.Device) HADiscoveryDevice {
	return HADiscoveryDevice{
		Id:           []string{d.Id},
		Manufacturer: d.Manufacturer,
		Version:      d.Version,
		Model:        d.Model,
		Name:         d.Name,
		ViaDevice:    d.ViaDevice,
	}
}
