package mqtt

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strconv"
	"time"

	"smile2mqtt/internal/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	MQTT_PAYLOAD_ONLINE  = "online"
	MQTT_PAYLOAD_OFFLINE = "offline"
	MQTT_PAYLOAD_ON      = "on"
	MQTT_PAYLOAD_OFF     = "off"

	COMMAND_CLIMATE_TEMPERATURE = "climate_temperature"
	COMMAND_CLIMATE_MODE        = "climate_mode"
	COMMAND_CLIMATE_PRESET      = "climate_preset"
	COMMAND_NUMBER              = "number"

	CLIMATE_FIELD_CURRENT_TEMPERATURE = "current_temperature"
	CLIMATE_FIELD_TEMPERATURE         = "temperature"
	CLIMATE_FIELD_TEMPERATURE_HIGH    = "temperature_high"
	CLIMATE_FIELD_TEMPERATURE_LOW     = "temperature_low"
	CLIMATE_FIELD_MODE                = "mode"
	CLIMATE_FIELD_ACTION              = "action"
	CLIMATE_FIELD_PRESET              = "preset"
)

func OptsFromConfig(cfg *config.Config) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.MQTT.Host, cfg.MQTT.Port))
	opts.SetClientID(fmt.Sprintf("smile2mqtt_%d", rand.IntN(1000)))
	if cfg.MQTT.Username != "" && cfg.MQTT.Password != "" {
		opts.SetUsername(cfg.MQTT.Username)
		opts.SetPassword(cfg.MQTT.Password)
	}
	opts.WillEnabled = true
	opts.WillPayload = []byte(MQTT_PAYLOAD_OFFLINE)
	opts.WillRetained = true
	opts.WillTopic = bridgeStateTopic(cfg.MQTT.BaseTopic)
	opts.WillQos = 0

	return opts
}

func CreateMQTTClient(cfg *config.Config, opts *mqtt.ClientOptions, onConnectHandler func(client mqtt.Client),
	onConnectionLostHandler func(mqtt.Client, error)) *MQTTClient {
	if onConnectHandler != nil {
		opts.OnConnect = onConnectHandler
	}
	if onConnectionLostHandler != nil {
		opts.OnConnectionLost = onConnectionLostHandler
	}
	return &MQTTClient{
		client:               mqtt.NewClient(opts),
		cfg:                  cfg.MQTT,
		climateCommandRegexp: climateCommandExtractor(cfg.MQTT.BaseTopic),
		numberCommandRegexp:  numberCommandExtractor(cfg.MQTT.BaseTopic),
	}
}

type MQTTClient struct {
	client               mqtt.Client
	cfg                  config.MQTTConfig
	climateCommandRegexp *regexp.Regexp
	numberCommandRegexp  *regexp.Regexp
}

type ParsedMQTTCommand struct {
	DeviceId string
	Command  string
	Param    string
	Payload  string
}

func (c *MQTTClient) baseTopic() string {
	return c.cfg.BaseTopic
}

func (c *MQTTClient) BridgeStateTopic() string {
	return bridgeStateTopic(c.baseTopic())
}

func (c *MQTTClient) SensorStateTopic(sensorId string) string {
	return fmt.Sprintf("%s/sensor/%s/state", c.baseTopic(), sensorId)
}

func (c *MQTTClient) BinarySensorStateTopic(sensorId string) string {
	return fmt.Sprintf("%s/binary_sensor/%s/state", c.baseTopic(), sensorId)
}

func (c *MQTTClient) ClimateStateTopic(climateId, field string) string {
	return fmt.Sprintf("%s/climate/%s/%s/state", c.baseTopic(), climateId, field)
}

func (c *MQTTClient) ClimateCommandTopic(climateId, field string) string {
	return fmt.Sprintf("%s/climate/%s/%s/set", c.baseTopic(), climateId, field)
}

func (c *MQTTClient) ClimateAttributesTopic(climateId string) string {
	return fmt.Sprintf("%s/climate/%s/attributes", c.baseTopic(), climateId)
}

func (c *MQTTClient) NumberStateTopic(id string) string {
	return fmt.Sprintf("%s/number/%s/state", c.baseTopic(), id)
}

func (c *MQTTClient) NumberCommandTopic(id string) string {
	return fmt.Sprintf("%s/number/%s/set", c.baseTopic(), id)
}

func (c *MQTTClient) ParseMQTTCommand(msg mqtt.Message) (*ParsedMQTTCommand, error) {
	climateCmd, err := c.parseClimateMQTTCommand(msg)
	if err == nil {
		return climateCmd, nil
	}
	numberCmd, err := c.parseNumberMQTTCommand(msg)
	if err == nil {
		return numberCmd, nil
	}
	return nil, err
}

func (c *MQTTClient) parseClimateMQTTCommand(msg mqtt.Message) (*ParsedMQTTCommand, error) {
	topic := msg.Topic()
	matches := c.climateCommandRegexp.FindAllStringSubmatch(topic, 1)
	if len(matches) == 0 {
		return nil, errors.New("invalid command")
	}
	if len(matches[0]) != 3 {
		return nil, errors.New("invalid climate command")
	}
	climateId := matches[0][1]
	field := matches[0][2]
	payload := string(msg.Payload())

	switch field {
	case CLIMATE_FIELD_TEMPERATURE, CLIMATE_FIELD_TEMPERATURE_HIGH, CLIMATE_FIELD_TEMPERATURE_LOW:
		// temperature payloads must be a valid number
		if _, err := strconv.ParseFloat(payload, 64); err != nil {
			return nil, err
		}
		return &ParsedMQTTCommand{
			DeviceId: climateId,
			Command:  COMMAND_CLIMATE_TEMPERATURE,
			Param:    field,
			Payload:  payload,
		}, nil
	case CLIMATE_FIELD_MODE:
		return &ParsedMQTTCommand{
			DeviceId: climateId,
			Command:  COMMAND_CLIMATE_MODE,
			Payload:  payload,
		}, nil
	case CLIMATE_FIELD_PRESET:
		return &ParsedMQTTCommand{
			DeviceId: climateId,
			Command:  COMMAND_CLIMATE_PRESET,
			Payload:  payload,
		}, nil
	}
	return nil, fmt.Errorf("unknown climate command field %q", field)
}

func (c *MQTTClient) parseNumberMQTTCommand(msg mqtt.Message) (*ParsedMQTTCommand, error) {
	topic := msg.Topic()
	matches := c.numberCommandRegexp.FindAllStringSubmatch(topic, 1)
	if len(matches) == 0 {
		return nil, errors.New("invalid command")
	}
	if len(matches[0]) != 2 {
		return nil, errors.New("invalid number command")
	}

	// try to parse a valid number
	_, err := strconv.ParseFloat(string(msg.Payload()), 64)
	if err != nil {
		return nil, err
	}

	return &ParsedMQTTCommand{
		DeviceId: matches[0][1],
		Command:  COMMAND_NUMBER,
		Payload:  string(msg.Payload()),
	}, nil
}

func (c *MQTTClient) Publish(topic string, payload any, qos byte, retain bool, continuation func(error), timeout time.Duration) {
	token := c.client.Publish(topic, qos, retain, payload)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT publish timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Subscribe(topic string, qos byte, handler mqtt.MessageHandler, continuation func(error), timeout time.Duration) {
	token := c.client.Subscribe(topic, qos, handler)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT subscribe timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) SubscribeToCommandTopic(handler mqtt.MessageHandler, continuation func(error), timeout time.Duration) {
	c.Subscribe(c.commandTopic(), 1, handler, continuation, timeout)
}

func (c *MQTTClient) Unsubscribe(topic string, continuation func(error), timeout time.Duration) {
	token := c.client.Unsubscribe(topic)
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT unsubscribe timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Connect(continuation func(error), timeout time.Duration) {
	token := c.client.Connect()
	go func() {
		didTO := token.WaitTimeout(timeout)
		if !didTO {
			continuation(errors.New("MQTT connect timed out"))
		} else {
			continuation(token.Error())
		}
	}()
}

func (c *MQTTClient) Disconnect(timeout time.Duration) {
	c.client.Disconnect(uint(timeout.Milliseconds()))
}

func (c *MQTTClient) commandTopic() string {
	return fmt.Sprintf("%s/#", c.baseTopic())
}

func climateCommandExtractor(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("%s/climate/([a-zA-Z0-9_]+)/([a-z_]+)/set", baseTopic))
}

func numberCommandExtractor(baseTopic string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf("%s/number/([a-zA-Z0-9_]+)/set", baseTopic))
}

func bridgeStateTopic(baseTopic string) string {
	return fmt.Sprintf("%s/bridge/state", baseTopic)
}
