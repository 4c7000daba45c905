package actorutil

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/mqtt"
	"smile2mqtt/pkg/smile"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/lmittmann/tint"
	"go.uber.org/zap"
)

func PipeToSelfWithRecover(ctx actor.Context, future *actor.Future, mapFn func(error) any) {
	ctx.ReenterAfter(future, func(msg any, err error) {
		if err != nil {
			ctx.Send(ctx.Self(), mapFn(err))
			return
		}
		ctx.Send(ctx.Self(), msg)
	})
}

func NewActorSystemWithZapLogger(logger *zap.Logger) *actor.ActorSystem {
	stdOutLogger := zap.NewStdLog(logger)

	var slogLevel slog.Level = slog.LevelInfo

	switch logger.Level() {
	case zap.DebugLevel:
		slogLevel = slog.LevelDebug
	case zap.InfoLevel:
		slogLevel = slog.LevelInfo
	case zap.WarnLevel:
		slogLevel = slog.LevelWarn
	case zap.ErrorLevel:
		slogLevel = slog.LevelError
	case zap.PanicLevel:
		slogLevel = slog.LevelError
	}

	return actor.NewActorSystem(actor.WithLoggerFactory(func(system *actor.ActorSystem) *slog.Logger {

		// create a new logger
		return slog.New(tint.NewHandler(stdOutLogger.Writer(), &tint.Options{
			Level:      slogLevel,
			TimeFormat: time.DateTime,
		}))
	}))
}

func ActorLogger(actorName string, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("actor", actorName))
}

// ParsedMQTTCommandToCommand maps a parsed MQTT command onto an entity
// command. A nil request with nil error means the topic belongs to nobody
// and is silently ignored.
func ParsedMQTTCommandToCommand(cmd mqtt.ParsedMQTTCommand) (domain.ActorRequest, error) {
	switch cmd.Command {
	case mqtt.COMMAND_CLIMATE_TEMPERATURE:
		value, err := strconv.ParseFloat(cmd.Payload, 64)
		if err != nil {
			return nil, err
		}
		channel, err := setpointChannelForField(cmd.Param)
		if err != nil {
			return nil, err
		}
		return domain.ClimateSetTemperatureRequest{
			ClimateId: cmd.DeviceId,
			Setpoints: map[string]float64{channel: value},
		}, nil
	case mqtt.COMMAND_CLIMATE_MODE:
		return domain.ClimateSetModeRequest{
			ClimateId: cmd.DeviceId,
			Mode:      cmd.Payload,
		}, nil
	case mqtt.COMMAND_CLIMATE_PRESET:
		return domain.ClimateSetPresetRequest{
			ClimateId: cmd.DeviceId,
			Preset:    cmd.Payload,
		}, nil
	case mqtt.COMMAND_NUMBER:
		value, err := strconv.ParseFloat(cmd.Payload, 64)
		if err != nil {
			return nil, err
		}
		return domain.NumberSetValueRequest{
			NumberId: cmd.DeviceId,
			Value:    value,
		}, nil
	}
	return nil, nil
}

func setpointChannelForField(field string) (string, error) {
	switch field {
	case mqtt.CLIMATE_FIELD_TEMPERATURE:
		return smile.SetpointSingle, nil
	case mqtt.CLIMATE_FIELD_TEMPERATURE_HIGH:
		return smile.SetpointHigh, nil
	case mqtt.CLIMATE_FIELD_TEMPERATURE_LOW:
		return smile.SetpointLow, nil
	}
	return "", fmt.Errorf("unknown temperature field %q", field)
}
