package actor

import (
	"errors"
	"testing"
	"time"

	adactor "smile2mqtt/internal/adapter/actor"
	"smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/core/events"
	"smile2mqtt/internal/core/service"
	"smile2mqtt/internal/util"
	"smile2mqtt/internal/util/actorutil"
	"smile2mqtt/pkg/smile"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestControlActorCommandFlow(t *testing.T) {

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	cfg := util.LoadTestConfig()
	cfg.MonitorConfig.PollIntervalMillis = 0

	gateway := smile.CreateTestGateway()

	// gateway actor
	gatewayProps := actor.PropsFromProducer(func() actor.Actor {
		return adactor.NewGatewayActor(gateway, logger)
	})
	gatewayActorPID := context.Spawn(gatewayProps)

	// poller actor, no ticks, only refresh requests
	pollerProps := actor.PropsFromProducer(func() actor.Actor {
		return NewPollerActor(&cfg, gatewayActorPID, &eventstream.EventStream{}, service.DefaultClimateLogic{}, logger)
	})
	pollerActorPID := context.Spawn(pollerProps)

	// control actor
	controlProps := actor.PropsFromProducer(func() actor.Actor {
		return NewControlActor(gatewayActorPID, pollerActorPID, service.DefaultClimateLogic{}, logger)
	})
	controlActorPID := context.Spawn(controlProps)

	time.Sleep(1 * time.Second)

	// feed the first snapshot
	snap, err := gateway.FetchSnapshot()
	if err != nil {
		t.Error(err)
		return
	}
	context.Send(controlActorPID, domain.SnapshotUpdateEvent{Snapshot: snap})

	time.Sleep(200 * time.Millisecond)

	hcr, err := healthCheck(context, controlActorPID)
	if err != nil {
		t.Error(err)
		return
	}
	assert.True(t, hcr.Healthy, "actor should be healthy")
	assert.Equal(t, "idle", hcr.State, "actor state should be idle")

	annaClimate := events.ClimateEntityId(smile.TestAnnaID)

	// valid setpoint
	context.Send(controlActorPID, domain.ClimateSetTemperatureRequest{
		ClimateId: annaClimate,
		Setpoints: map[string]float64{smile.SetpointSingle: 21.0},
	})
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, smile.TestAnnaLocation, gateway.LastTempLocation, "setpoint location")
	assert.Equal(t, 21.0, gateway.LastTemperature[smile.SetpointSingle], "setpoint value")

	// out of range setpoint must never reach the gateway
	context.Send(controlActorPID, domain.ClimateSetTemperatureRequest{
		ClimateId: annaClimate,
		Setpoints: map[string]float64{smile.SetpointSingle: 99.0},
	})
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, 21.0, gateway.LastTemperature[smile.SetpointSingle], "rejected setpoint leaves state untouched")

	// auto mode turns the schedule on
	context.Send(controlActorPID, domain.ClimateSetModeRequest{
		ClimateId: annaClimate,
		Mode:      "auto",
	})
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, "Normaal", gateway.LastSchedule, "schedule name")
	assert.Equal(t, smile.ScheduleOn, gateway.LastScheduleState, "schedule state on")

	// heat mode turns the schedule off
	context.Send(controlActorPID, domain.ClimateSetModeRequest{
		ClimateId: annaClimate,
		Mode:      "heat",
	})
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, smile.ScheduleOff, gateway.LastScheduleState, "schedule state off")

	// unsupported mode is dropped
	context.Send(controlActorPID, domain.ClimateSetModeRequest{
		ClimateId: annaClimate,
		Mode:      "cool",
	})
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, smile.ScheduleOff, gateway.LastScheduleState, "rejected mode leaves state untouched")

	// preset
	context.Send(controlActorPID, domain.ClimateSetPresetRequest{
		ClimateId: annaClimate,
		Preset:    "away",
	})
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, "away", gateway.LastPreset, "preset")

	// unknown preset is dropped
	context.Send(controlActorPID, domain.ClimateSetPresetRequest{
		ClimateId: annaClimate,
		Preset:    "party",
	})
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, "away", gateway.LastPreset, "rejected preset leaves state untouched")

	// number setpoint
	boilerNumber := events.NumberEntityId(smile.TestHeaterID, "maximum_boiler_temperature")
	context.Send(controlActorPID, domain.NumberSetValueRequest{
		NumberId: boilerNumber,
		Value:    70.0,
	})
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, "maximum_boiler_temperature", gateway.LastNumberKey, "number key")
	assert.Equal(t, 70.0, gateway.LastNumberValue, "number value")

	// out of range number value is dropped
	context.Send(controlActorPID, domain.NumberSetValueRequest{
		NumberId: boilerNumber,
		Value:    120.0,
	})
	time.Sleep(500 * time.Millisecond)

	assert.Equal(t, 70.0, gateway.LastNumberValue, "rejected number value leaves state untouched")

	context.Stop(controlActorPID)
	context.Stop(pollerActorPID)
	context.Stop(gatewayActorPID)

	as.Shutdown()
}

func healthCheck(ctx *actor.RootContext, pid *actor.PID) (*domain.ActorHealthResponse, error) {
	resp, err := ctx.RequestFuture(pid, domain.ActorHealthRequest{}, 2*time.Second).Result()
	if err != nil {
		return nil, err
	}
	hcr, ok := resp.(domain.ActorHealthResponse)
	if !ok {
		return nil, errors.New("unexpcted response type")
	}
	return &hcr, nil
}
