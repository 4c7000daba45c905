package actor

import (
	"testing"
	"time"

	"smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/util/actorutil"
	"smile2mqtt/pkg/smile"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGetSnapshotGatewayActor(t *testing.T) {

	assert := assert.New(t)

	gateway := smile.CreateTestGateway()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewGatewayActor(gateway, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.GetSnapshotRequest{}
	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.GetSnapshotResponse)

	assert.False(resp.HasResponseError())
	assert.NotNil(resp.Snapshot)
	assert.Equal(resp.Snapshot.Gateway.SmileName, "Adam", "gateway name")
	assert.NotNil(resp.Snapshot.HeaterCentral(), "heater record")

	context.Stop(pid)

	as.Shutdown()
}

func TestSetTemperatureGatewayActor(t *testing.T) {

	assert := assert.New(t)

	gateway := smile.CreateTestGateway()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)
	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewGatewayActor(gateway, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.SetTemperatureRequest{
		Location:  smile.TestAnnaLocation,
		Setpoints: map[string]float64{smile.SetpointSingle: 21.5},
	}

	result, err := context.RequestFuture(pid, msg, 15*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp := result.(domain.SetTemperatureResponse)

	assert.False(resp.HasResponseError())
	assert.Equal(gateway.LastTempLocation, smile.TestAnnaLocation, "command location")
	assert.Equal(gateway.LastTemperature[smile.SetpointSingle], 21.5, "command setpoint")

	context.Stop(pid)

	as.Shutdown()
}
