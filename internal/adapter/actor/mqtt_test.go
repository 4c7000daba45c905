package actor

import (
	"testing"
	"time"

	"smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/util"
	"smile2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMQTTActorHealthAndPublish(t *testing.T) {

	cfg := util.LoadTestConfig()

	logger := zap.Must(zap.NewDevelopment())

	as := actorutil.NewActorSystemWithZapLogger(logger)

	context := as.Root

	props := actor.PropsFromProducer(func() actor.Actor { return NewTestMQTTActor(&cfg, logger) })
	pid := context.Spawn(props)

	time.Sleep(1 * time.Second)

	msg := domain.ActorHealthRequest{}
	result, err := context.RequestFuture(pid, msg, 2*time.Second).Result()
	if err != nil {
		t.Error(err)
		return
	}
	resp, ok := result.(domain.ActorHealthResponse)
	assert.True(t, ok)
	assert.NotNil(t, resp)

	// dummy actor acks publish requests without touching the broker
	pubResult, err := context.RequestFuture(pid, domain.PublishSensorUpdateRequest{
		ActorRequestMixIn: domain.ActorRequestMixIn{
			ReplyToRef: (*domain.ActorRef)(pid),
		},
		Event: domain.FloatSensorUpdateEvent{
			SensorUpdateEventMixIn: domain.SensorUpdateEventMixIn{
				Id: "ab12cd34_temperature",
			},
			Value:    20.4,
			Decimals: 1,
		},
	}, 2*time.Second).Result()
	if err == nil {
		_, ok = pubResult.(domain.PublishSensorUpdateResponse)
		assert.True(t, ok)
	}

	context.Stop(pid)

	time.Sleep(1 * time.Second)

	as.Shutdown()
}
