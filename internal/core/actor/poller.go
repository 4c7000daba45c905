package actor

import (
	"fmt"
	"time"

	"smile2mqtt/internal/config"
	"smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/core/events"
	"smile2mqtt/internal/core/port"
	. "smile2mqtt/internal/util/actorutil"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/asynkron/protoactor-go/eventstream"
	"github.com/asynkron/protoactor-go/scheduler"
	"go.uber.org/zap"
)

// PollerActor fetches snapshots from the gateway actor on a fixed interval
// and turns each one into entity state events on the event stream.
type PollerActor struct {
	behavior  actor.Behavior
	stash     *Stash
	scheduler *scheduler.TimerScheduler

	gatewayActor *actor.PID
	config       *config.Config
	eventStream  *eventstream.EventStream
	logic        port.ClimateLogic

	logger *zap.Logger
}

type pollTick struct {
}

func NewPollerActor(config *config.Config, gatewayActor *actor.PID, eventStream *eventstream.EventStream,
	logic port.ClimateLogic, logger *zap.Logger) *PollerActor {
	act := &PollerActor{
		config:       config,
		gatewayActor: gatewayActor,
		behavior:     actor.NewBehavior(),
		stash:        &Stash{},
		logger:       ActorLogger(domain.ACTOR_ID_POLLER, logger),
		eventStream:  eventStream,
		logic:        logic,
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *PollerActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *PollerActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("poller@starting started")

		state.scheduler = scheduler.NewTimerScheduler(ctx)
		if state.config.MonitorConfig.PollIntervalMillis > 0 {
			ctx.Send(ctx.Self(), pollTick{})
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
	default:
		state.logger.Debug("poller@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("poller@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_POLLER,
			Healthy: true,
			State:   "idle",
		})
	case pollTick:
		state.logger.Debug("poller@default tick")
		state.requestSnapshot(ctx)
		// schedule next tick
		if state.config.MonitorConfig.PollIntervalMillis > 0 {
			state.scheduler.RequestOnce(time.Duration(state.config.MonitorConfig.PollIntervalMillis)*time.Millisecond, ctx.Self(), pollTick{})
		}
		state.behavior.BecomeStacked(state.WaitingSnapshotReceive)
	case domain.RefreshRequest:
		// out-of-band poll after a command
		state.logger.Debug("poller@default refresh")
		state.requestSnapshot(ctx)
		state.behavior.BecomeStacked(state.WaitingSnapshotReceive)
	default:
		state.logger.Debug("poller@default: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) WaitingSnapshotReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.GetSnapshotResponse:
		if msg.HasResponseError() {
			state.logger.Error("poller@waiting GetSnapshotResponse error", zap.Error(msg.GetResponseError()))
			state.behavior.UnbecomeStacked()
			state.stash.UnstashAll(ctx)
			return
		}
		state.logger.Debug("poller@waiting GetSnapshotResponse")
		if msg.Snapshot != nil {
			state.eventStream.Publish(domain.SnapshotUpdateEvent{Snapshot: msg.Snapshot})
			for _, ev := range events.SnapshotToUpdateEvents(msg.Snapshot, state.logic) {
				state.eventStream.Publish(ev)
			}
		}
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	default:
		state.logger.Debug("poller@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *PollerActor) requestSnapshot(ctx actor.Context) {
	PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.gatewayActor, domain.GetSnapshotRequest{}, 45*time.Second), func(err error) any {
		return domain.GetSnapshotResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
		}
	})
}
