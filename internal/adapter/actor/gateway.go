package actor

import (
	"fmt"
	"time"

	"smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/util/actorutil"
	"smile2mqtt/pkg/smile"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/reugn/go-quartz/logger"
	"go.uber.org/zap"
)

const (
	GATEWAY_ACTOR_ID = "gateway"

	gatewayCallTimeout = 40 * time.Second
)

type GatewayActor struct {
	behavior actor.Behavior
	stash    *actorutil.Stash
	gateway  smile.Gateway
	logger   *zap.Logger
}

type backgroundTaskResult struct {
	message any
	replyTo *actor.PID
}

func NewGatewayActor(gateway smile.Gateway, logger *zap.Logger) *GatewayActor {
	act := &GatewayActor{
		gateway:  gateway,
		behavior: actor.NewBehavior(),
		stash:    &actorutil.Stash{},
		logger:   actorutil.ActorLogger("gateway", logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *GatewayActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *GatewayActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("gateway@starting started")
		if err := state.gateway.Connect(); err != nil {
			panic(err)
		}
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
		state.gateway.Close()
	default:
		state.logger.Debug("gateway@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *GatewayActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("gateway@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      GATEWAY_ACTOR_ID,
			Healthy: true,
			State:   "idle",
		})
	case domain.GetSnapshotRequest:
		state.logger.Debug("gateway@default: GetSnapshotRequest")
		sender := actorutil.ForRequest(msg).ReplyTo(ctx)

		actorutil.MapBackgroundTask(actorutil.NewBackgroundTask(ctx, state.getSnapshot),
			mapTaskResult[domain.GetSnapshotResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.GetSnapshotResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(gatewayCallTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingGateway)
	case domain.SetTemperatureRequest:
		state.logger.Debug("gateway@default: SetTemperatureRequest")
		sender := ctx.Sender()
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, func() *domain.SetTemperatureResponse {
			a := state.setTemperature(msg.Location, msg.Setpoints)
			return &a
		}),
			mapTaskResult[domain.SetTemperatureResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SetTemperatureResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(gatewayCallTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingGateway)
	case domain.SetScheduleStateRequest:
		state.logger.Debug("gateway@default: SetScheduleStateRequest")
		sender := ctx.Sender()
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, func() *domain.SetScheduleStateResponse {
			a := state.setScheduleState(msg.Location, msg.Schedule, msg.State)
			return &a
		}),
			mapTaskResult[domain.SetScheduleStateResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SetScheduleStateResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(gatewayCallTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingGateway)
	case domain.SetPresetRequest:
		state.logger.Debug("gateway@default: SetPresetRequest")
		sender := ctx.Sender()
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, func() *domain.SetPresetResponse {
			a := state.setPreset(msg.Location, msg.Preset)
			return &a
		}),
			mapTaskResult[domain.SetPresetResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SetPresetResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(gatewayCallTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingGateway)
	case domain.SetNumberSetpointRequest:
		state.logger.Debug("gateway@default: SetNumberSetpointRequest")
		sender := ctx.Sender()
		actorutil.MapBackgroundTask(actorutil.NewBackgroundTaskNoError(ctx, func() *domain.SetNumberSetpointResponse {
			a := state.setNumberSetpoint(msg.Key, msg.Value)
			return &a
		}),
			mapTaskResult[domain.SetNumberSetpointResponse](sender)).Recover(func(err error) backgroundTaskResult {
			return backgroundTaskResult{
				message: domain.SetNumberSetpointResponse{
					ActorResponseMixIn: domain.ActorResponseMixIn{
						ResponseError: err,
					},
				},
				replyTo: sender,
			}
		}).WithTimeout(gatewayCallTimeout).PipeTo(ctx.Self())
		state.behavior.BecomeStacked(state.WaitingGateway)
	case *actor.Stopping:
		state.gateway.Close()
	default:
		state.logger.Debug("gateway@default default recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

func (state *GatewayActor) WaitingGateway(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case backgroundTaskResult:
		state.logger.Debug("gateway@WaitingGateway backgroundTaskResult", zap.String("type", fmt.Sprintf("%T", msg.message)))
		ctx.Send(msg.replyTo, msg.message)
		state.behavior.UnbecomeStacked()
		state.stash.UnstashAll(ctx)
	case *actor.Stopping:
		state.gateway.Close()
	default:
		state.logger.Debug("gateway@WaitingGateway stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (a *GatewayActor) getSnapshot() (*domain.GetSnapshotResponse, error) {
	snap, err := a.gateway.FetchSnapshot()
	if err != nil {
		logger.Error(err)
		return nil, err
	}
	return &domain.GetSnapshotResponse{
		Snapshot: snap,
	}, nil
}

func (a *GatewayActor) setTemperature(location string, setpoints map[string]float64) domain.SetTemperatureResponse {
	if err := a.gateway.SetTemperature(location, setpoints); err != nil {
		logger.Error(err)
		return domain.SetTemperatureResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
		}
	}
	return domain.SetTemperatureResponse{}
}

func (a *GatewayActor) setScheduleState(location, schedule, scheduleState string) domain.SetScheduleStateResponse {
	if err := a.gateway.SetScheduleState(location, schedule, scheduleState); err != nil {
		logger.Error(err)
		return domain.SetScheduleStateResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
		}
	}
	return domain.SetScheduleStateResponse{}
}

func (a *GatewayActor) setPreset(location, preset string) domain.SetPresetResponse {
	if err := a.gateway.SetPreset(location, preset); err != nil {
		logger.Error(err)
		return domain.SetPresetResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
		}
	}
	return domain.SetPresetResponse{}
}

func (a *GatewayActor) setNumberSetpoint(key string, value float64) domain.SetNumberSetpointResponse {
	if err := a.gateway.SetNumberSetpoint(key, value); err != nil {
		logger.Error(err)
		return domain.SetNumberSetpointResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{
				ResponseError: err,
			},
		}
	}
	return domain.SetNumberSetpointResponse{}
}

func mapTaskResult[T any](sender *actor.PID) func(t *T) *backgroundTaskResult {
	return func(t *T) *backgroundTaskResult {
		return &backgroundTaskResult{
			message: *t,
			replyTo: sender,
		}
	}
}
