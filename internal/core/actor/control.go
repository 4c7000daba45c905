package actor

import (
	"fmt"
	"slices"
	"time"

	"smile2mqtt/internal/core/domain"
	"smile2mqtt/internal/core/events"
	"smile2mqtt/internal/core/port"
	"smile2mqtt/internal/core/service"
	. "smile2mqtt/internal/util/actorutil"
	"smile2mqtt/pkg/smile"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

// ControlActor validates entity commands against the latest snapshot before
// anything reaches the gateway. Invalid commands are dropped here so the
// gateway never sees an out-of-range or unsupported write. Commands run one
// at a time; a refresh is requested after every successful one.
type ControlActor struct {
	behavior actor.Behavior
	stash    *Stash

	gatewayActor *actor.PID
	pollerActor  *actor.PID
	logic        port.ClimateLogic
	snapshot     *smile.Snapshot

	logger *zap.Logger
}

func NewControlActor(gatewayActor *actor.PID, pollerActor *actor.PID, logic port.ClimateLogic, logger *zap.Logger) *ControlActor {
	act := &ControlActor{
		gatewayActor: gatewayActor,
		pollerActor:  pollerActor,
		logic:        logic,
		behavior:     actor.NewBehavior(),
		stash:        &Stash{},
		logger:       ActorLogger(domain.ACTOR_ID_CONTROL, logger),
	}
	act.behavior.Become(act.StartingReceive)
	return act
}

func (state *ControlActor) Receive(context actor.Context) {
	state.behavior.Receive(context)
}

func (state *ControlActor) StartingReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		state.logger.Debug("control@starting started")
	case domain.ActorHealthRequest:
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_CONTROL,
			Healthy: true,
			State:   "starting",
		})
	case domain.SnapshotUpdateEvent:
		// commands need a snapshot to validate against
		state.logger.Debug("control@starting first snapshot")
		state.snapshot = msg.Snapshot
		state.behavior.Become(state.DefaultReceive)
		state.stash.UnstashAll(ctx)
	case *actor.Restarting:
	default:
		state.logger.Debug("control@starting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *ControlActor) DefaultReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.ActorHealthRequest:
		state.logger.Debug("control@default: ActorHealthRequest")
		ctx.Respond(domain.ActorHealthResponse{
			Id:      domain.ACTOR_ID_CONTROL,
			Healthy: true,
			State:   "idle",
		})
	case domain.SnapshotUpdateEvent:
		state.snapshot = msg.Snapshot
	case domain.ClimateSetTemperatureRequest:
		state.logger.Debug("control@default: ClimateSetTemperatureRequest", zap.String("climate", msg.ClimateId))
		state.handleSetTemperature(ctx, msg)
	case domain.ClimateSetModeRequest:
		state.logger.Debug("control@default: ClimateSetModeRequest", zap.String("climate", msg.ClimateId), zap.String("mode", msg.Mode))
		state.handleSetMode(ctx, msg)
	case domain.ClimateSetPresetRequest:
		state.logger.Debug("control@default: ClimateSetPresetRequest", zap.String("climate", msg.ClimateId), zap.String("preset", msg.Preset))
		state.handleSetPreset(ctx, msg)
	case domain.NumberSetValueRequest:
		state.logger.Debug("control@default: NumberSetValueRequest", zap.String("number", msg.NumberId))
		state.handleSetNumber(ctx, msg)
	default:
		state.logger.Debug("control@default: recv", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// WaitingGatewayReceive holds further commands until the in-flight gateway
// write resolves.
func (state *ControlActor) WaitingGatewayReceive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case domain.SetTemperatureResponse:
		state.finishCommand(ctx, msg.GetResponseError())
	case domain.SetScheduleStateResponse:
		state.finishCommand(ctx, msg.GetResponseError())
	case domain.SetPresetResponse:
		state.finishCommand(ctx, msg.GetResponseError())
	case domain.SetNumberSetpointResponse:
		state.finishCommand(ctx, msg.GetResponseError())
	case domain.SnapshotUpdateEvent:
		state.snapshot = msg.Snapshot
	default:
		state.logger.Debug("control@waiting: stash", zap.String("type", fmt.Sprintf("%T", msg)))
		state.stash.Stash(ctx, msg)
	}
}

func (state *ControlActor) finishCommand(ctx actor.Context, err error) {
	if err != nil {
		state.logger.Error("control@waiting gateway command failed", zap.Error(err))
	} else {
		// poll right away so entity state reflects the write
		ctx.Send(state.pollerActor, domain.RefreshRequest{})
	}
	state.behavior.UnbecomeStacked()
	state.stash.UnstashAll(ctx)
}

func (state *ControlActor) handleSetTemperature(ctx actor.Context, msg domain.ClimateSetTemperatureRequest) {
	_, device, ok := events.FindClimateDevice(state.snapshot, msg.ClimateId)
	if !ok {
		state.logger.Warn("control: unknown climate entity", zap.String("climate", msg.ClimateId))
		return
	}
	capabilities := state.logic.DeriveCapabilities(device, state.snapshot.HeaterCentral(), state.snapshot.Gateway.CoolingPresent)
	if err := state.logic.ValidateSetpoints(msg.Setpoints, capabilities.MinTemp, capabilities.MaxTemp); err != nil {
		state.logger.Warn("control: setpoint rejected", zap.String("climate", msg.ClimateId), zap.Error(err))
		return
	}
	state.sendGatewayCommand(ctx, domain.SetTemperatureRequest{
		Location:  device.Location(),
		Setpoints: msg.Setpoints,
	}, func(err error) any {
		return domain.SetTemperatureResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{ResponseError: err},
		}
	})
}

func (state *ControlActor) handleSetMode(ctx actor.Context, msg domain.ClimateSetModeRequest) {
	_, device, ok := events.FindClimateDevice(state.snapshot, msg.ClimateId)
	if !ok {
		state.logger.Warn("control: unknown climate entity", zap.String("climate", msg.ClimateId))
		return
	}
	capabilities := state.logic.DeriveCapabilities(device, state.snapshot.HeaterCentral(), state.snapshot.Gateway.CoolingPresent)
	if !slices.Contains(capabilities.Modes, msg.Mode) {
		err := &service.UnsupportedModeError{Mode: msg.Mode, Supported: capabilities.Modes}
		state.logger.Warn("control: mode rejected", zap.String("climate", msg.ClimateId), zap.Error(err))
		return
	}
	schedule := scheduleForModeChange(device)
	if msg.Mode == service.HVACModeAuto && schedule == "" {
		state.logger.Warn("control: no schedule to enable", zap.String("climate", msg.ClimateId))
		return
	}
	state.sendGatewayCommand(ctx, domain.SetScheduleStateRequest{
		Location: device.Location(),
		Schedule: schedule,
		State:    state.logic.ScheduleStateForMode(msg.Mode),
	}, func(err error) any {
		return domain.SetScheduleStateResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{ResponseError: err},
		}
	})
}

func (state *ControlActor) handleSetPreset(ctx actor.Context, msg domain.ClimateSetPresetRequest) {
	_, device, ok := events.FindClimateDevice(state.snapshot, msg.ClimateId)
	if !ok {
		state.logger.Warn("control: unknown climate entity", zap.String("climate", msg.ClimateId))
		return
	}
	if !slices.Contains(device.Strings(smile.KeyPresetModes), msg.Preset) {
		state.logger.Warn("control: preset rejected", zap.String("climate", msg.ClimateId), zap.String("preset", msg.Preset))
		return
	}
	state.sendGatewayCommand(ctx, domain.SetPresetRequest{
		Location: device.Location(),
		Preset:   msg.Preset,
	}, func(err error) any {
		return domain.SetPresetResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{ResponseError: err},
		}
	})
}

func (state *ControlActor) handleSetNumber(ctx actor.Context, msg domain.NumberSetValueRequest) {
	desc, heater, ok := events.FindNumberTarget(state.snapshot, msg.NumberId)
	if !ok {
		state.logger.Warn("control: unknown number entity", zap.String("number", msg.NumberId))
		return
	}
	min, _ := service.Resolve(desc.Min, heater)
	max, _ := service.Resolve(desc.Max, heater)
	if msg.Value < min || msg.Value > max {
		err := &service.OutOfRangeError{Channel: desc.Key, Value: msg.Value, Min: min, Max: max}
		state.logger.Warn("control: number value rejected", zap.Error(err))
		return
	}
	state.sendGatewayCommand(ctx, domain.SetNumberSetpointRequest{
		Key:   desc.Key,
		Value: msg.Value,
	}, func(err error) any {
		return domain.SetNumberSetpointResponse{
			ActorResponseMixIn: domain.ActorResponseMixIn{ResponseError: err},
		}
	})
}

func (state *ControlActor) sendGatewayCommand(ctx actor.Context, request any, recover func(error) any) {
	PipeToSelfWithRecover(ctx, ctx.RequestFuture(state.gatewayActor, request, 45*time.Second), recover)
	state.behavior.BecomeStacked(state.WaitingGatewayReceive)
}

// scheduleForModeChange picks the schedule to name on a schedule state
// write. The gateway rejects the sentinel, so fall back to the last used one.
func scheduleForModeChange(device smile.Device) string {
	if schedule, ok := device.String(smile.KeySelectedSchedule); ok && schedule != smile.NoScheduleSentinel {
		return schedule
	}
	if schedule, ok := device.String(smile.KeyLastUsedSchedule); ok && schedule != smile.NoScheduleSentinel {
		return schedule
	}
	return ""
}
