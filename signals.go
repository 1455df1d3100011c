package interpose

import (
	"context"

	"github.com/zoobzio/capitan"
)

// Signals for interception events.
var (
	SignalDispatcherBuilt = capitan.NewSignal("interpose.dispatcher.built", "Dispatcher compiled for a return type")
	SignalFaultConverted  = capitan.NewSignal("interpose.fault.converted", "Synchronous failure converted to a failed pending result")
)

// Keys for typed event data.
var (
	KeyTypeName     = capitan.NewStringKey("type_name")
	KeyShape        = capitan.NewStringKey("shape")
	KeyBuilds       = capitan.NewIntKey("builds")
	KeyInvocationID = capitan.NewStringKey("invocation_id")
	KeyError        = capitan.NewErrorKey("error")
)

// emitDispatcherBuilt emits an event when a dispatcher is built and cached.
func emitDispatcherBuilt(ctx context.Context, typeName string, shape returnShape, builds int) {
	capitan.Emit(ctx, SignalDispatcherBuilt,
		KeyTypeName.Field(typeName),
		KeyShape.Field(shape.String()),
		KeyBuilds.Field(builds),
	)
}

// emitFaultConverted emits an event when a synchronous failure is rerouted
// into the asynchronous failure channel.
func emitFaultConverted(ctx context.Context, invocationID string, err error) {
	capitan.Emit(ctx, SignalFaultConverted,
		KeyInvocationID.Field(invocationID),
		KeyError.Field(err),
	)
}
