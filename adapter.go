package interpose

import (
	"log/slog"
	"reflect"

	"github.com/muir/reflectutils"

	"github.com/interpose-go/interpose/await"
)

// AsyncAdapter routes calls to the matching entry point of a wrapped
// AsyncInterceptor.  It implements Interceptor, so the call site always
// invokes the single synchronous Intercept and the adapter is insertable
// anywhere a plain interceptor is expected.
//
// On the first call for a given declared return type the adapter
// classifies the type and compiles a dispatcher for it; every later call
// for that type reuses the cached dispatcher directly.
type AsyncAdapter struct {
	wrapped AsyncInterceptor
	cache   *dispatchCache
	logger  *slog.Logger
	signals bool
}

// AdapterOption adjusts a new AsyncAdapter.
type AdapterOption func(*AsyncAdapter)

// WithLogger sets the adapter's logger.  The default is slog.Default().
func WithLogger(logger *slog.Logger) AdapterOption {
	return func(a *AsyncAdapter) {
		a.logger = logger
	}
}

// WithSignals controls emission of capitan signals.  The default is on.
func WithSignals(enabled bool) AdapterOption {
	return func(a *AsyncAdapter) {
		a.signals = enabled
	}
}

// NewAsyncAdapter wraps one AsyncInterceptor.  The adapter owns its own
// dispatch cache, bounded by the number of distinct return types the
// intercepted object's methods exhibit.
func NewAsyncAdapter(wrapped AsyncInterceptor, opts ...AdapterOption) *AsyncAdapter {
	a := &AsyncAdapter{
		wrapped: wrapped,
		cache:   newDispatchCache(),
		signals: true,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// DispatcherBuilds reports how many dispatchers this adapter has built and
// cached.
func (a *AsyncAdapter) DispatcherBuilds() int {
	return a.cache.buildCount()
}

// Intercept implements Interceptor.  Configuration errors (no resolvable
// method, unrecognized shape) return directly; failures inside the wrapped
// interceptor surface through the pending result for asynchronous methods
// and as a plain error for synchronous ones.
func (a *AsyncAdapter) Intercept(inv Invocation) error {
	rt, err := resolveReturnType(inv)
	if err != nil {
		return err
	}
	d, err := a.dispatcher(inv, rt)
	if err != nil {
		return err
	}
	return d(inv)
}

func (a *AsyncAdapter) dispatcher(inv Invocation, rt reflect.Type) (dispatcher, error) {
	tc := getTypeCode(rt)
	if d, ok := a.cache.lookup(tc); ok {
		return d, nil
	}
	shape := classifyReturnType(rt)
	built, err := a.buildDispatcher(rt, shape)
	if err != nil {
		return nil, err
	}
	d, won := a.cache.insert(tc, built)
	if won {
		a.logger.Debug("dispatcher built",
			"type", reflectutils.TypeName(rt),
			"shape", shape.String(),
			"builds", a.cache.buildCount(),
		)
		if a.signals {
			emitDispatcherBuilt(inv.Context(), reflectutils.TypeName(rt), shape, a.cache.buildCount())
		}
	}
	return d, nil
}

// buildDispatcher compiles the dispatcher for one return shape.  The
// specialization cost is paid here, once per distinct return type; the
// returned dispatcher performs no type introspection of its own.
func (a *AsyncAdapter) buildDispatcher(rt reflect.Type, shape returnShape) (dispatcher, error) {
	switch shape {
	case shapeSynchronous:
		return a.wrapped.Intercept, nil

	case shapeCompletion:
		return func(inv Invocation) error {
			return a.dispatchCompletion(inv, heavyOutput)
		}, nil

	case shapeLightCompletion:
		return func(inv Invocation) error {
			return a.dispatchCompletion(inv, lightOutput)
		}, nil

	case shapeResult:
		// a typed nil probe of the declared type carries the
		// monomorphized retyping method for its result type
		probe, ok := reflect.Zero(rt).Interface().(await.AnyFuture)
		if !ok {
			return nil, configError(ErrUnknownShape,
				"%s classified as a value-carrying future but does not retype as one",
				reflectutils.TypeName(rt))
		}
		return func(inv Invocation) error {
			return a.dispatchResult(inv, probe)
		}, nil

	case shapeLightResult:
		probe, ok := reflect.Zero(rt).Interface().(await.AnyValueFuture)
		if !ok {
			return nil, configError(ErrUnknownShape,
				"%s classified as a value-carrying light future but does not retype as one",
				reflectutils.TypeName(rt))
		}
		return func(inv Invocation) error {
			return a.dispatchLightResult(inv, probe)
		}, nil

	default:
		// unreachable given the classifier's total fallback; silently
		// treating an async method as synchronous would corrupt the
		// return slot, so fail loudly instead
		return nil, configError(ErrUnknownShape,
			"return type %s classified as %q, which the dispatcher builder does not recognize",
			reflectutils.TypeName(rt), shape)
	}
}

// resultWeight tags which representation the declared return type expects.
type resultWeight int

const (
	heavyOutput resultWeight = iota
	lightOutput
)

// dispatchCompletion is the fixed routine for no-value asynchronous
// methods.
func (a *AsyncAdapter) dispatchCompletion(inv Invocation, weight resultWeight) error {
	vt := a.protectAsync(inv)
	if weight == heavyOutput {
		inv.SetReturnValue(vt.AsTask())
	} else {
		inv.SetReturnValue(vt)
	}
	return nil
}

// dispatchResult is the routine for value-returning asynchronous methods
// whose declared type is the heavy handle.  The probe retypes the erased
// result to the declared *Future[T].
func (a *AsyncAdapter) dispatchResult(inv Invocation, probe await.AnyFuture) error {
	vf := a.protectAsyncResult(inv)
	inv.SetReturnValue(probe.Retype(vf.AsFuture()))
	return nil
}

// dispatchLightResult is dispatchResult for light declared types.  The
// obtained light result is written back without a weight conversion.
func (a *AsyncAdapter) dispatchLightResult(inv Invocation, probe await.AnyValueFuture) error {
	vf := a.protectAsyncResult(inv)
	inv.SetReturnValue(probe.RetypeValue(vf))
	return nil
}

// protectAsync calls the wrapped interceptor's no-value asynchronous entry
// point.  A synchronous panic is converted into an already-failed pending
// result so that callers observe every failure through the handle they
// await, never as a direct failure of Intercept.
func (a *AsyncAdapter) protectAsync(inv Invocation) (vt await.ValueTask) {
	defer func() {
		if r := recover(); r != nil {
			err := await.Recovered(r)
			a.recordFault(inv, err)
			vt = await.FailedValueTask(err)
		}
	}()
	return a.wrapped.InterceptAsync(inv)
}

// protectAsyncResult is protectAsync for the value-carrying entry point.
func (a *AsyncAdapter) protectAsyncResult(inv Invocation) (vf await.ValueFuture[any]) {
	defer func() {
		if r := recover(); r != nil {
			err := await.Recovered(r)
			a.recordFault(inv, err)
			vf = await.FailedValueFuture[any](err)
		}
	}()
	return a.wrapped.InterceptAsyncResult(inv)
}

func (a *AsyncAdapter) recordFault(inv Invocation, err error) {
	a.logger.Debug("synchronous failure converted to failed pending result",
		"invocation_id", inv.ID(),
		"method", MethodName(inv),
		"error", err,
	)
	if a.signals {
		emitFaultConverted(inv.Context(), inv.ID(), err)
	}
}
