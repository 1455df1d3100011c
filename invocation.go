package interpose

import (
	"context"
	"reflect"

	"github.com/google/uuid"

	"github.com/interpose-go/interpose/await"
)

// Invocation represents a single call in progress through an interceptor
// chain.  It exposes the call's reflected signature, its arguments, a
// mutable return-value slot, and the operations that continue the chain.
//
// The three method accessors form a fallback order from most to least
// concrete: TargetMethod is the method on the real implementation,
// ProxyMethod the method on the proxy type, and Method the call's own
// declared method.  Any of them may be absent.
type Invocation interface {
	// Context returns the context the call was made with.
	Context() context.Context

	// ID returns the invocation's correlation identifier.
	ID() string

	TargetMethod() (reflect.Method, bool)
	ProxyMethod() (reflect.Method, bool)
	Method() (reflect.Method, bool)

	// Args returns the call's arguments.  Interceptors may mutate the
	// slice contents.
	Args() []any

	// ReturnValue reads the return-value slot.
	ReturnValue() any

	// SetReturnValue writes the return-value slot.  It accepts any
	// pending-result handle or plain value.
	SetReturnValue(v any)

	// Proceed runs the rest of the chain synchronously: the next
	// interceptor if one remains, otherwise the terminal function.
	Proceed() error

	// ProceedAsync runs the rest of the chain and adapts whatever lands
	// in the return slot into a light no-value handle.  Failures are
	// reported through the handle, never as a direct error.
	ProceedAsync() await.ValueTask

	// ProceedAsyncResult is ProceedAsync for value-returning methods.
	// The handle carries the erased return value.
	ProceedAsyncResult() await.ValueFuture[any]
}

// Terminal is the function an invocation bottoms out in: the call to the
// real implementation.
type Terminal func(inv Invocation) error

type invocation struct {
	ctx      context.Context
	id       string
	target   reflect.Method
	hasTgt   bool
	proxy    reflect.Method
	hasProxy bool
	declared reflect.Method
	hasDecl  bool
	args     []any
	ret      any
	chain    []Interceptor
	index    int
	terminal Terminal
}

// InvocationOption adjusts a new invocation.
type InvocationOption func(*invocation)

// WithTargetMethod records the method on the real implementation.
func WithTargetMethod(m reflect.Method) InvocationOption {
	return func(inv *invocation) {
		inv.target = m
		inv.hasTgt = true
	}
}

// WithProxyMethod records the method on the proxy type.
func WithProxyMethod(m reflect.Method) InvocationOption {
	return func(inv *invocation) {
		inv.proxy = m
		inv.hasProxy = true
	}
}

// WithMethod records the call's own declared method.
func WithMethod(m reflect.Method) InvocationOption {
	return func(inv *invocation) {
		inv.declared = m
		inv.hasDecl = true
	}
}

// WithArgs records the call's arguments.
func WithArgs(args ...any) InvocationOption {
	return func(inv *invocation) {
		inv.args = args
	}
}

// NewInvocation builds the standard Invocation over an externally composed
// interceptor chain and a terminal function.  The chain is traversed in
// order; composition and ordering policy belong to the caller.
func NewInvocation(ctx context.Context, chain []Interceptor, terminal Terminal, opts ...InvocationOption) Invocation {
	if ctx == nil {
		ctx = context.Background()
	}
	inv := &invocation{
		ctx:      ctx,
		id:       uuid.NewString(),
		chain:    chain,
		terminal: terminal,
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

func (inv *invocation) Context() context.Context { return inv.ctx }
func (inv *invocation) ID() string               { return inv.id }

func (inv *invocation) TargetMethod() (reflect.Method, bool) { return inv.target, inv.hasTgt }
func (inv *invocation) ProxyMethod() (reflect.Method, bool)  { return inv.proxy, inv.hasProxy }
func (inv *invocation) Method() (reflect.Method, bool)       { return inv.declared, inv.hasDecl }

func (inv *invocation) Args() []any          { return inv.args }
func (inv *invocation) ReturnValue() any     { return inv.ret }
func (inv *invocation) SetReturnValue(v any) { inv.ret = v }

func (inv *invocation) Proceed() error {
	if inv.index < len(inv.chain) {
		next := inv.chain[inv.index]
		inv.index++
		return next.Intercept(inv)
	}
	if inv.terminal == nil {
		return configError(ErrChainExhausted,
			"invocation %s ran out of interceptors and has no terminal function", inv.id)
	}
	return inv.terminal(inv)
}

func (inv *invocation) ProceedAsync() await.ValueTask {
	if err := inv.Proceed(); err != nil {
		return await.FailedValueTask(err)
	}
	switch rv := inv.ret.(type) {
	case nil:
		return await.CompletedValueTask()
	case *await.Task:
		return await.TaskValue(rv)
	case await.ValueTask:
		return rv
	case await.AnyFuture:
		return discardResult(rv.Erased())
	case await.AnyValueFuture:
		return discardResult(rv.ErasedValue().AsFuture())
	default:
		// a synchronous return value: the call is already complete
		return await.CompletedValueTask()
	}
}

func (inv *invocation) ProceedAsyncResult() await.ValueFuture[any] {
	if err := inv.Proceed(); err != nil {
		return await.FailedValueFuture[any](err)
	}
	switch rv := inv.ret.(type) {
	case nil:
		return await.ResolvedValueFuture[any](nil)
	case await.AnyFuture:
		return await.FutureValue(rv.Erased())
	case await.AnyValueFuture:
		return rv.ErasedValue()
	case *await.Task:
		return completionAsResult(await.TaskValue(rv))
	case await.ValueTask:
		return completionAsResult(rv)
	default:
		// a synchronous return value passes through as an already
		// resolved result
		return await.ResolvedValueFuture[any](rv)
	}
}

// discardResult adapts a value-carrying pending result into a no-value one.
func discardResult(f *await.Future[any]) await.ValueTask {
	if f.Completed() {
		_, err := f.Value()
		if err != nil {
			return await.FailedValueTask(err)
		}
		return await.CompletedValueTask()
	}
	t := await.NewTask()
	go func() {
		<-f.Done()
		_, err := f.Value()
		t.Complete(err)
	}()
	return await.TaskValue(t)
}

// completionAsResult adapts a no-value pending result into a value-carrying
// one that resolves to nil.
func completionAsResult(vt await.ValueTask) await.ValueFuture[any] {
	if vt.Completed() {
		if err := vt.Err(); err != nil {
			return await.FailedValueFuture[any](err)
		}
		return await.ResolvedValueFuture[any](nil)
	}
	t := vt.AsTask()
	f := await.NewFuture[any]()
	go func() {
		<-t.Done()
		f.Complete(nil, t.Err())
	}()
	return await.FutureValue(f)
}

// MethodName reports the name of the method being invoked, resolved with
// the same fallback order as classification.  It returns "<unknown>" when
// the invocation carries no signature at all.
func MethodName(inv Invocation) string {
	if m, ok := inv.TargetMethod(); ok {
		return m.Name
	}
	if m, ok := inv.ProxyMethod(); ok {
		return m.Name
	}
	if m, ok := inv.Method(); ok {
		return m.Name
	}
	return "<unknown>"
}
