package interpose

import "github.com/interpose-go/interpose/await"

// Interceptor processes a call before it reaches the real implementation.
// An interceptor must call inv.Proceed() to continue the chain unless it
// intends to short-circuit the call.
type Interceptor interface {
	Intercept(inv Invocation) error
}

// InterceptorFunc is a function adapter for Interceptor
type InterceptorFunc func(inv Invocation) error

// Intercept implements Interceptor
func (f InterceptorFunc) Intercept(inv Invocation) error {
	return f(inv)
}

// AsyncInterceptor is the capability an async-aware interceptor author
// implements.  All three entry points must be supplied; there is no
// built-in fallback from one to another.
//
// Intercept handles synchronous methods and must call inv.Proceed().
//
// InterceptAsync handles asynchronous methods with no return value and
// InterceptAsyncResult handles asynchronous methods that return a value.
// Both must continue the chain through the asynchronous continuation
// operations (inv.ProceedAsync / inv.ProceedAsyncResult), never through
// inv.Proceed directly, to avoid blocking on or double-invoking the rest
// of the chain.  They return the light representation; the adapter
// upgrades it to the heavy one when the intercepted method declares it.
//
// Every AsyncInterceptor satisfies Interceptor, but inserting one into a
// chain directly would route asynchronous methods through the synchronous
// entry point.  Wrap it in an AsyncAdapter instead.
type AsyncInterceptor interface {
	Intercept(inv Invocation) error
	InterceptAsync(inv Invocation) await.ValueTask
	InterceptAsyncResult(inv Invocation) await.ValueFuture[any]
}
