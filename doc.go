// Obligatory // comment

/*

Package interpose weaves cross-cutting behavior (logging, caching,
auditing, authorization) around method calls without modifying the object
being called.  A call is routed through a chain of interceptors before it
reaches the real implementation; each interceptor sees an Invocation
carrying the call's reflected signature, its arguments, and a mutable
return-value slot, and continues the chain with Proceed.

Synchronous interception is a single interface:

	chain := []interpose.Interceptor{audit, authorize}
	inv := interpose.NewInvocation(ctx, chain, callTarget,
		interpose.WithMethod(method))
	err := inv.Proceed()

Asynchronous interception

Methods that return a pending result (see the await subpackage) need
interception logic that continues the chain asynchronously instead of
blocking on it.  An interceptor author writes that logic against the
AsyncInterceptor capability, which has separate entry points for
synchronous methods, fire-and-forget asynchronous methods, and
asynchronous methods that return a value.

The call site, however, only ever invokes the single synchronous entry
point of the Interceptor interface.  AsyncAdapter bridges the two: it
classifies the intercepted method's declared return type into one of five
shapes, compiles a dispatcher specialized to that type, caches it, and on
every later call for the same return type routes directly to the right
entry point with no further type inspection.

	adapter := interpose.NewAsyncAdapter(myAsyncInterceptor)
	chain := []interpose.Interceptor{adapter} // usable like any interceptor

Failures inside an asynchronous entry point are always observable through
the returned pending result, even when they happen synchronously during
dispatch, so callers that await an intercepted method see failures through
one channel regardless of when they occurred.  Failures for synchronous
methods propagate as ordinary errors, untranslated.
*/
package interpose
