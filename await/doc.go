// Package await provides the pending-result handles used by interpose to
// represent asynchronous method results.
//
// There are two families of handle.  The heavy handles, Task and Future[T],
// are always independently allocated and can be completed after they have
// been handed out.  The light handles, ValueTask and ValueFuture[T], are
// plain values that carry their outcome inline when the computation finished
// before the handle was created and only point at a heavy handle when the
// computation is genuinely still pending.  A light handle converts losslessly
// to its heavy counterpart with AsTask or AsFuture.
//
// A handle completes exactly once, either successfully or with an error.
// Waiting on a handle takes a context.Context; cancellation of the context
// abandons the wait, it does not cancel the underlying computation.
package await
