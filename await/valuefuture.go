package await

import (
	"context"
	"reflect"
)

// ValueFuture is the light value-carrying handle.  The zero value is a
// completed ValueFuture holding T's zero value; completed outcomes are
// carried inline and only a genuinely pending computation references a
// heavy Future.
type ValueFuture[T any] struct {
	val T
	err error
	fut *Future[T]
}

// ResolvedValueFuture returns a completed ValueFuture holding val.
func ResolvedValueFuture[T any](val T) ValueFuture[T] {
	return ValueFuture[T]{val: val}
}

// FailedValueFuture returns a ValueFuture that already failed with err.
func FailedValueFuture[T any](err error) ValueFuture[T] {
	return ValueFuture[T]{err: err}
}

// FutureValue wraps a heavy Future in the light representation.  A Future
// that already completed collapses to an inline outcome.
func FutureValue[T any](f *Future[T]) ValueFuture[T] {
	if f.Completed() {
		val, err := f.Value()
		return ValueFuture[T]{val: val, err: err}
	}
	return ValueFuture[T]{fut: f}
}

// Completed reports whether the outcome is available.
func (v ValueFuture[T]) Completed() bool {
	return v.fut == nil || v.fut.Completed()
}

// Value returns the outcome.  It is only meaningful once Completed reports
// true.
func (v ValueFuture[T]) Value() (T, error) {
	if v.fut != nil {
		return v.fut.Value()
	}
	return v.val, v.err
}

// Wait blocks until the outcome is available or ctx is cancelled.
func (v ValueFuture[T]) Wait(ctx context.Context) (T, error) {
	if v.fut != nil {
		return v.fut.Wait(ctx)
	}
	return v.val, v.err
}

// AsFuture converts to the heavy representation.  The conversion is
// lossless: the returned Future reports exactly this ValueFuture's outcome.
func (v ValueFuture[T]) AsFuture() *Future[T] {
	if v.fut != nil {
		return v.fut
	}
	if v.err != nil {
		return FailedFuture[T](v.err)
	}
	return ResolvedFuture(v.val)
}

// ResultType reports T.  Safe on a zero value.
func (ValueFuture[T]) ResultType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// ErasedValue returns the untyped view of the same pending result.
func (v ValueFuture[T]) ErasedValue() ValueFuture[any] {
	if v.fut != nil {
		return ValueFuture[any]{fut: v.fut.Erased()}
	}
	if v.err != nil {
		return ValueFuture[any]{err: v.err}
	}
	return ValueFuture[any]{val: v.val}
}

// RetypeValue returns a ValueFuture[T] holding src's pending result.  Safe
// on a zero value; the receiver only selects T.  A completed src whose
// value is not a T becomes a failed ValueFuture carrying a
// ResultTypeError.
func (ValueFuture[T]) RetypeValue(src ValueFuture[any]) AnyValueFuture {
	if src.fut != nil {
		return ValueFuture[T]{fut: &Future[T]{c: src.fut.c}}
	}
	if src.err != nil {
		return ValueFuture[T]{err: src.err}
	}
	val, err := assertResult[T](src.val, nil)
	return ValueFuture[T]{val: val, err: err}
}

// AnyValueFuture is implemented by ValueFuture[T] for every T.  It is the
// light-handle counterpart of AnyFuture.
type AnyValueFuture interface {
	ResultType() reflect.Type
	ErasedValue() ValueFuture[any]
	RetypeValue(src ValueFuture[any]) AnyValueFuture
}
