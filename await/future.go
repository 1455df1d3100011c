package await

import (
	"context"
	"reflect"
)

// Future is the heavy value-carrying handle: an independently allocated
// pending result of type T.
//
// Every Future[T] shares an erased core, so converting between Future[T]
// and Future[any] costs one allocation and never loses the outcome.
type Future[T any] struct {
	c *core
}

// NewFuture returns a pending Future.  Complete it exactly once.
func NewFuture[T any]() *Future[T] {
	return &Future[T]{c: newCore()}
}

// ResolvedFuture returns a Future that already finished with val.
func ResolvedFuture[T any](val T) *Future[T] {
	return &Future[T]{c: completedCore(val, nil)}
}

// FailedFuture returns a Future that already finished with err.
func FailedFuture[T any](err error) *Future[T] {
	return &Future[T]{c: completedCore(nil, err)}
}

// GoFuture runs fn in a new goroutine and returns a Future that completes
// with its result.  A panic in fn fails the Future.
func GoFuture[T any](fn func() (T, error)) *Future[T] {
	f := NewFuture[T]()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				f.Complete(zero, Recovered(r))
			}
		}()
		f.Complete(fn())
	}()
	return f
}

// Complete records the outcome.  It reports false if the Future was already
// complete, in which case the earlier outcome stands.
func (f *Future[T]) Complete(val T, err error) bool {
	if err != nil {
		return f.c.complete(nil, err)
	}
	return f.c.complete(val, nil)
}

// Done is closed once the Future completes.
func (f *Future[T]) Done() <-chan struct{} {
	return f.c.done
}

// Completed reports whether the Future has finished.
func (f *Future[T]) Completed() bool {
	return f.c.completed()
}

// Value returns the outcome.  It is only meaningful once Done is closed;
// before that it returns the zero value and nil.
func (f *Future[T]) Value() (T, error) {
	var zero T
	if !f.c.completed() {
		return zero, nil
	}
	return assertResult[T](f.c.val, f.c.err)
}

// Wait blocks until the Future completes or ctx is cancelled.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	val, err := f.c.wait(ctx)
	return assertResult[T](val, err)
}

// Erased returns the untyped view of the same pending result.
func (f *Future[T]) Erased() *Future[any] {
	return &Future[any]{c: f.c}
}

// ResultType reports T.  Safe on a nil receiver.
func (*Future[T]) ResultType() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Retype returns a Future[T] sharing src's pending result.  Safe on a nil
// receiver; the receiver only selects T.
func (*Future[T]) Retype(src *Future[any]) AnyFuture {
	return &Future[T]{c: src.c}
}

// AnyFuture is implemented by *Future[T] for every T.  It lets code that
// discovers a Future type at runtime erase it, recover T, or rebuild a
// correctly typed Future from an erased one without knowing T statically.
type AnyFuture interface {
	Erased() *Future[any]
	ResultType() reflect.Type
	Retype(src *Future[any]) AnyFuture
}

func assertResult[T any](val any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if val == nil {
		return zero, nil
	}
	t, ok := val.(T)
	if !ok {
		return zero, &ResultTypeError{Want: reflect.TypeOf((*T)(nil)).Elem(), Got: val}
	}
	return t, nil
}
