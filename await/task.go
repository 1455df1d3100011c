package await

import (
	"context"
	"sync"
)

// core holds the erased completion state shared by every handle that refers
// to the same computation.  Retyping a handle (Future[T] <-> Future[any])
// copies the pointer, never the state.
type core struct {
	done chan struct{}
	mu   sync.Mutex
	set  bool
	val  any
	err  error
}

func newCore() *core {
	return &core{done: make(chan struct{})}
}

func completedCore(val any, err error) *core {
	c := &core{done: make(chan struct{}), set: true, val: val, err: err}
	close(c.done)
	return c
}

// complete records the outcome.  First write wins.
func (c *core) complete(val any, err error) bool {
	c.mu.Lock()
	if c.set {
		c.mu.Unlock()
		return false
	}
	c.set = true
	c.val = val
	c.err = err
	c.mu.Unlock()
	close(c.done)
	return true
}

func (c *core) completed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

func (c *core) wait(ctx context.Context) (any, error) {
	select {
	case <-c.done:
		return c.val, c.err
	default:
	}
	select {
	case <-c.done:
		return c.val, c.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Task is the heavy no-value handle: an independently allocated completion
// that may finish later, successfully or with an error.
type Task struct {
	c *core
}

// NewTask returns a pending Task.  Complete it exactly once.
func NewTask() *Task {
	return &Task{c: newCore()}
}

// CompletedTask returns a Task that already finished successfully.
func CompletedTask() *Task {
	return &Task{c: completedCore(nil, nil)}
}

// FailedTask returns a Task that already finished with err.
func FailedTask(err error) *Task {
	return &Task{c: completedCore(nil, err)}
}

// Go runs fn in a new goroutine and returns a Task that completes with its
// result.  A panic in fn fails the Task instead of crashing the process.
func Go(fn func() error) *Task {
	t := NewTask()
	go func() {
		defer func() {
			if r := recover(); r != nil {
				t.Complete(Recovered(r))
			}
		}()
		t.Complete(fn())
	}()
	return t
}

// Complete records the outcome.  It reports false if the Task was already
// complete, in which case the earlier outcome stands.
func (t *Task) Complete(err error) bool {
	return t.c.complete(nil, err)
}

// Done is closed once the Task completes.
func (t *Task) Done() <-chan struct{} {
	return t.c.done
}

// Completed reports whether the Task has finished.
func (t *Task) Completed() bool {
	return t.c.completed()
}

// Err returns the Task's outcome.  It is only meaningful once Done is
// closed; before that it returns nil.
func (t *Task) Err() error {
	if !t.c.completed() {
		return nil
	}
	return t.c.err
}

// Wait blocks until the Task completes or ctx is cancelled.
func (t *Task) Wait(ctx context.Context) error {
	_, err := t.c.wait(ctx)
	return err
}
