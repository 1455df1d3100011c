package await

import "context"

// ValueTask is the light no-value handle.  The zero value is a completed,
// successful ValueTask; a failed outcome is carried inline.  Only a
// genuinely pending computation references a heavy Task.
type ValueTask struct {
	err  error
	task *Task
}

// CompletedValueTask returns a completed, successful ValueTask.
func CompletedValueTask() ValueTask {
	return ValueTask{}
}

// FailedValueTask returns a ValueTask that already failed with err.
func FailedValueTask(err error) ValueTask {
	return ValueTask{err: err}
}

// TaskValue wraps a heavy Task in the light representation.  A Task that
// already completed collapses to an inline outcome.
func TaskValue(t *Task) ValueTask {
	if t.Completed() {
		return ValueTask{err: t.Err()}
	}
	return ValueTask{task: t}
}

// Completed reports whether the outcome is available.
func (v ValueTask) Completed() bool {
	return v.task == nil || v.task.Completed()
}

// Err returns the outcome.  It is only meaningful once Completed reports
// true; before that it returns nil.
func (v ValueTask) Err() error {
	if v.task != nil {
		return v.task.Err()
	}
	return v.err
}

// Wait blocks until the outcome is available or ctx is cancelled.
func (v ValueTask) Wait(ctx context.Context) error {
	if v.task != nil {
		return v.task.Wait(ctx)
	}
	return v.err
}

// AsTask converts to the heavy representation.  The conversion is lossless:
// the returned Task reports exactly this ValueTask's outcome.
func (v ValueTask) AsTask() *Task {
	if v.task != nil {
		return v.task
	}
	if v.err != nil {
		return FailedTask(v.err)
	}
	return CompletedTask()
}
