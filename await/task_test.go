package await

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errFailed = errors.New("failed")

func TestTaskCompleteOnce(t *testing.T) {
	task := NewTask()
	assert.False(t, task.Completed())
	assert.Nil(t, task.Err())

	assert.True(t, task.Complete(errFailed))
	assert.False(t, task.Complete(nil), "second completion must lose")

	assert.True(t, task.Completed())
	assert.ErrorIs(t, task.Err(), errFailed)
	assert.ErrorIs(t, task.Wait(context.Background()), errFailed)
}

func TestCompletedAndFailedTasks(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, CompletedTask().Wait(ctx))
	assert.ErrorIs(t, FailedTask(errFailed).Wait(ctx), errFailed)
}

func TestTaskWaitHonorsContext(t *testing.T) {
	task := NewTask()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := task.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// the task itself is unaffected by the abandoned wait
	task.Complete(nil)
	assert.NoError(t, task.Wait(context.Background()))
}

func TestGoCompletesTask(t *testing.T) {
	done := make(chan struct{})
	task := Go(func() error {
		<-done
		return errFailed
	})
	assert.False(t, task.Completed())
	close(done)
	assert.ErrorIs(t, task.Wait(context.Background()), errFailed)
}

func TestGoRecoversPanics(t *testing.T) {
	task := Go(func() error {
		panic("blew up")
	})
	err := task.Wait(context.Background())
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "blew up", pe.Value)
}

func TestRecoveredPreservesErrors(t *testing.T) {
	assert.ErrorIs(t, Recovered(errFailed), errFailed)

	err := Recovered(42)
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 42, pe.Value)
}

func TestValueTaskZeroValueIsCompleted(t *testing.T) {
	var vt ValueTask
	assert.True(t, vt.Completed())
	assert.NoError(t, vt.Wait(context.Background()))
}

func TestValueTaskInlineOutcome(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, CompletedValueTask().Wait(ctx))
	assert.ErrorIs(t, FailedValueTask(errFailed).Wait(ctx), errFailed)
	assert.ErrorIs(t, FailedValueTask(errFailed).Err(), errFailed)
}

func TestTaskValueCollapsesCompletedTasks(t *testing.T) {
	vt := TaskValue(FailedTask(errFailed))
	assert.True(t, vt.Completed())
	assert.ErrorIs(t, vt.Err(), errFailed)

	pending := NewTask()
	vt = TaskValue(pending)
	assert.False(t, vt.Completed())
	pending.Complete(nil)
	assert.NoError(t, vt.Wait(context.Background()))
}

func TestValueTaskAsTaskIsLossless(t *testing.T) {
	ctx := context.Background()

	assert.NoError(t, CompletedValueTask().AsTask().Wait(ctx))
	assert.ErrorIs(t, FailedValueTask(errFailed).AsTask().Wait(ctx), errFailed)

	pending := NewTask()
	heavy := TaskValue(pending).AsTask()
	assert.Same(t, pending, heavy, "a pending light handle keeps its heavy task")
}
