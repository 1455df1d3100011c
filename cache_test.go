package interpose

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interpose-go/interpose/await"
)

func TestInsertFirstWins(t *testing.T) {
	c := newDispatchCache()
	tc := getTypeCode(taskType)

	first := dispatcher(func(Invocation) error { return nil })
	second := dispatcher(func(Invocation) error { return nil })

	got, won := c.insert(tc, first)
	assert.True(t, won)
	assert.NotNil(t, got)

	got, won = c.insert(tc, second)
	assert.False(t, won, "a later duplicate build must lose the race")
	assert.Equal(t, 1, c.buildCount())
	assert.NotNil(t, got)
}

func TestConcurrentDuplicateBuildsCountOnce(t *testing.T) {
	adapter := NewAsyncAdapter(&counting{}, WithSignals(false))
	g := &greeter{}

	var wg sync.WaitGroup
	for n := 0; n < 50; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := invokeMethod(t, adapter, g, "Fetch", "x")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, adapter.DispatcherBuilds())
}

func TestConcurrentFirstUseAcrossShapes(t *testing.T) {
	ctx := context.Background()
	adapter := NewAsyncAdapter(&counting{}, WithSignals(false))
	g := &greeter{}

	// Greet(string), Ping(*Task), Fetch(*Future[string]), Count(*Future[int]),
	// Flush(ValueTask), Lookup(ValueFuture[int]): six distinct return types
	checks := []func(t *testing.T){
		func(t *testing.T) {
			inv, err := invokeMethod(t, adapter, g, "Greet", "world")
			require.NoError(t, err)
			assert.Equal(t, "hello, world", inv.ReturnValue())
		},
		func(t *testing.T) {
			inv, err := invokeMethod(t, adapter, g, "Ping")
			require.NoError(t, err)
			assert.NoError(t, inv.ReturnValue().(*await.Task).Wait(ctx))
		},
		func(t *testing.T) {
			inv, err := invokeMethod(t, adapter, g, "Fetch", "there")
			require.NoError(t, err)
			val, err := inv.ReturnValue().(*await.Future[string]).Wait(ctx)
			require.NoError(t, err)
			assert.Equal(t, "hello, there", val)
		},
		func(t *testing.T) {
			inv, err := invokeMethod(t, adapter, g, "Count")
			require.NoError(t, err)
			val, err := inv.ReturnValue().(*await.Future[int]).Wait(ctx)
			require.NoError(t, err)
			assert.Equal(t, 42, val)
		},
		func(t *testing.T) {
			inv, err := invokeMethod(t, adapter, g, "Flush")
			require.NoError(t, err)
			assert.NoError(t, inv.ReturnValue().(await.ValueTask).Wait(ctx))
		},
		func(t *testing.T) {
			inv, err := invokeMethod(t, adapter, g, "Lookup", 8)
			require.NoError(t, err)
			val, err := inv.ReturnValue().(await.ValueFuture[int]).Wait(ctx)
			require.NoError(t, err)
			assert.Equal(t, 16, val)
		},
	}

	var wg sync.WaitGroup
	for round := 0; round < 40; round++ {
		for i, check := range checks {
			wg.Add(1)
			go func(i int, check func(*testing.T)) {
				defer wg.Done()
				check(t)
			}(i, check)
		}
	}
	wg.Wait()

	assert.Equal(t, len(checks), adapter.DispatcherBuilds(),
		"exactly one dispatcher per distinct return type")
}
