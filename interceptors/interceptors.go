// Package interceptors provides stock async-capable interceptors for the
// common cross-cutting concerns.
package interceptors

import (
	"log/slog"
	"sync"
	"time"

	"github.com/interpose-go/interpose"
	"github.com/interpose-go/interpose/await"
)

// Logging logs every intercepted call with its invocation ID, method name,
// duration, and outcome.
type Logging struct {
	logger *slog.Logger
}

// NewLogging creates a new logging interceptor
func NewLogging(logger *slog.Logger) *Logging {
	if logger == nil {
		logger = slog.Default()
	}
	return &Logging{logger: logger}
}

// Intercept implements the synchronous entry point
func (i *Logging) Intercept(inv interpose.Invocation) error {
	start := time.Now()
	err := inv.Proceed()
	i.log(inv, time.Since(start), err)
	return err
}

// InterceptAsync implements the no-value asynchronous entry point
func (i *Logging) InterceptAsync(inv interpose.Invocation) await.ValueTask {
	start := time.Now()
	vt := inv.ProceedAsync()
	if vt.Completed() {
		i.log(inv, time.Since(start), vt.Err())
		return vt
	}
	return await.TaskValue(await.Go(func() error {
		err := vt.Wait(inv.Context())
		i.log(inv, time.Since(start), err)
		return err
	}))
}

// InterceptAsyncResult implements the value-carrying asynchronous entry point
func (i *Logging) InterceptAsyncResult(inv interpose.Invocation) await.ValueFuture[any] {
	start := time.Now()
	vf := inv.ProceedAsyncResult()
	if vf.Completed() {
		_, err := vf.Value()
		i.log(inv, time.Since(start), err)
		return vf
	}
	return await.FutureValue(await.GoFuture(func() (any, error) {
		val, err := vf.Wait(inv.Context())
		i.log(inv, time.Since(start), err)
		return val, err
	}))
}

func (i *Logging) log(inv interpose.Invocation, duration time.Duration, err error) {
	if err != nil {
		i.logger.Error("call failed",
			"invocation_id", inv.ID(),
			"method", interpose.MethodName(inv),
			"duration", duration,
			"error", err,
		)
		return
	}
	i.logger.Info("call completed",
		"invocation_id", inv.ID(),
		"method", interpose.MethodName(inv),
		"duration", duration,
	)
}

// Collector receives measurements from a Metrics interceptor.
type Collector interface {
	IncrementInvocation(method string)
	IncrementFailure(method string)
	RecordDuration(method string, d time.Duration)
}

// Metrics counts invocations, failures, and latency per method.
type Metrics struct {
	collector Collector
}

// NewMetrics creates a new metrics interceptor
func NewMetrics(collector Collector) *Metrics {
	return &Metrics{collector: collector}
}

// Intercept implements the synchronous entry point
func (i *Metrics) Intercept(inv interpose.Invocation) error {
	start := time.Now()
	method := interpose.MethodName(inv)
	i.collector.IncrementInvocation(method)
	err := inv.Proceed()
	i.record(method, time.Since(start), err)
	return err
}

// InterceptAsync implements the no-value asynchronous entry point
func (i *Metrics) InterceptAsync(inv interpose.Invocation) await.ValueTask {
	start := time.Now()
	method := interpose.MethodName(inv)
	i.collector.IncrementInvocation(method)
	vt := inv.ProceedAsync()
	if vt.Completed() {
		i.record(method, time.Since(start), vt.Err())
		return vt
	}
	return await.TaskValue(await.Go(func() error {
		err := vt.Wait(inv.Context())
		i.record(method, time.Since(start), err)
		return err
	}))
}

// InterceptAsyncResult implements the value-carrying asynchronous entry point
func (i *Metrics) InterceptAsyncResult(inv interpose.Invocation) await.ValueFuture[any] {
	start := time.Now()
	method := interpose.MethodName(inv)
	i.collector.IncrementInvocation(method)
	vf := inv.ProceedAsyncResult()
	if vf.Completed() {
		_, err := vf.Value()
		i.record(method, time.Since(start), err)
		return vf
	}
	return await.FutureValue(await.GoFuture(func() (any, error) {
		val, err := vf.Wait(inv.Context())
		i.record(method, time.Since(start), err)
		return val, err
	}))
}

func (i *Metrics) record(method string, duration time.Duration, err error) {
	i.collector.RecordDuration(method, duration)
	if err != nil {
		i.collector.IncrementFailure(method)
	}
}

// MemoryCollector is a Collector that aggregates in memory.  It is safe
// for concurrent use.
type MemoryCollector struct {
	mu          sync.Mutex
	invocations map[string]int
	failures    map[string]int
	durations   map[string]time.Duration
}

// NewMemoryCollector creates an empty MemoryCollector
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{
		invocations: make(map[string]int),
		failures:    make(map[string]int),
		durations:   make(map[string]time.Duration),
	}
}

// IncrementInvocation implements Collector
func (c *MemoryCollector) IncrementInvocation(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invocations[method]++
}

// IncrementFailure implements Collector
func (c *MemoryCollector) IncrementFailure(method string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[method]++
}

// RecordDuration implements Collector
func (c *MemoryCollector) RecordDuration(method string, d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.durations[method] += d
}

// Invocations reports the number of invocations recorded for method.
func (c *MemoryCollector) Invocations(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invocations[method]
}

// Failures reports the number of failures recorded for method.
func (c *MemoryCollector) Failures(method string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failures[method]
}
