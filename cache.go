package interpose

import (
	"sync"
	"sync/atomic"
)

// dispatcher is a compiled, return-shape-specific callable.  Once built it
// performs the correct interception routine for its return type with no
// further type inspection.
type dispatcher func(inv Invocation) error

// dispatchCache maps a return type's code to its compiled dispatcher.
// Entries are built at most once per return type per adapter; concurrent
// misses for the same code may both build, but only the first insert wins
// and duplicate builds are pure, wasted work.
type dispatchCache struct {
	lock        sync.RWMutex
	dispatchers map[typeCode]dispatcher
	builds      int32
}

func newDispatchCache() *dispatchCache {
	return &dispatchCache{
		dispatchers: make(map[typeCode]dispatcher),
	}
}

func (c *dispatchCache) lookup(tc typeCode) (dispatcher, bool) {
	c.lock.RLock()
	d, ok := c.dispatchers[tc]
	c.lock.RUnlock()
	return d, ok
}

// insert stores d unless another build got there first, and returns the
// dispatcher that is actually cached.  It reports whether d won.
func (c *dispatchCache) insert(tc typeCode, d dispatcher) (dispatcher, bool) {
	c.lock.Lock()
	if existing, ok := c.dispatchers[tc]; ok {
		c.lock.Unlock()
		return existing, false
	}
	c.dispatchers[tc] = d
	c.lock.Unlock()
	atomic.AddInt32(&c.builds, 1)
	return d, true
}

func (c *dispatchCache) buildCount() int {
	return int(atomic.LoadInt32(&c.builds))
}
