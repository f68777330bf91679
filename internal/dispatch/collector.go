package dispatch

import (
	"context"
	"sync"

	"github.com/solo-ai/solo/internal/model"
)

// Collector is a shared ReplyChannel that many invocations reply on. Each
// waiter receives only the reply whose ID it asked for, regardless of the
// order in which replies arrive.
type Collector struct {
	mu        sync.Mutex
	pending   map[string]model.Reply
	waiters   map[string]chan model.Reply
	abandoned map[string]struct{}
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{
		pending:   make(map[string]model.Reply),
		waiters:   make(map[string]chan model.Reply),
		abandoned: make(map[string]struct{}),
	}
}

// Send routes r to the waiter for r.ID, or holds it until one arrives.
// Replies for abandoned invocations are dropped.
func (c *Collector) Send(r model.Reply) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.abandoned[r.ID]; ok {
		delete(c.abandoned, r.ID)
		return
	}
	if ch, ok := c.waiters[r.ID]; ok {
		delete(c.waiters, r.ID)
		ch <- r
		return
	}
	c.pending[r.ID] = r
}

// Wait blocks until the reply for id arrives or ctx is done. When ctx ends
// first the invocation is abandoned and its late reply discarded.
func (c *Collector) Wait(ctx context.Context, id string) (model.Reply, error) {
	c.mu.Lock()
	if r, ok := c.pending[id]; ok {
		delete(c.pending, id)
		c.mu.Unlock()
		return r, nil
	}
	ch := make(chan model.Reply, 1)
	c.waiters[id] = ch
	c.mu.Unlock()

	select {
	case r := <-ch:
		return r, nil
	case <-ctx.Done():
		c.mu.Lock()
		defer c.mu.Unlock()
		// The reply may have been delivered while we were acquiring the lock.
		select {
		case r := <-ch:
			return r, nil
		default:
		}
		delete(c.waiters, id)
		c.abandoned[id] = struct{}{}
		return model.Reply{}, ctx.Err()
	}
}

// Pending returns the number of replies not yet claimed.
func (c *Collector) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}
