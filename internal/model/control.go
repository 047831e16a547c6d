package model

import "sync"

// Control is the per-item pause/cancel gate shared between the control
// surface and the download worker. Pause blocks the worker on a condition
// variable until resumed or cancelled; cancellation closes a channel so the
// worker's context can be torn down without polling.
type Control struct {
	mu        sync.Mutex
	cond      *sync.Cond
	paused    bool
	cancelled bool
	done      chan struct{}
}

// NewControl creates a control gate in the running (not paused) state
func NewControl() *Control {
	c := &Control{done: make(chan struct{})}
	c.cond = sync.NewCond(&c.mu)
	return c
}

// Pause requests the worker to block at its next checkpoint. There is no
// acknowledgement: the worker observes the pause on its next progress event.
func (c *Control) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

// Resume releases a paused worker
func (c *Control) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
	c.cond.Broadcast()
}

// Cancel signals the worker to abort. It also wakes a worker blocked in
// AwaitResume so a paused item can still be cancelled.
func (c *Control) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.cancelled {
		c.cancelled = true
		close(c.done)
	}
	c.cond.Broadcast()
}

// Paused reports whether a pause has been requested
func (c *Control) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused
}

// Cancelled reports whether the item has been cancelled
func (c *Control) Cancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

// Done returns a channel that is closed when the item is cancelled
func (c *Control) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

// AwaitResume blocks while the item is paused and returns true if the item
// was cancelled before or while waiting. It is called from the download
// worker, never from the UI thread.
func (c *Control) AwaitResume() (cancelled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.paused && !c.cancelled {
		c.cond.Wait()
	}
	return c.cancelled
}

// Reset returns the gate to its initial state. Only the download loop calls
// this, right before it starts working on the item.
func (c *Control) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
	if c.cancelled {
		c.cancelled = false
		c.done = make(chan struct{})
	}
}
