package synctok

// NewCancel creates a connected cancellation pair. The Canceler is held by
// whoever may request cancellation; the Cancelable is held by the task whose
// waits can be abandoned. Both handles may be freely shared and copied, and
// every copy observes the same underlying latch.
func NewCancel() (*Canceler, *Cancelable) {
	latch := NewLatch[struct{}]()
	return &Canceler{latch: latch}, &Cancelable{latch: latch}
}

// A Canceler cancels the operations guarded by its paired Cancelable.
type Canceler struct {
	latch *Latch[struct{}]
}

// Cancel signals cancellation. It is safe to call Cancel any number of times
// from any number of goroutines; calls after the first have no effect.
func (c *Canceler) Cancel() { c.latch.Fire(struct{}{}) }

// A Cancelable observes the cancellation signalled by its paired Canceler.
type Cancelable struct {
	latch *Latch[struct{}]
}

// Cancelled reports whether the paired Canceler has cancelled.
func (c *Cancelable) Cancelled() bool { return c.latch.Fired() }

// Ready returns a channel that is closed once the paired Canceler cancels,
// for use in select. If cancellation has already been signalled, the
// returned channel is already closed.
func (c *Cancelable) Ready() <-chan struct{} { return c.latch.Ready() }

// Race runs op and waits for its result or for c to be cancelled, whichever
// comes first. If op finishes first, Race returns its result. If
// cancellation wins, or c was already cancelled when Race was called, Race
// returns fallback; in the already-cancelled case op is never called at all.
//
// Cancellation is advisory: an op that loses the race is abandoned, not
// stopped. Its goroutine runs to completion unobserved, and its result is
// discarded. An op that must stop early should watch c.Ready itself.
//
// Errors from a fallible op are not interpreted here; make T a result struct
// or close over an error variable, and choose a fallback accordingly.
func Race[T any](c *Cancelable, op func() T, fallback T) T {
	if c.Cancelled() {
		return fallback
	}

	// The buffer lets an abandoned op deliver its result and exit.
	out := make(chan T, 1)
	go func() { out <- op() }()

	select {
	case v := <-out:
		return v
	case <-c.Ready():
		return fallback
	}
}
