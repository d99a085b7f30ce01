// Package synctok provides one-shot tokens for coordinating with a running
// task: a cancellation pair that lets a controller abandon a task's pending
// waits, and a completion pair that lets a task announce, exactly once, that
// it has reached a milestone, carrying a result value.
package synctok

import "sync"

// A Latch is a one-shot condition shared by multiple goroutines, carrying a
// value of type T. A latch begins pending and fires at most once; once fired
// it never reverts, and its value never changes.
//
// Waiters may select on the channel from the Ready method, which is closed
// when the latch fires, or call Poll with a resume callback to be invoked on
// firing. The cancellation and completion pairs in this package are views of
// a shared Latch.
//
// A zero Latch is ready for use, but must not be copied after first use.
type Latch[T any] struct {
	μ      sync.Mutex
	fired  bool
	value  T             // valid only once fired is true
	resume func()        // at most one pending resume callback
	ready  chan struct{} // lazily initialized by the first waiter
}

// NewLatch constructs a new pending Latch.
func NewLatch[T any]() *Latch[T] { return new(Latch[T]) }

// Fire fires the latch with value v, wakes any waiters, and reports whether
// this call is the one that fired it. If the latch had already fired, Fire
// reports false and has no other effect; in particular the stored value is
// not replaced.
func (l *Latch[T]) Fire(v T) bool {
	l.μ.Lock()
	if l.fired {
		l.μ.Unlock()
		return false
	}
	l.fired = true
	l.value = v
	resume, ready := l.resume, l.ready
	l.resume = nil
	l.μ.Unlock()

	// Wake waiters after releasing the lock, so a resume callback may safely
	// re-enter the latch.
	if ready != nil {
		close(ready)
	}
	if resume != nil {
		resume()
	}
	return true
}

// Poll reports whether the latch has fired, returning its value if so.
// Otherwise Poll registers resume, which will be called exactly once when the
// latch fires, and returns a zero value.
//
// At most one resume callback is retained: a later Poll replaces the callback
// stored by an earlier one, and the earlier caller is not woken. Multiple
// concurrent waiters should share the channel from Ready instead.
func (l *Latch[T]) Poll(resume func()) (T, bool) {
	l.μ.Lock()
	defer l.μ.Unlock()
	if l.fired {
		return l.value, true
	}
	l.resume = resume
	var zero T
	return zero, false
}

// Get reports whether the latch has fired, returning its value if so. Unlike
// Poll, Get never registers or disturbs a resume callback.
func (l *Latch[T]) Get() (T, bool) {
	l.μ.Lock()
	defer l.μ.Unlock()
	if l.fired {
		return l.value, true
	}
	var zero T
	return zero, false
}

// Fired reports whether the latch has fired.
func (l *Latch[T]) Fired() bool {
	l.μ.Lock()
	defer l.μ.Unlock()
	return l.fired
}

// Ready returns a channel that is closed when the latch fires. If the latch
// has already fired, the returned channel is already closed. All callers
// share a single channel, so any number of goroutines may wait concurrently.
func (l *Latch[T]) Ready() <-chan struct{} {
	l.μ.Lock()
	defer l.μ.Unlock()
	if l.ready == nil {
		l.ready = make(chan struct{})
		if l.fired {
			close(l.ready)
		}
	}
	return l.ready
}
