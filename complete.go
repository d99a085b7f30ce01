package synctok

import (
	"context"
	"errors"
	"fmt"
)

// ErrCompleted is the sentinel error carried by the panic raised when
// Complete is called more than once on the same pair.
var ErrCompleted = errors.New("already completed")

// NewCompletion creates a connected completion pair carrying a value of type
// T. The Completer is held by the task that will announce completion; the
// Completion is held by whoever waits for it.
//
// A Completion may be freely shared and copied, and every copy observes the
// same completed value. A Completer is intended to have a single owner,
// since Complete may be called only once.
func NewCompletion[T any]() (*Completion[T], *Completer[T]) {
	latch := NewLatch[T]()
	return &Completion[T]{latch: latch}, &Completer[T]{latch: latch}
}

// A Completer resolves its paired Completion with a value, exactly once.
type Completer[T any] struct {
	latch *Latch[T]
}

// Complete resolves the pair with v and wakes any waiters. Calling Complete
// a second time is a contract violation by the caller: it panics with an
// error wrapping ErrCompleted, and the value from the first call is
// unaffected by the failed attempt.
func (c *Completer[T]) Complete(v T) {
	if !c.latch.Fire(v) {
		panic(fmt.Errorf("complete: %w", ErrCompleted))
	}
}

// A Completion reports the value resolved by its paired Completer.
type Completion[T any] struct {
	latch *Latch[T]
}

// Get reports whether the pair has been completed, returning the completed
// value if so. The value is retained, not consumed: Get may be called any
// number of times on any number of handles, and all observe the same value.
func (c *Completion[T]) Get() (T, bool) { return c.latch.Get() }

// Ready returns a channel that is closed once the pair is completed, for use
// in select. Call Get to retrieve the value after the channel closes.
func (c *Completion[T]) Ready() <-chan struct{} { return c.latch.Ready() }

// Wait blocks until the pair is completed or ctx ends, and returns the
// completed value. If the pair is already completed, Wait returns its value
// immediately. If ctx ends first, Wait returns a zero value and the error
// that ended ctx.
func (c *Completion[T]) Wait(ctx context.Context) (T, error) {
	if v, ok := c.latch.Get(); ok {
		return v, nil
	}
	select {
	case <-c.latch.Ready():
		v, _ := c.latch.Get()
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
