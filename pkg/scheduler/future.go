package scheduler

import (
	"context"
	"sync"
)

// Future resolves once with the task's result. Stop cancels the task's
// context; the task still delivers a (cancelled) result.
type Future[T any] struct {
	input    chan T
	resolved bool
	value    T
	cancel   context.CancelFunc
	lock     sync.Mutex
	c        chan T
}

func NewFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	f := &Future[T]{
		input:  input,
		cancel: cancel,
		c:      make(chan T, 1),
	}

	go func() {
		v := <-f.input
		f.lock.Lock()
		f.value = v
		f.resolved = true
		f.lock.Unlock()

		f.cancel()
		f.c <- v
	}()

	return f
}

// C delivers the resolved value exactly once.
func (f *Future[T]) C() <-chan T {
	return f.c
}

// Poll returns the value if the future has resolved.
func (f *Future[T]) Poll() (value T, isResolved bool) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.resolved {
		return f.value, true
	}

	var none T
	return none, false
}

func (f *Future[T]) Stop() {
	f.cancel()
}
