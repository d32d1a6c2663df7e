// Package tasks runs the network operations of a checkout flow off its control sequence
// and delivers their results back onto it.
package tasks

import (
	"context"
	"sync/atomic"
)

// Kind identifies one of the operations a checkout flow may have outstanding
type Kind int

const (
	// LoadValidator loads the input validation rules
	LoadValidator Kind = iota

	// LoadSession loads the list result and builds the session
	LoadSession

	// SubmitOperation posts an operation for the chosen card
	SubmitOperation
)

var kinds = [...]string{
	"validator",
	"session",
	"operation",
}

// String representation of `Kind`
func (k Kind) String() string {
	return kinds[k]
}

// Task is one started operation. Exactly one of its callbacks is delivered at most once.
type Task[T any] struct {
	kind      Kind
	cancel    context.CancelFunc
	finished  atomic.Bool
	onSuccess func(T)
	onFailure func(error)
}

// Kind returns the kind the task was started with
func (t *Task[T]) Kind() Kind {
	return t.kind
}

// Cancel discards the result of the task. The running operation is only asked to stop
// through its context.
func (t *Task[T]) Cancel() {
	t.finished.Store(true)
	t.cancel()
}

// Finished reports whether the task delivered its result or was cancelled
func (t *Task[T]) Finished() bool {
	return t.finished.Load()
}

// deliver hands the outcome to the matching callback, reporting false when it was
// already delivered or cancelled
func (t *Task[T]) deliver(value T, err error) bool {
	if !t.finished.CompareAndSwap(false, true) {
		return false
	}
	t.cancel()
	if err != nil {
		if t.onFailure != nil {
			t.onFailure(err)
		}
		return true
	}
	if t.onSuccess != nil {
		t.onSuccess(value)
	}
	return true
}
