package tasks

import (
	"context"
	"sync"

	"github.com/companieshouse/chs.go/log"
	"golang.org/x/sync/semaphore"
)

// Executor runs operations away from the control sequence
type Executor interface {
	Execute(fn func())
}

// Dispatcher runs callbacks on the control sequence, one at a time and in order
type Dispatcher interface {
	Dispatch(fn func())
}

// Inline runs everything on the calling goroutine. It serves as both Executor and
// Dispatcher when a flow has to be driven deterministically.
type Inline struct{}

// Execute runs fn before returning
func (Inline) Execute(fn func()) { fn() }

// Dispatch runs fn before returning
func (Inline) Dispatch(fn func()) { fn() }

// PoolExecutor runs operations on goroutines, at most workers of them at a time
type PoolExecutor struct {
	sem *semaphore.Weighted
}

// NewPoolExecutor returns a pool executor allowing workers concurrent operations
func NewPoolExecutor(workers int) *PoolExecutor {
	if workers < 1 {
		workers = 1
	}
	return &PoolExecutor{sem: semaphore.NewWeighted(int64(workers))}
}

// Execute runs fn on a new goroutine once a worker is free. It never blocks the caller.
func (p *PoolExecutor) Execute(fn func()) {
	go func() {
		if err := p.sem.Acquire(context.Background(), 1); err != nil {
			log.Error(err, log.Data{"message": "error acquiring worker"})
			return
		}
		defer p.sem.Release(1)
		fn()
	}()
}

// Loop is a control sequence: a single goroutine running dispatched callbacks in order
type Loop struct {
	queue   chan func()
	done    chan struct{}
	closing sync.Once
}

// NewLoop starts a loop buffering up to size pending callbacks
func NewLoop(size int) *Loop {
	l := &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.queue:
			fn()
		case <-l.done:
			return
		}
	}
}

// Dispatch queues fn on the loop. Callbacks dispatched after Close are dropped.
func (l *Loop) Dispatch(fn func()) {
	select {
	case <-l.done:
		return
	default:
	}
	select {
	case l.queue <- fn:
	case <-l.done:
	}
}

// Call runs fn on the loop and waits for it to return. It reports false when the loop is closed.
func (l *Loop) Call(fn func()) bool {
	ran := make(chan struct{})
	l.Dispatch(func() {
		defer close(ran)
		fn()
	})
	select {
	case <-ran:
		return true
	case <-l.done:
		return false
	}
}

// Close stops the loop. Pending callbacks are dropped.
func (l *Loop) Close() {
	l.closing.Do(func() { close(l.done) })
}
