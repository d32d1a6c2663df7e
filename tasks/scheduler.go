package tasks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/companieshouse/chs.go/log"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/metrics"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
)

// ErrTaskActive is returned when a task is started while one of the same kind is outstanding
var ErrTaskActive = errors.New("task of this kind is already active")

const (
	metricTask = "task"

	outcomeSuccess   = "success"
	outcomeFailure   = "failure"
	outcomeDiscarded = "discarded"
)

type cancellable interface {
	Cancel()
}

// Scheduler allows at most one outstanding task per Kind
type Scheduler struct {
	executor   Executor
	dispatcher Dispatcher
	recorder   metrics.Recorder

	mu     sync.Mutex
	active map[Kind]cancellable
}

// Option configures a Scheduler
type Option func(*Scheduler)

// WithRecorder records task latency and outcomes on r
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Scheduler) {
		if r != nil {
			s.recorder = r
		}
	}
}

// NewScheduler runs operations on executor and delivers their callbacks through dispatcher
func NewScheduler(executor Executor, dispatcher Dispatcher, opts ...Option) *Scheduler {
	s := &Scheduler{
		executor:   executor,
		dispatcher: dispatcher,
		recorder:   metrics.NoopRecorder{},
		active:     map[Kind]cancellable{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs fn as a task of the given kind. Failures reach onFailure as *models.PaymentError.
// ErrTaskActive is returned, and nothing is run, when a task of that kind is outstanding.
func Start[T any](s *Scheduler, kind Kind, fn func(context.Context) (T, error), onSuccess func(T), onFailure func(error)) (*Task[T], error) {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Task[T]{
		kind:      kind,
		cancel:    cancel,
		onSuccess: onSuccess,
		onFailure: onFailure,
	}

	s.mu.Lock()
	if _, ok := s.active[kind]; ok {
		s.mu.Unlock()
		cancel()
		log.Error(ErrTaskActive, log.Data{"kind": kind.String()})
		return nil, ErrTaskActive
	}
	s.active[kind] = t
	s.mu.Unlock()

	log.Trace("task started", log.Data{"kind": kind.String()})
	started := time.Now()

	s.executor.Execute(func() {
		value, err := run(ctx, fn)
		s.recorder.ObserveLatency(metricTask, time.Since(started), map[string]string{metrics.LabelKind: kind.String()})

		s.dispatcher.Dispatch(func() {
			if !s.release(kind, t) || t.Finished() {
				s.count(kind, outcomeDiscarded)
				log.Trace("task result discarded", log.Data{"kind": kind.String()})
				return
			}
			if err != nil {
				err = models.ClassifyError(err)
				s.count(kind, outcomeFailure)
				log.Info("task failed", log.Data{"kind": kind.String(), "error": err.Error()})
			} else {
				s.count(kind, outcomeSuccess)
				log.Trace("task finished", log.Data{"kind": kind.String()})
			}
			t.deliver(value, err)
		})
	})
	return t, nil
}

// run executes fn, turning a panic into an error
func run[T any](ctx context.Context, fn func(context.Context) (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: [%v]", r)
		}
	}()
	return fn(ctx)
}

// release removes t from the outstanding tasks, reporting false when t is no longer outstanding
func (s *Scheduler) release(kind Kind, t cancellable) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.active[kind]; !ok || current != t {
		return false
	}
	delete(s.active, kind)
	return true
}

func (s *Scheduler) count(kind Kind, outcome string) {
	s.recorder.IncCounter(metricTask, map[string]string{
		metrics.LabelKind:    kind.String(),
		metrics.LabelOutcome: outcome,
	})
}

// Go runs fn on the executor. fn is not a task: nothing tracks or cancels it.
func (s *Scheduler) Go(fn func()) {
	s.executor.Execute(fn)
}

// IsActive reports whether a task of kind is outstanding
func (s *Scheduler) IsActive(kind Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.active[kind]
	return ok
}

// IsActiveAny reports whether any of kinds is outstanding, or any task at all when none are given
func (s *Scheduler) IsActiveAny(kinds ...Kind) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(kinds) == 0 {
		return len(s.active) > 0
	}
	for _, k := range kinds {
		if _, ok := s.active[k]; ok {
			return true
		}
	}
	return false
}

// Cancel discards the outstanding task of kind, if any
func (s *Scheduler) Cancel(kind Kind) {
	s.mu.Lock()
	t, ok := s.active[kind]
	delete(s.active, kind)
	s.mu.Unlock()

	if ok {
		t.Cancel()
		log.Trace("task cancelled", log.Data{"kind": kind.String()})
	}
}

// Stop discards every outstanding task. Each kind can be started again immediately.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	active := s.active
	s.active = map[Kind]cancellable{}
	s.mu.Unlock()

	for kind, t := range active {
		t.Cancel()
		log.Trace("task cancelled", log.Data{"kind": kind.String()})
	}
}
