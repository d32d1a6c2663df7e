package service

import (
	"context"
	"sync"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/google/uuid"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/checkout"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/config"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/groups"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/metrics"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/notify"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/session"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/tasks"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/transport"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/validation"
)

// Number of callbacks a flow loop buffers before a dispatching worker blocks
const loopBuffer = 16

// CheckoutService runs checkout flows on behalf of thin clients
type CheckoutService struct {
	Config     *config.Config
	Client     transport.Client
	Groups     *groups.Set
	Validators checkout.ValidatorLoader
	Publisher  notify.Publisher
	Recorder   metrics.Recorder
	Executor   tasks.Executor
	Retention  time.Duration

	mu    sync.RWMutex
	flows map[string]*Flow
}

// NewCheckoutService creates a service running its network operations on a pool of
// cfg.NetworkWorkers workers. Closed flows are kept for cfg.ClosedRetention().
func NewCheckoutService(cfg *config.Config, client transport.Client, groupSet *groups.Set, publisher notify.Publisher, recorder metrics.Recorder) *CheckoutService {
	return &CheckoutService{
		Config:     cfg,
		Client:     client,
		Groups:     groupSet,
		Validators: FileValidatorLoader(cfg.ValidationRulesPath),
		Publisher:  publisher,
		Recorder:   recorder,
		Executor:   tasks.NewPoolExecutor(cfg.NetworkWorkers),
		Retention:  cfg.ClosedRetention(),
		flows:      map[string]*Flow{},
	}
}

// FileValidatorLoader loads the validation rules from path
func FileValidatorLoader(path string) checkout.ValidatorLoader {
	return func(context.Context) (*validation.Validator, error) {
		return validation.Load(path)
	}
}

// CreateCheckout starts a checkout flow loading the list behind listURL
func (service *CheckoutService) CreateCheckout(listURL string) *Flow {
	id := uuid.NewString()
	loop := tasks.NewLoop(loopBuffer)
	view := newStateView()
	view.onClose = func() { service.retire(id) }

	scheduler := tasks.NewScheduler(service.Executor, loop, tasks.WithRecorder(service.Recorder))
	presenter := checkout.NewPresenter(id, view, scheduler, checkout.Services{
		Sessions: &session.Builder{
			Client:          service.Client,
			Groups:          service.Groups,
			LangConcurrency: service.Config.LangFetchConcurrency,
		},
		Operations: service.Client,
		Validators: service.Validators,
		Publisher:  service.Publisher,
	})

	flow := &Flow{ID: id, loop: loop, presenter: presenter, view: view}

	service.mu.Lock()
	if service.flows == nil {
		service.flows = map[string]*Flow{}
	}
	service.flows[id] = flow
	service.mu.Unlock()

	loop.Dispatch(func() { presenter.Load(listURL) })

	log.Info("checkout created", log.Data{"checkout_id": id, "list_url": listURL})
	return flow
}

// GetCheckout returns the flow with the given id
func (service *CheckoutService) GetCheckout(id string) (*Flow, ResponseType) {
	service.mu.RLock()
	defer service.mu.RUnlock()

	flow, ok := service.flows[id]
	if !ok {
		return nil, NotFound
	}
	return flow, Success
}

// DeleteCheckout stops the flow with the given id and forgets it
func (service *CheckoutService) DeleteCheckout(id string) (ResponseType, error) {
	flow, responseType := service.GetCheckout(id)
	if responseType != Success {
		return responseType, nil
	}

	responseType, err := flow.Leave()
	if err != nil {
		return responseType, err
	}

	service.mu.Lock()
	delete(service.flows, id)
	service.mu.Unlock()
	return Success, nil
}

// retire forgets the closed flow with the given id once Retention has passed
func (service *CheckoutService) retire(id string) {
	time.AfterFunc(service.Retention, func() { service.evict(id) })
}

func (service *CheckoutService) evict(id string) {
	service.mu.Lock()
	flow, ok := service.flows[id]
	delete(service.flows, id)
	service.mu.Unlock()

	if ok {
		flow.loop.Close()
		log.Info("closed checkout evicted", log.Data{"checkout_id": id})
	}
}
