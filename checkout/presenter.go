// Package checkout drives one checkout flow: it loads the payment session, submits
// operations and decides from every returned interaction how the flow continues.
package checkout

import (
	"context"
	"errors"

	"github.com/companieshouse/chs.go/log"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/network"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/notify"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/session"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/tasks"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/validation"
)

// Messages shown by the presenter when the server supplies none
const (
	MessageErrorUnknown    = "An unknown error occurred, please try again later"
	MessageErrorConnection = "Unable to connect to the payment server, please check your connection"
	MessageInterrupted     = "Your payment is being processed, please wait"

	resultSamePresetAccount = "Same presetAccount selected"
)

// Presenter is the interaction state machine of one checkout flow. It is not safe for
// concurrent use: every method, like every task callback, must run on the control sequence
// the Scheduler dispatches to.
type Presenter struct {
	id        string
	view      View
	scheduler *tasks.Scheduler
	services  Services

	state             State
	listURL           string
	validator         *validation.Validator
	session           *session.Session
	reloadInteraction *models.Interaction
	operation         *models.Operation
	prompt            int
}

// NewPresenter creates an idle presenter for the checkout flow id
func NewPresenter(id string, view View, scheduler *tasks.Scheduler, services Services) *Presenter {
	if services.Publisher == nil {
		services.Publisher = notify.NoopPublisher{}
	}
	return &Presenter{
		id:        id,
		view:      view,
		scheduler: scheduler,
		services:  services,
	}
}

// ID returns the id of the checkout flow
func (p *Presenter) ID() string { return p.id }

// State returns the current state
func (p *Presenter) State() State { return p.state }

// Session returns the session currently held, nil while none is loaded
func (p *Presenter) Session() *session.Session { return p.session }

// Validator returns the loaded validation rules, nil before the first load
func (p *Presenter) Validator() *validation.Validator { return p.validator }

// ListURL returns the list url of the last load
func (p *Presenter) ListURL() string { return p.listURL }

// Load shows the session behind listURL. A session already held for the same list url is
// shown again without a network call. Load is ignored while any task is outstanding.
func (p *Presenter) Load(listURL string) {
	if p.scheduler.IsActiveAny() || p.state == Closed {
		log.Trace("load ignored", log.Data{"checkout_id": p.id, "state": p.state.String()})
		return
	}
	p.listURL = listURL

	if p.validator != nil && p.session.IsListURL(listURL) {
		log.Trace("showing cached session", log.Data{"checkout_id": p.id, "list_url": listURL})
		p.setState(AwaitingInput)
		p.view.ShowSession(p.session)
		return
	}

	if p.validator == nil {
		p.loadValidator()
		return
	}
	p.loadSession()
}

// Stop discards every outstanding task. A flow that has not closed may be loaded again.
func (p *Presenter) Stop() {
	p.scheduler.Stop()
	if p.state == Closed || p.state == AwaitingInput {
		return
	}
	p.setState(Idle)
}

// BackPressed reports whether the presenter consumes a back navigation, which it does
// while an operation is being submitted
func (p *Presenter) BackPressed() bool {
	if p.scheduler.IsActive(tasks.SubmitOperation) {
		p.view.ShowMessage(MessageInterrupted)
		return true
	}
	return false
}

// TextInputChanged passes user input to card and reports whether its smart selection changed
func (p *Presenter) TextInputChanged(card network.Card, inputType, text string) bool {
	if p.state != AwaitingInput {
		return false
	}
	return card.OnTextInputChanged(inputType, text)
}

// ActionClicked submits the operation of card with the values of widgets. Nothing is
// submitted when a widget fails validation. Ignored while any task is outstanding.
func (p *Presenter) ActionClicked(card network.Card, widgets []FormWidget) {
	if p.scheduler.IsActiveAny() || p.state != AwaitingInput {
		log.Trace("action ignored", log.Data{"checkout_id": p.id, "state": p.state.String()})
		return
	}
	if p.session.IsPresetCard(card) {
		p.closeWithOK(PaymentResult{ResultInfo: resultSamePresetAccount})
		return
	}

	switch operationType := p.session.OperationType(); operationType {
	case models.OperationCharge, models.OperationPreset:
		p.submitCard(card, widgets)
	default:
		log.Info("operation type not supported", log.Data{"checkout_id": p.id, "operation_type": operationType})
	}
}

func (p *Presenter) submitCard(card network.Card, widgets []FormWidget) {
	op := models.NewOperation(card.OperationLink())

	valid := true
	for _, w := range widgets {
		if !w.Validate() {
			valid = false
			continue
		}
		if err := w.PutValue(op); err != nil {
			p.closeWithError(models.NewInternalError("PaymentPage", "error collecting value of ["+w.Name()+"]", err))
			return
		}
	}
	if !valid {
		log.Trace("operation not submitted, invalid input", log.Data{"checkout_id": p.id, "code": card.Code()})
		return
	}
	p.postOperation(op)
}

func (p *Presenter) loadValidator() {
	p.dismissPrompt()
	p.setState(LoadingValidator)
	p.view.ShowProgress(tasks.LoadValidator)

	p.start(func() error {
		_, err := tasks.Start(p.scheduler, tasks.LoadValidator, func(ctx context.Context) (*validation.Validator, error) {
			return p.services.Validators(ctx)
		}, p.onValidatorSuccess, p.onValidatorError)
		return err
	})
}

func (p *Presenter) onValidatorSuccess(v *validation.Validator) {
	p.validator = v
	p.loadSession()
}

func (p *Presenter) onValidatorError(err error) {
	p.closeWithError(err)
}

func (p *Presenter) loadSession() {
	p.dismissPrompt()
	p.session = nil
	p.setState(LoadingSession)
	p.view.Clear()
	p.view.ShowProgress(tasks.LoadSession)

	listURL := p.listURL
	p.start(func() error {
		_, err := tasks.Start(p.scheduler, tasks.LoadSession, func(ctx context.Context) (*session.Session, error) {
			return p.services.Sessions.Build(ctx, listURL)
		}, p.onSessionSuccess, p.onSessionError)
		return err
	})
}

func (p *Presenter) onSessionSuccess(s *session.Session) {
	interaction := s.Interaction()
	if interaction.Code != models.InteractionProceed {
		p.closeWithCanceled(interactionResult(s.ListResult.ResultInfo, interaction), s)
		return
	}

	p.session = s
	p.setState(AwaitingInput)
	if p.reloadInteraction != nil {
		p.showInteractionMessage(*p.reloadInteraction)
		p.reloadInteraction = nil
	}
	p.view.ShowSession(s)
}

func (p *Presenter) onSessionError(err error) {
	pe := models.ClassifyError(err)

	switch {
	case pe.Info != nil:
		p.closeWithCanceled(interactionResult(pe.Info.ResultInfo, pe.Info.Interaction), nil)
	case pe.Kind == models.ConnectionError:
		p.setState(Idle)
		result := errorResult(pe)
		p.showRetryPrompt(p.loadSession, func() {
			p.close(ResultError, result, "")
		})
	default:
		p.closeWithError(pe)
	}
}

func (p *Presenter) postOperation(op *models.Operation) {
	p.dismissPrompt()
	p.operation = op
	p.setState(SubmittingOperation)
	p.view.ShowProgress(tasks.SubmitOperation)

	p.start(func() error {
		_, err := tasks.Start(p.scheduler, tasks.SubmitOperation, func(ctx context.Context) (*models.OperationResult, error) {
			return p.services.Operations.PostOperation(ctx, op)
		}, p.onOperationSuccess, p.onOperationError)
		return err
	})
}

func (p *Presenter) onOperationSuccess(r *models.OperationResult) {
	result := interactionResult(r.ResultInfo, r.Interaction)

	if r.Interaction.Code == models.InteractionProceed {
		p.closeWithOK(result)
		return
	}
	p.handleOperationInteraction(result)
}

func (p *Presenter) onOperationError(err error) {
	pe := models.ClassifyError(err)

	switch {
	case pe.Info != nil:
		p.handleOperationInteraction(interactionResult(pe.Info.ResultInfo, pe.Info.Interaction))
	case pe.Kind == models.ConnectionError:
		p.continueSession()
		op := p.operation
		p.showRetryPrompt(func() { p.postOperation(op) }, func() {})
	default:
		p.closeWithError(pe)
	}
}

func (p *Presenter) handleOperationInteraction(result PaymentResult) {
	interaction := *result.Interaction

	switch interaction.Code {
	case models.InteractionReload, models.InteractionTryOtherNetwork:
		p.reloadInteraction = &interaction
		p.loadSession()
	case models.InteractionRetry, models.InteractionTryOtherAccount:
		p.continueSession()
		p.showInteractionMessage(interaction)
	case models.InteractionAbort:
		if interaction.Reason == models.ReasonDuplicateOperation {
			p.closeWithOK(result)
			return
		}
		p.closeWithCanceled(result, p.session)
	default:
		p.closeWithCanceled(result, p.session)
	}
}

func (p *Presenter) continueSession() {
	p.setState(AwaitingInput)
	p.view.ShowSession(p.session)
}

func (p *Presenter) showInteractionMessage(interaction models.Interaction) {
	if msg := p.session.TranslateInteraction(interaction, ""); msg != "" {
		p.view.ShowMessage(msg)
	}
}

// showRetryPrompt offers a retry. A choice only counts while its prompt is the latest one,
// no task is outstanding and the flow has not closed.
func (p *Presenter) showRetryPrompt(retry, cancel func()) {
	p.prompt++
	id := p.prompt

	choose := func(fn func()) func() {
		return func() {
			if id != p.prompt || p.state == Closed || p.scheduler.IsActiveAny() {
				return
			}
			p.dismissPrompt()
			fn()
		}
	}
	p.view.ShowRetryPrompt(MessageErrorConnection, choose(retry), choose(cancel))
}

// dismissPrompt makes the choices of any prompt already shown do nothing
func (p *Presenter) dismissPrompt() {
	p.prompt++
}

// start runs fn, closing the flow when the task could not be started
func (p *Presenter) start(fn func() error) {
	if err := fn(); err != nil {
		if errors.Is(err, tasks.ErrTaskActive) {
			err = models.NewInternalError("PaymentPage", "task already active", err)
		}
		p.closeWithError(err)
	}
}

func (p *Presenter) closeWithOK(result PaymentResult) {
	p.close(ResultOK, result, "")
}

// closeWithCanceled closes with the message the localization of s has for the interaction
func (p *Presenter) closeWithCanceled(result PaymentResult, s *session.Session) {
	msg := MessageErrorUnknown
	if result.Interaction != nil {
		msg = s.TranslateInteraction(*result.Interaction, MessageErrorUnknown)
	}
	p.close(ResultCanceled, result, msg)
}

func (p *Presenter) closeWithError(err error) {
	pe := models.ClassifyError(err)
	log.Error(pe, log.Data{"checkout_id": p.id, "list_url": p.listURL, "kind": pe.Kind.String()})
	p.close(ResultError, errorResult(pe), MessageErrorUnknown)
}

func (p *Presenter) close(code ResultCode, result PaymentResult, message string) {
	if p.state == Closed {
		return
	}
	p.setState(Closed)
	p.scheduler.Stop()

	data := log.Data{"checkout_id": p.id, "list_url": p.listURL, "result_code": code.String(), "result_info": result.ResultInfo}
	if result.Interaction != nil {
		data["code"] = result.Interaction.Code
		data["reason"] = result.Interaction.Reason
	}
	log.Info("checkout closed", data)

	p.view.Close(code, result, message)
	p.publish(code, result)
}

// publish hands the result to the publisher on the scheduler's executor
func (p *Presenter) publish(code ResultCode, result PaymentResult) {
	r := notify.Result{
		CheckoutID: p.id,
		ListURL:    p.listURL,
		Code:       code.String(),
		ResultInfo: result.ResultInfo,
	}
	if result.Interaction != nil {
		r.InteractionCode = result.Interaction.Code
		r.InteractionReason = result.Interaction.Reason
	}

	publisher := p.services.Publisher
	p.scheduler.Go(func() {
		if err := publisher.Publish(r); err != nil {
			log.Error(err, log.Data{"checkout_id": r.CheckoutID, "message": "error publishing checkout result"})
		}
	})
}

func (p *Presenter) setState(s State) {
	if p.state == s {
		return
	}
	log.Trace("checkout state changed", log.Data{"checkout_id": p.id, "from": p.state.String(), "to": s.String()})
	p.state = s
}
