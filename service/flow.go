package service

import (
	"errors"
	"fmt"

	"github.com/companieshouse/chs.go/log"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/checkout"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/network"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/tasks"
)

// Flow is one running checkout. Its presenter and view are only touched on its loop.
type Flow struct {
	ID        string
	loop      *tasks.Loop
	presenter *checkout.Presenter
	view      *stateView
}

var errFlowClosed = errors.New("checkout flow has been stopped")

// call runs fn on the control sequence of the flow
func (f *Flow) call(fn func()) error {
	if !f.loop.Call(fn) {
		return errFlowClosed
	}
	return nil
}

// Resource returns the current state of the flow
func (f *Flow) Resource() (models.CheckoutResourceRest, error) {
	var r models.CheckoutResourceRest
	err := f.call(func() {
		r = f.view.resource(f.ID, f.presenter.ListURL(), f.presenter.State())
	})
	return r, err
}

// TextInput passes typed text to a card so it can narrow its smart selection
func (f *Flow) TextInput(req models.TextInputRequest) (bool, ResponseType, error) {
	var (
		changed      bool
		responseType = Success
		err          error
	)
	callErr := f.call(func() {
		var card network.Card
		card, responseType, err = f.findCard(req.CardKind, req.CardCode)
		if err != nil {
			return
		}
		changed = f.presenter.TextInputChanged(card, req.Input, req.Text)
	})
	if callErr != nil {
		return false, Conflict, callErr
	}
	return changed, responseType, err
}

// SubmitOperation submits the values of a card. InvalidData is returned, and nothing
// submitted, when a value fails validation.
func (f *Flow) SubmitOperation(req models.OperationRequest) (ResponseType, error) {
	responseType := Success
	var err error

	callErr := f.call(func() {
		var card network.Card
		card, responseType, err = f.findCard(req.CardKind, req.CardCode)
		if err != nil {
			return
		}
		f.view.beginAction()
		widgets := newWidgets(card, req.Values, f.presenter.Validator(), f.view.errors)
		f.presenter.ActionClicked(card, widgets)

		if len(f.view.errors) > 0 {
			responseType, err = InvalidData, fmt.Errorf("invalid values for card [%s]", card.Code())
		}
	})
	if callErr != nil {
		return Conflict, callErr
	}
	return responseType, err
}

// AnswerPrompt applies the payer's choice to the pending retry prompt
func (f *Flow) AnswerPrompt(choice string) (ResponseType, error) {
	responseType := Success
	var err error

	callErr := f.call(func() {
		p := f.view.takePrompt()
		if p == nil {
			responseType, err = Conflict, fmt.Errorf("checkout [%s] has no pending prompt", f.ID)
			return
		}
		f.view.beginAction()
		if choice == models.ChoiceRetry {
			p.retry()
			return
		}
		p.cancel()
	})
	if callErr != nil {
		return Conflict, callErr
	}
	return responseType, err
}

// Leave stops the flow unless an operation is being submitted
func (f *Flow) Leave() (ResponseType, error) {
	responseType := Success
	var err error

	callErr := f.call(func() {
		if f.presenter.BackPressed() {
			responseType, err = Conflict, fmt.Errorf("checkout [%s] is submitting an operation", f.ID)
			return
		}
		f.presenter.Stop()
	})
	if callErr != nil {
		return Conflict, callErr
	}
	if err == nil {
		f.loop.Close()
		log.Info("checkout stopped", log.Data{"checkout_id": f.ID})
	}
	return responseType, err
}

// findCard returns the card of the shown session matching kind and code
func (f *Flow) findCard(kind, code string) (network.Card, ResponseType, error) {
	s := f.presenter.Session()
	if s == nil || f.presenter.State() != checkout.AwaitingInput {
		return nil, Conflict, fmt.Errorf("checkout [%s] is not awaiting input", f.ID)
	}
	cardKind, ok := network.ParseCardKind(kind)
	if !ok {
		return nil, InvalidData, fmt.Errorf("unknown card kind [%s]", kind)
	}
	card := s.FindCard(cardKind, code)
	if card == nil {
		return nil, NotFound, fmt.Errorf("card [%s/%s] not found", kind, code)
	}
	return card, Success, nil
}
