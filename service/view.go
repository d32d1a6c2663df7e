package service

import (
	"github.com/companieshouse/checkout.payments.ch.gov.uk/checkout"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/session"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/tasks"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/transformers"
)

type retryPrompt struct {
	message string
	retry   func()
	cancel  func()
}

// stateView records what a checkout flow shows so it can be returned to the client.
// It is only used on the control sequence of its flow.
type stateView struct {
	progress *tasks.Kind
	session  *session.Session
	messages []string
	prompt   *retryPrompt
	errors   map[string]string
	result   *models.CheckoutResultRest

	// onClose runs once the flow has closed
	onClose func()
}

func newStateView() *stateView {
	return &stateView{errors: map[string]string{}}
}

func (v *stateView) ShowProgress(kind tasks.Kind) {
	v.progress = &kind
	v.prompt = nil
}

func (v *stateView) ShowSession(s *session.Session) {
	v.progress = nil
	v.session = s
}

func (v *stateView) ShowMessage(message string) {
	v.messages = append(v.messages, message)
}

func (v *stateView) ShowRetryPrompt(message string, retry, cancel func()) {
	v.progress = nil
	v.prompt = &retryPrompt{message: message, retry: retry, cancel: cancel}
}

func (v *stateView) Clear() {
	v.session = nil
}

func (v *stateView) Close(code checkout.ResultCode, result checkout.PaymentResult, message string) {
	v.progress = nil
	v.prompt = nil
	v.result = &models.CheckoutResultRest{
		Code:       code.String(),
		ResultInfo: result.ResultInfo,
		Message:    message,
	}
	if result.Interaction != nil {
		v.result.InteractionCode = result.Interaction.Code
		v.result.InteractionReason = result.Interaction.Reason
	}
	if v.onClose != nil {
		v.onClose()
	}
}

// beginAction drops the notices and input errors of the previous action
func (v *stateView) beginAction() {
	v.messages = nil
	v.errors = map[string]string{}
}

// takePrompt removes and returns the pending prompt
func (v *stateView) takePrompt() *retryPrompt {
	p := v.prompt
	v.prompt = nil
	return p
}

func (v *stateView) resource(id, listURL string, state checkout.State) models.CheckoutResourceRest {
	r := models.CheckoutResourceRest{
		ID:       id,
		ListURL:  listURL,
		State:    state.String(),
		Messages: append([]string(nil), v.messages...),
		Cards:    transformers.CheckoutTransformer{}.TransformCards(v.session),
		Result:   v.result,
		Links:    models.CheckoutLinksRest{Self: "/checkouts/" + id},
	}
	if v.progress != nil {
		r.Progress = v.progress.String()
	}
	if v.prompt != nil {
		r.Prompt = &models.PromptRest{Message: v.prompt.message, Choices: []string{models.ChoiceRetry, models.ChoiceCancel}}
	}
	if v.session != nil {
		r.EmptyMessage = v.session.EmptyMessage
		r.Payment = transformers.CheckoutTransformer{}.TransformPayment(v.session)
	}
	if len(v.errors) > 0 {
		r.Errors = make(map[string]string, len(v.errors))
		for k, e := range v.errors {
			r.Errors[k] = e
		}
	}
	return r
}
