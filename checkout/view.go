package checkout

import (
	"context"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/notify"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/session"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/tasks"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/validation"
)

// View renders a checkout flow. Every method is called on the control sequence.
type View interface {
	// ShowProgress is called when a task of kind starts
	ShowProgress(kind tasks.Kind)

	ShowSession(s *session.Session)

	// ShowMessage shows a non fatal notice on top of the current content
	ShowMessage(message string)

	// ShowRetryPrompt offers the user a choice. Only the first choice made has any effect.
	ShowRetryPrompt(message string, retry, cancel func())

	// Clear removes the shown session before a new one is loaded
	Clear()

	// Close ends the flow, showing message first when it is not empty
	Close(code ResultCode, result PaymentResult, message string)
}

// FormWidget collects the value of one input field
type FormWidget interface {
	Name() string

	// Validate checks the collected value, reporting false when it is not acceptable
	Validate() bool

	// PutValue stores the collected value in op
	PutValue(op *models.Operation) error
}

// SessionBuilder loads the session behind a list url
type SessionBuilder interface {
	Build(ctx context.Context, listURL string) (*session.Session, error)
}

// OperationPoster submits operations
type OperationPoster interface {
	PostOperation(ctx context.Context, op *models.Operation) (*models.OperationResult, error)
}

// ValidatorLoader loads the input validation rules
type ValidatorLoader func(ctx context.Context) (*validation.Validator, error)

// Services are the collaborators of a Presenter
type Services struct {
	Sessions   SessionBuilder
	Operations OperationPoster
	Validators ValidatorLoader
	Publisher  notify.Publisher
}
