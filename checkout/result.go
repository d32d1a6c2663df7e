package checkout

import "github.com/companieshouse/checkout.payments.ch.gov.uk/models"

// ResultCode is the outcome a checkout flow closes with
type ResultCode int

const (
	// ResultOK means the payment was completed or did not need to be
	ResultOK ResultCode = iota

	// ResultCanceled means the server ended the flow through an interaction
	ResultCanceled

	// ResultError means the flow failed
	ResultError
)

var resultCodes = [...]string{
	"OK",
	"CANCELED",
	"ERROR",
}

// String representation of `ResultCode`
func (c ResultCode) String() string {
	return resultCodes[c]
}

// PaymentResult describes how a checkout flow ended
type PaymentResult struct {
	ResultInfo  string               `json:"result_info,omitempty"`
	Interaction *models.Interaction  `json:"interaction,omitempty"`
	Error       *models.PaymentError `json:"-"`
}

func interactionResult(resultInfo string, interaction models.Interaction) PaymentResult {
	return PaymentResult{ResultInfo: resultInfo, Interaction: &interaction}
}

func errorResult(pe *models.PaymentError) PaymentResult {
	return PaymentResult{ResultInfo: pe.Error(), Error: pe}
}

// State is the position of a Presenter in the checkout flow
type State int

const (
	Idle State = iota
	LoadingValidator
	LoadingSession
	AwaitingInput
	SubmittingOperation
	Closed
)

var states = [...]string{
	"idle",
	"loading_validator",
	"loading_session",
	"awaiting_input",
	"submitting_operation",
	"closed",
}

// String representation of `State`
func (s State) String() string {
	return states[s]
}
