package models

// Interaction codes returned by the payment list API
const (
	InteractionProceed         = "PROCEED"
	InteractionAbort           = "ABORT"
	InteractionTryOtherNetwork = "TRY_OTHER_NETWORK"
	InteractionTryOtherAccount = "TRY_OTHER_ACCOUNT"
	InteractionRetry           = "RETRY"
	InteractionReload          = "RELOAD"
)

// Interaction reasons the client reacts to
const (
	ReasonDuplicateOperation = "DUPLICATE_OPERATION"
	ReasonOK                 = "OK"
)

var interactionCodes = map[string]bool{
	InteractionProceed:         true,
	InteractionAbort:           true,
	InteractionTryOtherNetwork: true,
	InteractionTryOtherAccount: true,
	InteractionRetry:           true,
	InteractionReload:          true,
}

// Interaction tells the client what to do next after a list fetch or an operation
type Interaction struct {
	Code   string `json:"code"   validate:"required"`
	Reason string `json:"reason"`
}

// IsValidInteractionCode reports whether code belongs to the closed set of interaction codes
func IsValidInteractionCode(code string) bool {
	return interactionCodes[code]
}

// OperationResult is the response to a submitted operation
type OperationResult struct {
	ResultInfo  string            `json:"resultInfo"`
	Interaction Interaction       `json:"interaction"`
	Links       map[string]string `json:"links"`
}

// ErrorInfo is the structured error payload the server attaches to a failed call
type ErrorInfo struct {
	ResultInfo  string      `json:"resultInfo"`
	Interaction Interaction `json:"interaction"`
}
