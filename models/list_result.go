package models

import (
	"github.com/shopspring/decimal"
)

// Operation types a ListResult may be opened for
const (
	OperationCharge = "CHARGE"
	OperationPreset = "PRESET"
)

// Payment methods reported by the payment list API
const (
	MethodCreditCard   = "CREDIT_CARD"
	MethodDebitCard    = "DEBIT_CARD"
	MethodWallet       = "WALLET"
	MethodBankTransfer = "BANK_TRANSFER"
	MethodDirectDebit  = "DIRECT_DEBIT"
	MethodOnlineBank   = "ONLINE_BANK_TRANSFER"
)

// Link names used in the links maps of the payment list API
const (
	LinkOperation = "operation"
	LinkLang      = "lang"
)

// InputTypeAccountNumber is the input element name holding the card or account number
const InputTypeAccountNumber = "number"

// ListResult is the response of the payment list API for a single checkout attempt
type ListResult struct {
	ResultInfo    string                `json:"resultInfo"`
	Interaction   Interaction           `json:"interaction"`
	OperationType string                `json:"operationType"`
	Networks      Networks              `json:"networks"`
	Accounts      []AccountRegistration `json:"accounts"      validate:"dive"`
	PresetAccount *PresetAccount        `json:"presetAccount"`
	Payment       *Payment              `json:"payment"`
	Links         map[string]string     `json:"links"`
}

// Networks groups the applicable payment networks of a ListResult
type Networks struct {
	Applicable []ApplicableNetwork `json:"applicable" validate:"dive"`
}

// ApplicableNetwork is one payment option offered for this checkout attempt
type ApplicableNetwork struct {
	Code          string            `json:"code"                   validate:"required"`
	Label         string            `json:"label"`
	Method        string            `json:"method"`
	Grouping      string            `json:"grouping"`
	Registration  string            `json:"registration"`
	Recurrence    string            `json:"recurrence"`
	Redirect      bool              `json:"redirect"`
	Button        string            `json:"button"`
	Selected      *bool             `json:"selected"`
	InputElements []InputElement    `json:"localizedInputElements" validate:"dive"`
	Links         map[string]string `json:"links"`
}

// InputElement is a single named, typed field the payer has to fill in
type InputElement struct {
	Name  string `json:"name"  validate:"required"`
	Type  string `json:"type"  validate:"required"`
	Label string `json:"label"`
}

// AccountRegistration is an account registered earlier by the payer
type AccountRegistration struct {
	Code          string            `json:"code"                   validate:"required"`
	Label         string            `json:"label"`
	MaskedAccount *AccountMask      `json:"maskedAccount"`
	Selected      *bool             `json:"selected"`
	InputElements []InputElement    `json:"localizedInputElements" validate:"dive"`
	Links         map[string]string `json:"links"`
}

// PresetAccount is the account preset for a PRESET operation
type PresetAccount struct {
	Code          string            `json:"code"          validate:"required"`
	Method        string            `json:"method"`
	MaskedAccount *AccountMask      `json:"maskedAccount"`
	Links         map[string]string `json:"links"`
}

// AccountMask holds the displayable parts of a registered account
type AccountMask struct {
	DisplayLabel string `json:"displayLabel"`
	Holder       string `json:"holderName"`
	Number       string `json:"number"`
	BankCode     string `json:"bankCode"`
	IBAN         string `json:"iban"`
	ExpiryMonth  int    `json:"expiryMonth"`
	ExpiryYear   int    `json:"expiryYear"`
}

// Payment is the amount the payer is asked to pay
type Payment struct {
	Reference string          `json:"reference"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
}

// IsPreselected reports whether the server marked this network as preselected
func (n ApplicableNetwork) IsPreselected() bool {
	return n.Selected != nil && *n.Selected
}

// Link returns the named link or an empty string when absent
func (n ApplicableNetwork) Link(name string) string {
	return n.Links[name]
}

// OperationTypeOrDefault returns the operation type, CHARGE when the server omitted it
func (l *ListResult) OperationTypeOrDefault() string {
	if l.OperationType == "" {
		return OperationCharge
	}
	return l.OperationType
}
