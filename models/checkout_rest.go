package models

// IncomingCheckoutRequest is the data received in the body of a request starting a checkout
type IncomingCheckoutRequest struct {
	ListURL string `json:"list_url" validate:"required,url"`
}

// TextInputRequest carries the text a payer typed into one input of a card
type TextInputRequest struct {
	CardKind string `json:"card_kind" validate:"required,oneof=preset account network"`
	CardCode string `json:"card_code" validate:"required"`
	Input    string `json:"input"     validate:"required"`
	Text     string `json:"text"`
}

// OperationRequest submits the values collected for a card
type OperationRequest struct {
	CardKind string            `json:"card_kind" validate:"required,oneof=preset account network"`
	CardCode string            `json:"card_code" validate:"required"`
	Values   map[string]string `json:"values"`
}

// PromptRequest answers the retry prompt of a checkout
type PromptRequest struct {
	Choice string `json:"choice" validate:"required,oneof=retry cancel"`
}

// Prompt choices
const (
	ChoiceRetry  = "retry"
	ChoiceCancel = "cancel"
)

// CheckoutResourceRest is the public facing state of a checkout returned in the response
type CheckoutResourceRest struct {
	ID           string              `json:"id"`
	ListURL      string              `json:"list_url"`
	State        string              `json:"state"`
	Progress     string              `json:"progress,omitempty"`
	Messages     []string            `json:"messages,omitempty"`
	Prompt       *PromptRest         `json:"prompt,omitempty"`
	EmptyMessage string              `json:"empty_message,omitempty"`
	Payment      *PaymentRest        `json:"payment,omitempty"`
	Cards        []CardRest          `json:"cards,omitempty"`
	Errors       map[string]string   `json:"errors,omitempty"`
	Result       *CheckoutResultRest `json:"result,omitempty"`
	Links        CheckoutLinksRest   `json:"links"`
}

// PaymentRest is the amount the payer is asked to pay
type PaymentRest struct {
	Reference string `json:"reference,omitempty"`
	Amount    string `json:"amount"`
	Currency  string `json:"currency"`
}

// CardRest is one card a payer can choose
type CardRest struct {
	Kind          string             `json:"kind"`
	Code          string             `json:"code"`
	Method        string             `json:"method"`
	Label         string             `json:"label,omitempty"`
	Button        string             `json:"button,omitempty"`
	Preselected   bool               `json:"preselected"`
	Networks      []string           `json:"networks,omitempty"`
	SmartSelected []string           `json:"smart_selected,omitempty"`
	Inputs        []InputElementRest `json:"inputs"`
}

// InputElementRest is one input of a card
type InputElementRest struct {
	Name  string         `json:"name"`
	Type  string         `json:"type"`
	Label string         `json:"label,omitempty"`
	Hint  *InputHintRest `json:"hint,omitempty"`
}

// InputHintRest explains where to find the value of an input
type InputHintRest struct {
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

// PromptRest offers the payer a choice
type PromptRest struct {
	Message string   `json:"message"`
	Choices []string `json:"choices"`
}

// CheckoutResultRest is the outcome of a closed checkout
type CheckoutResultRest struct {
	Code              string `json:"code"`
	ResultInfo        string `json:"result_info,omitempty"`
	InteractionCode   string `json:"interaction_code,omitempty"`
	InteractionReason string `json:"interaction_reason,omitempty"`
	Message           string `json:"message,omitempty"`
}

// CheckoutLinksRest is a set of URLs related to the resource, including self
type CheckoutLinksRest struct {
	Self string `json:"self"`
}

// TextInputResponse reports whether the typed text changed the smart selection of the card
type TextInputResponse struct {
	Changed  bool                 `json:"changed"`
	Checkout CheckoutResourceRest `json:"checkout"`
}
