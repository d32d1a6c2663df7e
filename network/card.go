package network

import (
	"sync"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/lang"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
)

// CardKind tags the variants of Card
type CardKind int

const (
	// PresetKind is the preset account of a PRESET operation
	PresetKind CardKind = iota

	// AccountKind is a registered account
	AccountKind

	// NetworkKind is one or more networks sharing an input schema
	NetworkKind
)

var cardKinds = [...]string{
	"preset",
	"account",
	"network",
}

// String representation of `CardKind`
func (k CardKind) String() string {
	return cardKinds[k]
}

// ParseCardKind returns the CardKind named s
func ParseCardKind(s string) (CardKind, bool) {
	for i, name := range cardKinds {
		if name == s {
			return CardKind(i), true
		}
	}
	return 0, false
}

// Card is the presentable unit shown to the payer. The variants are *PresetCard,
// *AccountCard and *NetworkCard; Kind tells them apart.
type Card interface {
	Kind() CardKind
	Code() string
	Method() string
	OperationLink() string
	InputElements() []models.InputElement
	Button() string
	Lang() *lang.File
	IsPreselected() bool

	// OnTextInputChanged is called when the text of the named input changes and
	// reports whether the card has to be rendered again
	OnTextInputChanged(inputType, text string) bool

	card()
}

// InputElement returns the input element of card with the given name
func InputElement(c Card, name string) (models.InputElement, bool) {
	for _, e := range c.InputElements() {
		if e.Name == name {
			return e, true
		}
	}
	return models.InputElement{}, false
}

// PresetCard shows the account preset for this checkout
type PresetCard struct {
	Account models.PresetAccount
	network models.ApplicableNetwork
	lang    *lang.File
}

func newPresetCard(account models.PresetAccount, pn *PaymentNetwork) *PresetCard {
	return &PresetCard{Account: account, network: pn.Network, lang: pn.Lang()}
}

func (c *PresetCard) card() {}

// Kind returns PresetKind
func (c *PresetCard) Kind() CardKind { return PresetKind }

// Code returns the network code of the preset account
func (c *PresetCard) Code() string { return c.Account.Code }

// Method returns the payment method family
func (c *PresetCard) Method() string { return c.network.Method }

// OperationLink returns the operation link of the preset account
func (c *PresetCard) OperationLink() string { return c.Account.Links[models.LinkOperation] }

// InputElements of a preset card are always empty
func (c *PresetCard) InputElements() []models.InputElement { return []models.InputElement{} }

// Button returns the button label of the network
func (c *PresetCard) Button() string { return c.network.Button }

// Lang returns the localization of the network
func (c *PresetCard) Lang() *lang.File { return c.lang }

// IsPreselected is always true for the preset account
func (c *PresetCard) IsPreselected() bool { return true }

// OnTextInputChanged never changes a preset card
func (c *PresetCard) OnTextInputChanged(string, string) bool { return false }

// AccountCard shows an account registered earlier by the payer
type AccountCard struct {
	Account models.AccountRegistration
	network models.ApplicableNetwork
	lang    *lang.File
}

func newAccountCard(account models.AccountRegistration, pn *PaymentNetwork) *AccountCard {
	return &AccountCard{Account: account, network: pn.Network, lang: pn.Lang()}
}

func (c *AccountCard) card() {}

// Kind returns AccountKind
func (c *AccountCard) Kind() CardKind { return AccountKind }

// Code returns the network code of the account
func (c *AccountCard) Code() string { return c.Account.Code }

// Method returns the payment method family
func (c *AccountCard) Method() string { return c.network.Method }

// OperationLink returns the operation link of the registered account
func (c *AccountCard) OperationLink() string { return c.Account.Links[models.LinkOperation] }

// InputElements returns the input schema of the account, never nil
func (c *AccountCard) InputElements() []models.InputElement {
	if c.Account.InputElements == nil {
		return []models.InputElement{}
	}
	return c.Account.InputElements
}

// Button returns the button label of the network
func (c *AccountCard) Button() string { return c.network.Button }

// Lang returns the localization of the network
func (c *AccountCard) Lang() *lang.File { return c.lang }

// IsPreselected reports whether the account was marked selected
func (c *AccountCard) IsPreselected() bool {
	return c.Account.Selected != nil && *c.Account.Selected
}

// OnTextInputChanged never changes an account card
func (c *AccountCard) OnTextInputChanged(string, string) bool { return false }

// NetworkCard combines networks with identical input schemas. The visible network is
// the first smart selected one, or the first network when none is smart selected.
type NetworkCard struct {
	mu            sync.Mutex
	networks      []*PaymentNetwork
	smartSelected []*PaymentNetwork
}

// NewNetworkCard creates a card holding network
func NewNetworkCard(network *PaymentNetwork) *NetworkCard {
	return &NetworkCard{networks: []*PaymentNetwork{network}}
}

func (c *NetworkCard) card() {}

// AddPaymentNetwork adds network when its schema matches the card, reporting whether it was added
func (c *NetworkCard) AddPaymentNetwork(network *PaymentNetwork) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.networks) > 0 && !network.SameSchema(c.networks[0]) {
		return false
	}
	c.networks = append(c.networks, network)
	return true
}

// PaymentNetworks returns the networks of this card in insertion order
func (c *NetworkCard) PaymentNetworks() []*PaymentNetwork {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*PaymentNetwork(nil), c.networks...)
}

// SmartSelected returns the networks matching the last smart selection input
func (c *NetworkCard) SmartSelected() []*PaymentNetwork {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*PaymentNetwork(nil), c.smartSelected...)
}

// HasSmartSelections reports whether any network is smart selected
func (c *NetworkCard) HasSmartSelections() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.smartSelected) > 0
}

// IsSmartSelected reports whether network is smart selected. The only network of a
// singleton card is always smart selected.
func (c *NetworkCard) IsSmartSelected(network *PaymentNetwork) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.networks) == 1 && c.networks[0] == network {
		return true
	}
	for _, n := range c.smartSelected {
		if n == network {
			return true
		}
	}
	return false
}

// VisibleNetwork returns the network currently represented by this card
func (c *NetworkCard) VisibleNetwork() *PaymentNetwork {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible()
}

func (c *NetworkCard) visible() *PaymentNetwork {
	if len(c.smartSelected) > 0 {
		return c.smartSelected[0]
	}
	return c.networks[0]
}

// Kind returns NetworkKind
func (c *NetworkCard) Kind() CardKind { return NetworkKind }

// Code returns the code of the visible network
func (c *NetworkCard) Code() string { return c.VisibleNetwork().Code() }

// Method returns the payment method of the visible network
func (c *NetworkCard) Method() string { return c.VisibleNetwork().Method() }

// OperationLink returns the operation link of the visible network
func (c *NetworkCard) OperationLink() string {
	return c.VisibleNetwork().Link(models.LinkOperation)
}

// InputElements returns the input schema of the visible network
func (c *NetworkCard) InputElements() []models.InputElement {
	return c.VisibleNetwork().InputElements()
}

// Button returns the button label of the visible network
func (c *NetworkCard) Button() string { return c.VisibleNetwork().Network.Button }

// Lang returns the localization of the visible network
func (c *NetworkCard) Lang() *lang.File { return c.VisibleNetwork().Lang() }

// IsPreselected reports whether any network of the card is preselected
func (c *NetworkCard) IsPreselected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.networks {
		if n.Network.IsPreselected() {
			return true
		}
	}
	return false
}

// OnTextInputChanged narrows the card when the account number of a card network changes
func (c *NetworkCard) OnTextInputChanged(inputType, text string) bool {
	if inputType != models.InputTypeAccountNumber {
		return false
	}
	switch c.Method() {
	case models.MethodCreditCard, models.MethodDebitCard:
		return c.UpdateSmartSelection(text)
	}
	return false
}

// UpdateSmartSelection recomputes the networks whose pattern matches text and reports
// whether the ordered set of smart selected networks changed. Singleton cards never change.
func (c *NetworkCard) UpdateSmartSelection(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.networks) == 1 {
		return false
	}
	var matched []*PaymentNetwork
	for _, n := range c.networks {
		if n.matchesSmartSelection(text) {
			matched = append(matched, n)
		}
	}
	if sameNetworks(c.smartSelected, matched) {
		return false
	}
	c.smartSelected = matched
	return true
}

func sameNetworks(a, b []*PaymentNetwork) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
