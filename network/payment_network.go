// Package network classifies the applicable networks of a list result into the
// cards presented to the payer.
package network

import (
	"regexp"
	"strings"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/lang"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
)

// buttonActivate marks networks whose button activates rather than pays
const buttonActivate = "activate"

// PaymentNetwork wraps an ApplicableNetwork with its localization and smart selection pattern
type PaymentNetwork struct {
	Network models.ApplicableNetwork

	lang    *lang.File
	pattern *regexp.Regexp
}

// NewPaymentNetwork wraps network
func NewPaymentNetwork(network models.ApplicableNetwork) *PaymentNetwork {
	return &PaymentNetwork{Network: network}
}

// IsSupported reports whether network can be shown. Activation buttons and redirect-only
// networks are not supported.
func IsSupported(network models.ApplicableNetwork) bool {
	if network.Redirect {
		return false
	}
	return network.Button == "" || !strings.Contains(network.Button, buttonActivate)
}

// Code returns the network code
func (n *PaymentNetwork) Code() string {
	return n.Network.Code
}

// Method returns the payment method family
func (n *PaymentNetwork) Method() string {
	return n.Network.Method
}

// Link returns the named link of the network
func (n *PaymentNetwork) Link(name string) string {
	return n.Network.Link(name)
}

// InputElements returns the input schema, never nil
func (n *PaymentNetwork) InputElements() []models.InputElement {
	if n.Network.InputElements == nil {
		return []models.InputElement{}
	}
	return n.Network.InputElements
}

// Lang returns the localization table of the network
func (n *PaymentNetwork) Lang() *lang.File {
	return n.lang
}

// SetLang sets the localization table of the network
func (n *PaymentNetwork) SetLang(f *lang.File) {
	n.lang = f
}

// SetSmartSelectionPattern sets the full-match pattern used for smart selection
func (n *PaymentNetwork) SetSmartSelectionPattern(pattern *regexp.Regexp) {
	n.pattern = pattern
}

// SameSchema reports whether both networks have equal input elements, compared by name and type in order
func (n *PaymentNetwork) SameSchema(other *PaymentNetwork) bool {
	src := n.InputElements()
	cmp := other.InputElements()

	if len(src) != len(cmp) {
		return false
	}
	for i := range src {
		if src[i].Name != cmp[i].Name || src[i].Type != cmp[i].Type {
			return false
		}
	}
	return true
}

func (n *PaymentNetwork) matchesSmartSelection(text string) bool {
	if n.pattern == nil {
		return false
	}
	return n.pattern.MatchString(text)
}
