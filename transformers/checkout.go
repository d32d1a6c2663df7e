package transformers

import (
	"github.com/companieshouse/checkout.payments.ch.gov.uk/lang"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/network"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/session"
)

// CheckoutTransformer transforms session data into checkout rest models
type CheckoutTransformer struct{}

// TransformCards transforms the cards of a session into card rest models, preset first,
// then accounts, then networks
func (ct CheckoutTransformer) TransformCards(s *session.Session) []models.CardRest {
	if s == nil {
		return nil
	}
	cards := s.Cards()
	rest := make([]models.CardRest, 0, len(cards))
	for _, c := range cards {
		rest = append(rest, ct.TransformCard(c))
	}
	return rest
}

// TransformCard transforms a single card into its rest model
func (ct CheckoutTransformer) TransformCard(c network.Card) models.CardRest {
	l := c.Lang()
	card := models.CardRest{
		Kind:        c.Kind().String(),
		Code:        c.Code(),
		Method:      c.Method(),
		Button:      l.Translate(c.Button(), c.Button()),
		Preselected: c.IsPreselected(),
		Inputs:      make([]models.InputElementRest, 0, len(c.InputElements())),
	}

	for _, e := range c.InputElements() {
		label := e.Label
		if label == "" {
			label = l.AccountLabel(e.Name)
		}
		input := models.InputElementRest{Name: e.Name, Type: e.Type, Label: label}
		if l.ContainsAccountHint(e.Name) {
			input.Hint = &models.InputHintRest{
				Title: l.AccountHint(e.Name, lang.Title),
				Text:  l.AccountHint(e.Name, lang.Text),
			}
		}
		card.Inputs = append(card.Inputs, input)
	}

	switch v := c.(type) {
	case *network.PresetCard:
		if v.Account.MaskedAccount != nil {
			card.Label = v.Account.MaskedAccount.DisplayLabel
		}
	case *network.AccountCard:
		card.Label = v.Account.Label
		if card.Label == "" && v.Account.MaskedAccount != nil {
			card.Label = v.Account.MaskedAccount.DisplayLabel
		}
	case *network.NetworkCard:
		card.Label = v.VisibleNetwork().Network.Label
		smartSelection := v.HasSmartSelections()
		for _, n := range v.PaymentNetworks() {
			card.Networks = append(card.Networks, n.Code())
			if smartSelection && v.IsSmartSelected(n) {
				card.SmartSelected = append(card.SmartSelected, n.Code())
			}
		}
	}
	return card
}

// TransformPayment transforms the payment of a session with the amount in minor units
// precision. Nil when the list result carries no payment.
func (ct CheckoutTransformer) TransformPayment(s *session.Session) *models.PaymentRest {
	if s == nil || s.ListResult == nil || s.ListResult.Payment == nil {
		return nil
	}
	p := s.ListResult.Payment
	return &models.PaymentRest{
		Reference: p.Reference,
		Amount:    p.Amount.StringFixed(2),
		Currency:  p.Currency,
	}
}
