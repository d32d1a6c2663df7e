// Package session assembles the in-memory state of one checkout attempt.
package session

import (
	"github.com/companieshouse/checkout.payments.ch.gov.uk/lang"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/network"
)

// Localization key of the message shown when no payment method can be offered
const keyEmptyList = "list.empty"

// Session is the root aggregate of one checkout attempt. It is replaced wholesale on
// reload; only the smart selection of its network cards changes after construction.
type Session struct {
	ListURL      string
	ListResult   *models.ListResult
	PresetCard   *network.PresetCard
	AccountCards []*network.AccountCard
	NetworkCards []*network.NetworkCard
	Lang         *lang.File
	EmptyMessage string
}

// IsListURL reports whether this session was loaded from listURL
func (s *Session) IsListURL(listURL string) bool {
	return s != nil && s.ListURL == listURL
}

// Interaction returns the interaction of the list result
func (s *Session) Interaction() models.Interaction {
	return s.ListResult.Interaction
}

// OperationType returns the operation type of the list result
func (s *Session) OperationType() string {
	return s.ListResult.OperationTypeOrDefault()
}

// Cards returns all cards: preset first, then accounts, then networks
func (s *Session) Cards() []network.Card {
	cards := make([]network.Card, 0, len(s.AccountCards)+len(s.NetworkCards)+1)
	if s.PresetCard != nil {
		cards = append(cards, s.PresetCard)
	}
	for _, c := range s.AccountCards {
		cards = append(cards, c)
	}
	for _, c := range s.NetworkCards {
		cards = append(cards, c)
	}
	return cards
}

// HasCards reports whether at least one card can be shown
func (s *Session) HasCards() bool {
	return s.PresetCard != nil || len(s.AccountCards) > 0 || len(s.NetworkCards) > 0
}

// IsPresetCard reports whether card is the preset card of this session
func (s *Session) IsPresetCard(card network.Card) bool {
	pc, ok := card.(*network.PresetCard)
	return ok && s.PresetCard != nil && pc == s.PresetCard
}

// FindCard returns the card with the given kind and code
func (s *Session) FindCard(kind network.CardKind, code string) network.Card {
	for _, c := range s.Cards() {
		if c.Kind() != kind {
			continue
		}
		if c.Code() == code {
			return c
		}
		if nc, ok := c.(*network.NetworkCard); ok {
			for _, n := range nc.PaymentNetworks() {
				if n.Code() == code {
					return c
				}
			}
		}
	}
	return nil
}

// TranslateInteraction returns the session wide message for interaction or def when there is none
func (s *Session) TranslateInteraction(interaction models.Interaction, def string) string {
	if s == nil {
		return def
	}
	if msg := s.Lang.TranslateInteraction(interaction); msg != "" {
		return msg
	}
	return def
}
