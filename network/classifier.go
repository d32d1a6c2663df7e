package network

import (
	"github.com/companieshouse/chs.go/log"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/groups"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
)

// Classification is the classified content of a list result
type Classification struct {
	Networks     []*PaymentNetwork
	PresetCard   *PresetCard
	AccountCards []*AccountCard
	NetworkCards []*NetworkCard
}

// SupportedNetworks returns the supported networks of listResult in server order.
// A code appearing twice keeps its first position and its last definition.
func SupportedNetworks(listResult *models.ListResult) []*PaymentNetwork {
	var networks []*PaymentNetwork
	index := map[string]int{}

	for _, an := range listResult.Networks.Applicable {
		if !IsSupported(an) {
			log.Trace("skipping unsupported network", log.Data{"code": an.Code, "button": an.Button, "redirect": an.Redirect})
			continue
		}
		if i, ok := index[an.Code]; ok {
			networks[i] = NewPaymentNetwork(an)
			continue
		}
		index[an.Code] = len(networks)
		networks = append(networks, NewPaymentNetwork(an))
	}
	return networks
}

// Classify builds the cards of listResult from its supported networks and the group rules
func Classify(listResult *models.ListResult, networks []*PaymentNetwork, rules *groups.Set) *Classification {
	byCode := make(map[string]*PaymentNetwork, len(networks))
	for _, n := range networks {
		byCode[n.Code()] = n
	}

	c := &Classification{
		Networks:     networks,
		PresetCard:   createPresetCard(listResult, byCode),
		AccountCards: createAccountCards(listResult, byCode),
		NetworkCards: createNetworkCards(networks, rules),
	}

	log.Trace("list result classified", log.Data{
		"networks":      len(c.Networks),
		"network_cards": len(c.NetworkCards),
		"account_cards": len(c.AccountCards),
		"preset":        c.PresetCard != nil,
	})
	return c
}

// createNetworkCards groups networks into cards keyed by group id, or by the network code
// when a network is not grouped or its schema does not fit the group's card.
// A network whose own code is already taken by a group card gets an unkeyed card.
func createNetworkCards(networks []*PaymentNetwork, rules *groups.Set) []*NetworkCard {
	var ordered []*NetworkCard
	cards := map[string]*NetworkCard{}

	add := func(key string, n *PaymentNetwork) {
		card := NewNetworkCard(n)
		ordered = append(ordered, card)
		if _, taken := cards[key]; !taken {
			cards[key] = card
		}
	}

	for _, n := range networks {
		code := n.Code()
		group := rules.Lookup(code)
		if group == nil {
			add(code, n)
			continue
		}
		n.SetSmartSelectionPattern(group.SmartSelectionPattern(code))

		card, ok := cards[group.ID()]
		switch {
		case !ok:
			add(group.ID(), n)
		case !card.AddPaymentNetwork(n):
			log.Trace("network schema differs from its group", log.Data{"code": code, "group": group.ID()})
			add(code, n)
		}
	}
	return ordered
}

func createPresetCard(listResult *models.ListResult, byCode map[string]*PaymentNetwork) *PresetCard {
	account := listResult.PresetAccount
	if account == nil {
		return nil
	}
	pn, ok := byCode[account.Code]
	if !ok {
		log.Trace("skipping preset account without network", log.Data{"code": account.Code})
		return nil
	}
	return newPresetCard(*account, pn)
}

func createAccountCards(listResult *models.ListResult, byCode map[string]*PaymentNetwork) []*AccountCard {
	cards := []*AccountCard{}

	for _, account := range listResult.Accounts {
		pn, ok := byCode[account.Code]
		if !ok {
			log.Trace("skipping account without network", log.Data{"code": account.Code})
			continue
		}
		cards = append(cards, newAccountCard(account, pn))
	}
	return cards
}
