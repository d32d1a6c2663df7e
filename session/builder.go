package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/companieshouse/chs.go/log"
	"golang.org/x/sync/errgroup"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/groups"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/lang"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/network"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/transport"
)

const (
	source = "SessionBuilder"

	// pageMarker replaces the network code in a network's lang link to address the page wide localization
	pageMarker = "paymentpage"

	defaultEmptyMessage = "There are no payment methods available"
)

// Builder loads a list result with its localizations and assembles the Session
type Builder struct {
	Client          transport.Client
	Groups          *groups.Set
	LangConcurrency int
}

// Build loads the session behind listURL. Every returned error is a *models.PaymentError.
func (b *Builder) Build(ctx context.Context, listURL string) (*Session, error) {
	listResult, err := b.Client.GetListResult(ctx, listURL)
	if err != nil {
		return nil, models.ClassifyError(err)
	}

	networks := network.SupportedNetworks(listResult)
	for _, n := range networks {
		if n.Link(models.LinkLang) == "" {
			return nil, models.NewInternalError(source, fmt.Sprintf("Missing 'lang' link in ApplicableNetwork [%s]", n.Code()), nil)
		}
	}

	pageLang, err := b.loadLanguages(ctx, networks)
	if err != nil {
		return nil, models.ClassifyError(err)
	}

	c := network.Classify(listResult, networks, b.Groups)
	s := &Session{
		ListURL:      listURL,
		ListResult:   listResult,
		PresetCard:   c.PresetCard,
		AccountCards: c.AccountCards,
		NetworkCards: c.NetworkCards,
		Lang:         pageLang,
	}
	if !s.HasCards() {
		s.EmptyMessage = pageLang.Translate(keyEmptyList, defaultEmptyMessage)
	}

	log.Info("payment session loaded", log.Data{
		"list_url":         listURL,
		"interaction_code": listResult.Interaction.Code,
		"networks":         len(networks),
		"cards":            len(s.Cards()),
		"lang_entries":     pageLang.Len(),
	})
	return s, nil
}

// loadLanguages downloads the localization of every network and the page wide localization
// concurrently, returning the page wide one
func (b *Builder) loadLanguages(ctx context.Context, networks []*network.PaymentNetwork) (*lang.File, error) {
	if len(networks) == 0 {
		return lang.New(), nil
	}

	g, gctx := errgroup.WithContext(ctx)
	if b.LangConcurrency > 0 {
		g.SetLimit(b.LangConcurrency)
	}

	for _, n := range networks {
		n := n
		g.Go(func() error {
			file, err := b.Client.LoadLanguageFile(gctx, n.Link(models.LinkLang))
			if err != nil {
				return err
			}
			n.SetLang(file)
			return nil
		})
	}

	var pageLang *lang.File
	first := networks[0]
	pageURL := PageLangURL(first.Link(models.LinkLang), first.Code())
	g.Go(func() error {
		file, err := b.Client.LoadLanguageFile(gctx, pageURL)
		if err != nil {
			return err
		}
		pageLang = file
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return pageLang, nil
}

// PageLangURL derives the page wide localization link from a network's lang link
func PageLangURL(langURL, code string) string {
	return strings.ReplaceAll(langURL, code, pageMarker)
}
