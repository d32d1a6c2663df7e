package session

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/groups"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/lang"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/network"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/transport"
)

const listURL = "https://api.example.com/pci/v1/lists/123"

var cardSchema = []models.InputElement{
	{Name: "number", Type: "numeric"},
	{Name: "verificationCode", Type: "integer"},
}

func langURL(code string) string {
	return "https://resources.example.com/" + code + ".properties"
}

func applicable(code string) models.ApplicableNetwork {
	return models.ApplicableNetwork{
		Code:          code,
		Method:        models.MethodCreditCard,
		Button:        "button.charge.label",
		InputElements: cardSchema,
		Links: map[string]string{
			models.LinkOperation: "https://api.example.com/lists/123/" + code + "/charge",
			models.LinkLang:      langURL(code),
		},
	}
}

func listOf(networks ...models.ApplicableNetwork) *models.ListResult {
	return &models.ListResult{
		Interaction: models.Interaction{Code: models.InteractionProceed, Reason: models.ReasonOK},
		Networks:    models.Networks{Applicable: networks},
	}
}

func newBuilder(t *testing.T, client transport.Client) *Builder {
	set, err := groups.NewSet([]groups.Item{{Code: "VISA", Regex: "4[0-9]*"}, {Code: "MASTERCARD", Regex: "5[1-5][0-9]*"}})
	if err != nil {
		t.Fatal(err)
	}
	return &Builder{Client: client, Groups: set, LangConcurrency: 2}
}

func TestUnitBuild(t *testing.T) {
	ctx := context.Background()

	Convey("A session is built with languages and cards", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		client := transport.NewMockClient(mockCtrl)

		list := listOf(applicable("VISA"), applicable("MASTERCARD"))
		list.Accounts = []models.AccountRegistration{{Code: "VISA"}}

		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(list, nil)
		client.EXPECT().LoadLanguageFile(gomock.Any(), langURL("VISA")).Return(lang.FromMap(map[string]string{"network.label": "Visa"}), nil)
		client.EXPECT().LoadLanguageFile(gomock.Any(), langURL("MASTERCARD")).Return(lang.FromMap(map[string]string{"network.label": "Mastercard"}), nil)
		client.EXPECT().LoadLanguageFile(gomock.Any(), langURL("paymentpage")).Return(lang.FromMap(map[string]string{
			"interaction.PROCEED.OK": "Please choose",
		}), nil)

		s, err := newBuilder(t, client).Build(ctx, listURL)
		So(err, ShouldBeNil)
		So(s.IsListURL(listURL), ShouldBeTrue)
		So(s.NetworkCards, ShouldHaveLength, 1)
		So(s.AccountCards, ShouldHaveLength, 1)
		So(s.AccountCards[0].Lang().Translate("network.label", ""), ShouldEqual, "Visa")
		So(s.NetworkCards[0].PaymentNetworks()[1].Lang().Translate("network.label", ""), ShouldEqual, "Mastercard")
		So(s.TranslateInteraction(s.Interaction(), ""), ShouldEqual, "Please choose")
		So(s.EmptyMessage, ShouldBeEmpty)
		So(s.Cards()[0].Kind(), ShouldEqual, network.AccountKind)
	})

	Convey("A list without supported networks has an empty message", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		client := transport.NewMockClient(mockCtrl)

		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listOf(), nil)

		s, err := newBuilder(t, client).Build(ctx, listURL)
		So(err, ShouldBeNil)
		So(s.HasCards(), ShouldBeFalse)
		So(s.EmptyMessage, ShouldEqual, defaultEmptyMessage)
	})

	Convey("A network without a lang link is an internal error", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		client := transport.NewMockClient(mockCtrl)

		visa := applicable("VISA")
		delete(visa.Links, models.LinkLang)
		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listOf(visa), nil)

		s, err := newBuilder(t, client).Build(ctx, listURL)
		So(s, ShouldBeNil)
		var pe *models.PaymentError
		So(errors.As(err, &pe), ShouldBeTrue)
		So(pe.Kind, ShouldEqual, models.InternalError)
		So(pe.Error(), ShouldContainSubstring, "Missing 'lang' link in ApplicableNetwork")
	})

	Convey("A failing list request keeps its classification", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		client := transport.NewMockClient(mockCtrl)

		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(nil, models.NewConnectionError("ListConnection", errors.New("timeout")))

		_, err := newBuilder(t, client).Build(ctx, listURL)
		var pe *models.PaymentError
		So(errors.As(err, &pe), ShouldBeTrue)
		So(pe.Kind, ShouldEqual, models.ConnectionError)
	})

	Convey("A failing language download fails the build", t, func() {
		mockCtrl := gomock.NewController(t)
		defer mockCtrl.Finish()
		client := transport.NewMockClient(mockCtrl)

		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listOf(applicable("VISA")), nil)
		client.EXPECT().LoadLanguageFile(gomock.Any(), langURL("VISA")).Return(nil, models.NewConnectionError("LangConnection", errors.New("reset"))).AnyTimes()
		client.EXPECT().LoadLanguageFile(gomock.Any(), langURL("paymentpage")).Return(lang.New(), nil).AnyTimes()

		_, err := newBuilder(t, client).Build(ctx, listURL)
		var pe *models.PaymentError
		So(errors.As(err, &pe), ShouldBeTrue)
		So(pe.Kind, ShouldEqual, models.ConnectionError)
		So(pe.Source, ShouldEqual, "LangConnection")
	})
}

func TestUnitPageLangURL(t *testing.T) {

	Convey("The network code is replaced by the page marker", t, func() {
		So(PageLangURL("https://r.example.com/VISA/en/VISA.properties", "VISA"), ShouldEqual, "https://r.example.com/paymentpage/en/paymentpage.properties")
	})
}

func TestUnitSession(t *testing.T) {

	Convey("Cards are looked up by kind and member code", t, func() {
		list := listOf(applicable("VISA"), applicable("MASTERCARD"))
		set, _ := groups.NewSet([]groups.Item{{Code: "VISA"}, {Code: "MASTERCARD"}})
		c := network.Classify(list, network.SupportedNetworks(list), set)
		s := &Session{ListURL: listURL, ListResult: list, NetworkCards: c.NetworkCards}

		So(s.FindCard(network.NetworkKind, "MASTERCARD"), ShouldEqual, s.NetworkCards[0])
		So(s.FindCard(network.AccountKind, "VISA"), ShouldBeNil)
		So(s.IsPresetCard(s.NetworkCards[0]), ShouldBeFalse)
	})

	Convey("A nil session matches no list and translates to the default", t, func() {
		var s *Session
		So(s.IsListURL(listURL), ShouldBeFalse)
		So(s.TranslateInteraction(models.Interaction{Code: "ABORT"}, "fallback"), ShouldEqual, "fallback")
	})
}
