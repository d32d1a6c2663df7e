package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/config"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/groups"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/lang"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/metrics"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/notify"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/service"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/transport"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/validation"
)

const (
	listURL = "https://api.example.com/pci/v1/lists/123"
	rules   = `[{"code": "default", "items": [{"type": "number", "regex": "[0-9]{12,19}"}]}]`
)

func createRouter(t *testing.T, client transport.Client) *mux.Router {
	set, err := groups.NewSet([]groups.Item{{Code: "VISA", Regex: "4[0-9]*"}, {Code: "MASTERCARD", Regex: "5[1-5][0-9]*"}})
	if err != nil {
		t.Fatal(err)
	}
	svc := service.NewCheckoutService(config.DefaultConfig(), client, set, notify.NoopPublisher{}, metrics.NoopRecorder{})
	svc.Validators = func(context.Context) (*validation.Validator, error) {
		return validation.Parse([]byte(rules))
	}

	router := mux.NewRouter()
	Register(router, svc)
	return router
}

func mockClient(ctrl *gomock.Controller) *transport.MockClient {
	client := transport.NewMockClient(ctrl)
	client.EXPECT().LoadLanguageFile(gomock.Any(), gomock.Any()).Return(lang.FromMap(map[string]string{}), nil).AnyTimes()
	return client
}

func listResult() *models.ListResult {
	network := func(code string) models.ApplicableNetwork {
		return models.ApplicableNetwork{
			Code:          code,
			Method:        models.MethodCreditCard,
			InputElements: []models.InputElement{{Name: "number", Type: "numeric"}},
			Links: map[string]string{
				models.LinkOperation: listURL + "/" + code + "/charge",
				models.LinkLang:      "https://resources.example.com/" + code + ".properties",
			},
		}
	}
	return &models.ListResult{
		Interaction: models.Interaction{Code: models.InteractionProceed, Reason: models.ReasonOK},
		Networks:    models.Networks{Applicable: []models.ApplicableNetwork{network("VISA"), network("MASTERCARD")}},
	}
}

func serveRequest(router *mux.Router, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeCheckout(w *httptest.ResponseRecorder) models.CheckoutResourceRest {
	var r models.CheckoutResourceRest
	_ = json.NewDecoder(w.Body).Decode(&r)
	return r
}

// createCheckout posts a new checkout and waits until it shows its cards
func createCheckout(router *mux.Router) models.CheckoutResourceRest {
	w := serveRequest(router, http.MethodPost, "/checkouts", `{"list_url": "`+listURL+`"}`)
	So(w.Code, ShouldEqual, http.StatusCreated)
	created := decodeCheckout(w)
	So(w.Header().Get("Location"), ShouldEqual, "/checkouts/"+created.ID)
	return waitForState(router, created.ID, "awaiting_input")
}

func waitForState(router *mux.Router, id, state string) models.CheckoutResourceRest {
	var r models.CheckoutResourceRest
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		r = decodeCheckout(serveRequest(router, http.MethodGet, "/checkouts/"+id, ""))
		if r.State == state {
			return r
		}
		time.Sleep(5 * time.Millisecond)
	}
	return r
}

func TestUnitHandleCreateCheckout(t *testing.T) {

	Convey("Request body empty", t, func() {
		router := createRouter(t, nil)
		w := serveRequest(router, http.MethodPost, "/checkouts", "")
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Request body invalid", t, func() {
		router := createRouter(t, nil)
		w := serveRequest(router, http.MethodPost, "/checkouts", "{")
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("List url missing", t, func() {
		router := createRouter(t, nil)
		w := serveRequest(router, http.MethodPost, "/checkouts", `{"list_url": ""}`)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})

	Convey("Successfully created checkout", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mockClient(ctrl)
		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listResult(), nil)

		router := createRouter(t, client)
		r := createCheckout(router)
		defer serveRequest(router, http.MethodDelete, "/checkouts/"+r.ID, "")

		So(r.State, ShouldEqual, "awaiting_input")
		So(r.Cards, ShouldHaveLength, 1)
		So(r.Cards[0].Networks, ShouldResemble, []string{"VISA", "MASTERCARD"})
	})
}

func TestUnitHandleGetCheckout(t *testing.T) {

	Convey("Unknown checkout", t, func() {
		router := createRouter(t, nil)
		w := serveRequest(router, http.MethodGet, "/checkouts/missing", "")
		So(w.Code, ShouldEqual, http.StatusNotFound)
	})
}

func TestUnitHandleTextInput(t *testing.T) {

	Convey("Typed text narrows the card", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mockClient(ctrl)
		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listResult(), nil)

		router := createRouter(t, client)
		r := createCheckout(router)
		defer serveRequest(router, http.MethodDelete, "/checkouts/"+r.ID, "")

		w := serveRequest(router, http.MethodPut, "/checkouts/"+r.ID+"/input", `{"card_kind": "network", "card_code": "VISA", "input": "number", "text": "51"}`)
		So(w.Code, ShouldEqual, http.StatusOK)

		var resp models.TextInputResponse
		So(json.NewDecoder(w.Body).Decode(&resp), ShouldBeNil)
		So(resp.Changed, ShouldBeTrue)
		So(resp.Checkout.Cards[0].Code, ShouldEqual, "MASTERCARD")
		So(resp.Checkout.Cards[0].SmartSelected, ShouldResemble, []string{"MASTERCARD"})
	})

	Convey("Unknown card", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mockClient(ctrl)
		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listResult(), nil)

		router := createRouter(t, client)
		r := createCheckout(router)
		defer serveRequest(router, http.MethodDelete, "/checkouts/"+r.ID, "")

		w := serveRequest(router, http.MethodPut, "/checkouts/"+r.ID+"/input", `{"card_kind": "network", "card_code": "AMEX", "input": "number", "text": "3"}`)
		So(w.Code, ShouldEqual, http.StatusNotFound)
	})

	Convey("Card kind not recognised", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mockClient(ctrl)
		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listResult(), nil)

		router := createRouter(t, client)
		r := createCheckout(router)
		defer serveRequest(router, http.MethodDelete, "/checkouts/"+r.ID, "")

		w := serveRequest(router, http.MethodPut, "/checkouts/"+r.ID+"/input", `{"card_kind": "wallet", "card_code": "VISA", "input": "number"}`)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})
}

func TestUnitHandleSubmitOperation(t *testing.T) {

	Convey("Invalid values return the checkout with its errors", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mockClient(ctrl)
		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listResult(), nil)

		router := createRouter(t, client)
		r := createCheckout(router)
		defer serveRequest(router, http.MethodDelete, "/checkouts/"+r.ID, "")

		w := serveRequest(router, http.MethodPost, "/checkouts/"+r.ID+"/operations", `{"card_kind": "network", "card_code": "VISA", "values": {"number": "4"}}`)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
		So(decodeCheckout(w).Errors["number"], ShouldEqual, "Invalid value")
	})

	Convey("Successfully submitted operation", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mockClient(ctrl)
		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listResult(), nil)
		client.EXPECT().PostOperation(gomock.Any(), gomock.Any()).Return(&models.OperationResult{
			ResultInfo:  "charged",
			Interaction: models.Interaction{Code: models.InteractionProceed, Reason: models.ReasonOK},
		}, nil)

		router := createRouter(t, client)
		r := createCheckout(router)
		defer serveRequest(router, http.MethodDelete, "/checkouts/"+r.ID, "")

		w := serveRequest(router, http.MethodPost, "/checkouts/"+r.ID+"/operations", `{"card_kind": "network", "card_code": "VISA", "values": {"number": "4111111111111111"}}`)
		So(w.Code, ShouldEqual, http.StatusAccepted)

		closed := waitForState(router, r.ID, "closed")
		So(closed.Result.Code, ShouldEqual, "OK")
		So(closed.Result.ResultInfo, ShouldEqual, "charged")
	})
}

func TestUnitHandleAnswerPrompt(t *testing.T) {

	Convey("No pending prompt", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mockClient(ctrl)
		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listResult(), nil)

		router := createRouter(t, client)
		r := createCheckout(router)
		defer serveRequest(router, http.MethodDelete, "/checkouts/"+r.ID, "")

		w := serveRequest(router, http.MethodPost, "/checkouts/"+r.ID+"/prompt", `{"choice": "retry"}`)
		So(w.Code, ShouldEqual, http.StatusConflict)
	})

	Convey("Choice not recognised", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mockClient(ctrl)
		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listResult(), nil)

		router := createRouter(t, client)
		r := createCheckout(router)
		defer serveRequest(router, http.MethodDelete, "/checkouts/"+r.ID, "")

		w := serveRequest(router, http.MethodPost, "/checkouts/"+r.ID+"/prompt", `{"choice": "later"}`)
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})
}

func TestUnitHandleDeleteCheckout(t *testing.T) {

	Convey("Successfully deleted checkout", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		client := mockClient(ctrl)
		client.EXPECT().GetListResult(gomock.Any(), listURL).Return(listResult(), nil)

		router := createRouter(t, client)
		r := createCheckout(router)

		w := serveRequest(router, http.MethodDelete, "/checkouts/"+r.ID, "")
		So(w.Code, ShouldEqual, http.StatusNoContent)

		w = serveRequest(router, http.MethodGet, "/checkouts/"+r.ID, "")
		So(w.Code, ShouldEqual, http.StatusNotFound)
	})
}
