package handlers

import (
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/gorilla/mux"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/interceptors"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/service"
)

var checkoutService *service.CheckoutService

// Register defines the route mappings for the main router and it's subrouters
func Register(mainRouter *mux.Router, svc *service.CheckoutService) {
	checkoutService = svc

	ci := &interceptors.CheckoutInterceptor{
		Service: svc,
	}

	mainRouter.HandleFunc("/healthcheck", healthCheck).Methods("GET").Name("get-healthcheck")

	// create-checkout is not intercepted as there is no checkout yet
	rootCheckoutRouter := mainRouter.PathPrefix("/checkouts").Subrouter()
	rootCheckoutRouter.HandleFunc("", HandleCreateCheckout).Methods("POST").Name("create-checkout")

	// every other endpoint works on an existing checkout put in the request context by the interceptor
	checkoutRouter := mainRouter.PathPrefix("/checkouts/{checkout_id}").Subrouter()
	checkoutRouter.HandleFunc("", HandleGetCheckout).Methods("GET").Name("get-checkout")
	checkoutRouter.HandleFunc("", HandleDeleteCheckout).Methods("DELETE").Name("delete-checkout")
	checkoutRouter.HandleFunc("/input", HandleTextInput).Methods("PUT").Name("update-text-input")
	checkoutRouter.HandleFunc("/operations", HandleSubmitOperation).Methods("POST").Name("submit-operation")
	checkoutRouter.HandleFunc("/prompt", HandleAnswerPrompt).Methods("POST").Name("answer-prompt")

	// Set middleware for subrouters
	rootCheckoutRouter.Use(log.Handler)
	checkoutRouter.Use(log.Handler, ci.CheckoutIntercept)
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}
