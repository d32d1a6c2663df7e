package interceptors

import (
	"context"
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/gorilla/mux"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/helpers"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/service"
)

// CheckoutInterceptor contains the checkout service used in the interceptor
type CheckoutInterceptor struct {
	Service *service.CheckoutService
}

// CheckoutIntercept looks up the checkout named in the request and stores it in the request context
func (checkoutInterceptor CheckoutInterceptor) CheckoutIntercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check for a checkout ID in request
		vars := mux.Vars(r)
		id := vars["checkout_id"]
		if id == "" {
			log.ErrorR(r, fmt.Errorf("CheckoutInterceptor error: no checkout id"))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		flow, responseType := checkoutInterceptor.Service.GetCheckout(id)
		if responseType == service.NotFound {
			log.InfoR(r, "CheckoutInterceptor checkout not found", log.Data{"checkout_id": id})
			w.WriteHeader(http.StatusNotFound)
			return
		}

		if responseType != service.Success {
			log.ErrorR(r, fmt.Errorf("CheckoutInterceptor error when retrieving checkout. Status: [%s]", responseType.String()))
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		// Store the flow in context to use later in the handler
		ctx := context.WithValue(r.Context(), helpers.ContextKeyCheckout, flow)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
