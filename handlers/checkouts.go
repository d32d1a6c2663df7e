package handlers

import (
	"fmt"
	"net/http"

	"github.com/companieshouse/chs.go/log"
	"github.com/go-playground/validator/v10"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/helpers"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/service"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/utils"
)

var validate = validator.New()

// HandleCreateCheckout starts a checkout flow for the list in the request body
func HandleCreateCheckout(w http.ResponseWriter, req *http.Request) {
	var incomingCheckoutRequest models.IncomingCheckoutRequest
	if !decodeRequest(w, req, &incomingCheckoutRequest) {
		return
	}

	flow := checkoutService.CreateCheckout(incomingCheckoutRequest.ListURL)

	checkoutResource, err := flow.Resource()
	if err != nil {
		log.ErrorR(req, fmt.Errorf("error reading checkout resource: [%v]", err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", checkoutResource.Links.Self)
	utils.WriteJSONWithStatus(w, req, checkoutResource, http.StatusCreated)

	log.InfoR(req, "Successful POST request for new checkout", log.Data{"checkout_id": flow.ID, "status": http.StatusCreated})
}

// HandleGetCheckout returns the current state of the checkout in the request context
func HandleGetCheckout(w http.ResponseWriter, req *http.Request) {
	flow, ok := checkoutFromContext(w, req)
	if !ok {
		return
	}
	writeCheckout(w, req, flow, http.StatusOK)
}

// HandleTextInput passes the text typed into a card input to the checkout
func HandleTextInput(w http.ResponseWriter, req *http.Request) {
	flow, ok := checkoutFromContext(w, req)
	if !ok {
		return
	}
	var textInputRequest models.TextInputRequest
	if !decodeRequest(w, req, &textInputRequest) {
		return
	}

	changed, responseType, err := flow.TextInput(textInputRequest)
	if err != nil {
		writeError(w, req, responseType, fmt.Errorf("error updating text input: [%v]", err))
		return
	}

	checkoutResource, err := flow.Resource()
	if err != nil {
		writeError(w, req, service.Conflict, err)
		return
	}
	utils.WriteJSONWithStatus(w, req, models.TextInputResponse{Changed: changed, Checkout: checkoutResource}, http.StatusOK)
}

// HandleSubmitOperation submits the values collected for a card
func HandleSubmitOperation(w http.ResponseWriter, req *http.Request) {
	flow, ok := checkoutFromContext(w, req)
	if !ok {
		return
	}
	var operationRequest models.OperationRequest
	if !decodeRequest(w, req, &operationRequest) {
		return
	}

	responseType, err := flow.SubmitOperation(operationRequest)
	switch {
	case responseType == service.InvalidData && err != nil:
		log.InfoR(req, "operation not submitted", log.Data{"checkout_id": flow.ID, "error": err.Error()})
		writeCheckout(w, req, flow, http.StatusBadRequest)
		return
	case err != nil:
		writeError(w, req, responseType, fmt.Errorf("error submitting operation: [%v]", err))
		return
	}

	writeCheckout(w, req, flow, http.StatusAccepted)
	log.InfoR(req, "Successful POST request for operation", log.Data{"checkout_id": flow.ID, "card_code": operationRequest.CardCode})
}

// HandleAnswerPrompt retries or cancels after a connection failure
func HandleAnswerPrompt(w http.ResponseWriter, req *http.Request) {
	flow, ok := checkoutFromContext(w, req)
	if !ok {
		return
	}
	var promptRequest models.PromptRequest
	if !decodeRequest(w, req, &promptRequest) {
		return
	}

	responseType, err := flow.AnswerPrompt(promptRequest.Choice)
	if err != nil {
		writeError(w, req, responseType, fmt.Errorf("error answering prompt: [%v]", err))
		return
	}
	writeCheckout(w, req, flow, http.StatusAccepted)
}

// HandleDeleteCheckout stops the checkout unless it is submitting an operation
func HandleDeleteCheckout(w http.ResponseWriter, req *http.Request) {
	flow, ok := checkoutFromContext(w, req)
	if !ok {
		return
	}

	responseType, err := checkoutService.DeleteCheckout(flow.ID)
	if err != nil {
		writeError(w, req, responseType, fmt.Errorf("error deleting checkout: [%v]", err))
		return
	}
	w.WriteHeader(http.StatusNoContent)

	log.InfoR(req, "Successful DELETE request for checkout", log.Data{"checkout_id": flow.ID})
}

// checkoutFromContext gets the checkout put in the request context by the CheckoutInterceptor
func checkoutFromContext(w http.ResponseWriter, req *http.Request) (*service.Flow, bool) {
	flow, ok := req.Context().Value(helpers.ContextKeyCheckout).(*service.Flow)
	if !ok {
		log.ErrorR(req, fmt.Errorf("invalid checkout in request context"))
		w.WriteHeader(http.StatusInternalServerError)
	}
	return flow, ok
}

// decodeRequest decodes and validates the request body into dst, writing a 400 when either fails
func decodeRequest(w http.ResponseWriter, req *http.Request, dst interface{}) bool {
	if err := utils.UnmarshalRequestBody(req, dst); err != nil {
		log.ErrorR(req, err)
		w.WriteHeader(http.StatusBadRequest)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		log.ErrorR(req, fmt.Errorf("request body failed validation: [%v]", err))
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(err.Error()), http.StatusBadRequest)
		return false
	}
	return true
}

func writeCheckout(w http.ResponseWriter, req *http.Request, flow *service.Flow, status int) {
	checkoutResource, err := flow.Resource()
	if err != nil {
		writeError(w, req, service.Conflict, err)
		return
	}
	utils.WriteJSONWithStatus(w, req, checkoutResource, status)
}

func writeError(w http.ResponseWriter, req *http.Request, responseType service.ResponseType, err error) {
	log.ErrorR(req, err, log.Data{"service_response_type": responseType.String()})

	switch responseType {
	case service.InvalidData:
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(err.Error()), http.StatusBadRequest)
	case service.NotFound:
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(err.Error()), http.StatusNotFound)
	case service.Conflict:
		utils.WriteJSONWithStatus(w, req, utils.NewMessageResponse(err.Error()), http.StatusConflict)
	default:
		w.WriteHeader(http.StatusInternalServerError)
	}
}
