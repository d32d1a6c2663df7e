// Package transport talks to the payment list API: it fetches list results and
// localization files and posts operations, classifying every failure.
package transport

import (
	"context"

	"github.com/companieshouse/checkout.payments.ch.gov.uk/lang"
	"github.com/companieshouse/checkout.payments.ch.gov.uk/models"
)

//go:generate mockgen -destination=mock_client.go -package=transport . Client

// Client is the interface for all requests to the payment list API.
// Every returned error is a *models.PaymentError.
type Client interface {
	GetListResult(ctx context.Context, listURL string) (*models.ListResult, error)
	LoadLanguageFile(ctx context.Context, url string) (*lang.File, error)
	PostOperation(ctx context.Context, operation *models.Operation) (*models.OperationResult, error)
}
