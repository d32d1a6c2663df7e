// Package notify publishes the outcome of finished checkout flows.
package notify

// Result is the outcome of one checkout flow
type Result struct {
	CheckoutID        string
	ListURL           string
	Code              string
	ResultInfo        string
	InteractionCode   string
	InteractionReason string
}

// Publisher sends checkout results to interested parties
type Publisher interface {
	Publish(result Result) error
}

// NoopPublisher drops every result
type NoopPublisher struct{}

func (NoopPublisher) Publish(Result) error { return nil }
