package helpers

// ContextKey is a type for creating context keys
type ContextKey string

// ContextKeyCheckout is a specific key for identifying "checkout" contexts added to the http request
var ContextKeyCheckout = ContextKey("checkout")
