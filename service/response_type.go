package service

// ResponseType enumerates the outcomes of a checkout service call
type ResponseType int

const (
	// InvalidData response
	InvalidData ResponseType = iota

	// Error response
	Error

	// NotFound response
	NotFound

	// Conflict response, the checkout is not in a state allowing the call
	Conflict

	// Success response
	Success
)

var vals = [...]string{
	"invalid-data",
	"error",
	"not-found",
	"conflict",
	"success",
}

// String representation of `ResponseType`
func (a ResponseType) String() string {
	return vals[a]
}
