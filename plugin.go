package binsweep

// Plugin must be implemented by a plugin to receive every bin that was found.
type Plugin interface {
	OnSuccess(result *Result) error
	Name() string
}

// FailureListener can be implemented by a Plugin that also wants lookups that did not produce a result.
// Failures are delivered regardless of the sweeper's FailurePolicy.
type FailureListener interface {
	OnFailure(failure *LookupError)
}

// Result is a bin that answered with a 200, along with the raw response body.
type Result struct {
	Bin      string
	URL      string
	Body     string
	Request  *Request
	Response *Response
}
