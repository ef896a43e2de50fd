package binsweep

import (
	"fmt"
	"net/url"
)

// DefaultEndpoint is the myjson bin lookup URL that candidates are appended to.
const DefaultEndpoint = "http://api.myjson.com/bins/"

// Endpoint is the base URL bins are looked up under.
type Endpoint struct {
	Base string
}

// ParseEndpoint checks that base is an absolute http or https URL.
func ParseEndpoint(base string) (Endpoint, error) {
	u, err := url.Parse(base)
	if err != nil {
		return Endpoint{}, fmt.Errorf("parsing endpoint: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return Endpoint{}, fmt.Errorf("endpoint %q: scheme must be http or https", base)
	}

	if u.Host == "" {
		return Endpoint{}, fmt.Errorf("endpoint %q: missing host", base)
	}

	return Endpoint{Base: base}, nil
}

// URLFor returns the lookup URL for a bin. The bin is appended to the base as is.
func (e Endpoint) URLFor(bin string) string {
	return e.Base + bin
}
