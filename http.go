package binsweep

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"
)

// Client is a modified net/http Client that can natively handle our request and response types
type Client struct {
	*http.Client
}

// NewClient returns a Client with its own transport.
// A zero timeout means requests never time out.
func NewClient(timeout time.Duration, skipCertVerify bool) *Client {
	transport := &http.Transport{}
	if skipCertVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		Client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// Do wraps Go's net/http client with our Request and Response types.
func (c *Client) Do(req *Request) (*Response, error) {
	resp, err := c.Client.Do(req.Request)
	if err != nil {
		return nil, err
	}
	return &Response{Response: resp}, nil
}

// Request is a bin lookup request.
type Request struct {
	*http.Request
}

// NewRequest builds a bare GET for a lookup URL: no headers, no body.
func NewRequest(ctx context.Context, url string) (*Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return &Request{Request: req}, nil
}

// Response is a *http.Response that allows cloning its body.
type Response struct {
	*http.Response
}

// ReadBody reads the whole body as text and puts it back so it can be read again.
func (r *Response) ReadBody() (string, error) {
	if r.Response.Body == nil {
		return "", nil
	}

	body, err := io.ReadAll(r.Response.Body)
	r.Response.Body.Close()
	if err != nil {
		return "", err
	}

	r.Response.Body = io.NopCloser(bytes.NewReader(body))
	return string(body), nil
}

// CloneBody makes a copy of a response, including its body, while leaving the original body intact.
func (r *Response) CloneBody() (*Response, error) {
	newResponse := new(http.Response)

	if r.Response.Header != nil {
		newResponse.Header = r.Response.Header.Clone()
	}

	if r.Response.Trailer != nil {
		newResponse.Trailer = r.Response.Trailer.Clone()
	}

	newResponse.ContentLength = r.Response.ContentLength
	newResponse.Uncompressed = r.Response.Uncompressed
	newResponse.Request = r.Response.Request
	newResponse.TLS = r.Response.TLS
	newResponse.Status = r.Response.Status
	newResponse.StatusCode = r.Response.StatusCode
	newResponse.Proto = r.Response.Proto
	newResponse.ProtoMajor = r.Response.ProtoMajor
	newResponse.ProtoMinor = r.Response.ProtoMinor
	newResponse.Close = r.Response.Close
	newResponse.TransferEncoding = append([]string(nil), r.Response.TransferEncoding...)

	if r.Response.Body == nil {
		return &Response{Response: newResponse}, nil
	}

	body, err := io.ReadAll(r.Response.Body)
	if err != nil {
		return &Response{Response: newResponse}, err
	}

	// Put back the original body
	r.Response.Body = io.NopCloser(bytes.NewReader(body))

	newResponse.Body = io.NopCloser(bytes.NewReader(body))
	return &Response{Response: newResponse}, nil
}
