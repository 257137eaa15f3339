// Package transport provides the HTTP collaborator used by carrier
// integrations. HTTP error statuses are returned as responses; only
// transport-level failures (timeouts, connection errors) become errors.
package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"
)

// Response is the raw outcome of an HTTP call.
type Response struct {
	Status int
	Body   []byte
	Header http.Header
}

// Doer abstracts the POST call carriers make against their APIs.
// This abstraction allows for mock implementations during testing
// and real implementations in production.
type Doer interface {
	Post(ctx context.Context, url string, body []byte, headers map[string]string, timeout time.Duration) (*Response, error)
}

// Client is the production Doer backed by net/http.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new HTTP transport client. Timeouts are enforced
// per request, not on the underlying http.Client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// Post issues a POST bounded by the given timeout. The timeout cancels
// only this call; the caller's context is left untouched.
func (c *Client) Post(ctx context.Context, url string, body []byte, headers map[string]string, timeout time.Duration) (*Response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		Status: resp.StatusCode,
		Body:   data,
		Header: resp.Header,
	}, nil
}

// IsTimeout reports whether err is a timeout rather than another
// connection failure.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

var _ Doer = (*Client)(nil)
