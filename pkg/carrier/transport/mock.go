package transport

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Call records one request seen by a MockDoer.
type Call struct {
	URL     string
	Body    []byte
	Headers map[string]string
	Timeout time.Duration
}

// MockDoer is a Doer for tests. Responses are produced by OnPost; when
// OnPost is nil every call succeeds with an empty JSON object.
type MockDoer struct {
	OnPost func(ctx context.Context, url string, body []byte, headers map[string]string, timeout time.Duration) (*Response, error)

	mu    sync.Mutex
	calls []Call
}

// NewMockDoer creates a new mock transport.
func NewMockDoer() *MockDoer {
	return &MockDoer{}
}

// Post records the call and delegates to OnPost.
func (m *MockDoer) Post(ctx context.Context, url string, body []byte, headers map[string]string, timeout time.Duration) (*Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, Call{URL: url, Body: body, Headers: headers, Timeout: timeout})
	m.mu.Unlock()

	if m.OnPost != nil {
		return m.OnPost(ctx, url, body, headers, timeout)
	}
	return &Response{Status: http.StatusOK, Body: []byte("{}")}, nil
}

// Calls returns a copy of all recorded calls.
func (m *MockDoer) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of recorded calls.
func (m *MockDoer) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

var _ Doer = (*MockDoer)(nil)
