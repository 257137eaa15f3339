package transport_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/devacc8/cybership-carrier-service/pkg/carrier/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Post(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"hello":"world"}`, string(body))

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := transport.NewClient()
	resp, err := client.Post(context.Background(), srv.URL, []byte(`{"hello":"world"}`), map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "Bearer token-123",
	}, 5*time.Second)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Body))
}

func TestClient_Post_ErrorStatusIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"response":{"errors":[{"code":"429","message":"slow down"}]}}`))
	}))
	defer srv.Close()

	client := transport.NewClient()
	resp, err := client.Post(context.Background(), srv.URL, nil, nil, 5*time.Second)

	require.NoError(t, err, "HTTP statuses are the caller's to classify")
	assert.Equal(t, http.StatusTooManyRequests, resp.Status)
}

func TestClient_Post_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	client := transport.NewClient()
	start := time.Now()
	_, err := client.Post(context.Background(), srv.URL, nil, nil, 50*time.Millisecond)

	require.Error(t, err)
	assert.True(t, transport.IsTimeout(err))
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_Post_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := transport.NewClient()
	_, err := client.Post(context.Background(), srv.URL, nil, nil, 5*time.Second)

	require.Error(t, err)
	assert.False(t, transport.IsTimeout(err))
}

func TestIsTimeout(t *testing.T) {
	assert.True(t, transport.IsTimeout(context.DeadlineExceeded))
	assert.False(t, transport.IsTimeout(errors.New("connection refused")))
	assert.False(t, transport.IsTimeout(nil))
}

func TestMockDoer_RecordsCalls(t *testing.T) {
	m := transport.NewMockDoer()

	_, err := m.Post(context.Background(), "https://example.com/api", []byte(`{}`),
		map[string]string{"transId": "abc"}, time.Second)
	require.NoError(t, err)

	require.Equal(t, 1, m.CallCount())
	call := m.Calls()[0]
	assert.Equal(t, "https://example.com/api", call.URL)
	assert.Equal(t, "abc", call.Headers["transId"])
	assert.Equal(t, time.Second, call.Timeout)
}
