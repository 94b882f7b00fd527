package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/formsync/pkg/errors"
)

func TestNoAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	NoAuth.Apply(req, "FB_key")
	assert.Empty(t, req.Header)
}

func TestAPIKeyAuth(t *testing.T) {
	req := &http.Request{Header: make(http.Header)}
	NewAPIKeyAuth().Apply(req, "FB_key")

	assert.Equal(t, "FB_key", req.Header.Get("X-API-Key"))
	assert.Empty(t, req.Header.Get("Authorization"))

	req = &http.Request{Header: make(http.Header)}
	HeaderAuth("X-Other").Apply(req, "k")
	assert.Equal(t, "k", req.Header.Get("X-Other"))
}

func TestClientGet(t *testing.T) {
	var gotHeaders http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := New(NewAPIKeyAuth())
	assert.Equal(t, DefaultHTTPTimeout, client.Timeout())

	resp, err := client.Get(context.Background(), server.URL, "FB_abc")
	require.NoError(t, err)

	var body struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, DecodeResponse(resp, &body))
	assert.True(t, body.OK)
	assert.Equal(t, "FB_abc", gotHeaders.Get("X-API-Key"))
	assert.Equal(t, "application/json", gotHeaders.Get("Accept"))
}

func TestClientEmptyKeySkipsAuth(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-Key")
	}))
	defer server.Close()

	resp, err := New(NewAPIKeyAuth()).Get(context.Background(), server.URL, "")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Empty(t, gotKey)
}

func TestCheckResponse(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{
			name:   "ok",
			status: http.StatusOK,
			check: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsAPIKeyError(err))
			},
		},
		{
			name:   "rate limited",
			status: http.StatusTooManyRequests,
			check: func(t *testing.T, err error) {
				assert.True(t, errors.IsRateLimited(err))
			},
		},
		{
			name:   "server error keeps body",
			status: http.StatusInternalServerError,
			check: func(t *testing.T, err error) {
				var apiErr *errors.APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, "boom", apiErr.Message)
				assert.Equal(t, "API error: 500 - boom", errors.Classify(err).Message)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("boom\n"))
			}))
			defer server.Close()

			resp, err := New(nil).Get(context.Background(), server.URL, "")
			require.NoError(t, err)
			err = CheckResponse(resp)
			if err == nil {
				_ = resp.Body.Close()
			}
			tt.check(t, err)
		})
	}
}

func TestDecodeResponseMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"templates": [`))
	}))
	defer server.Close()

	resp, err := New(nil).Get(context.Background(), server.URL, "")
	require.NoError(t, err)

	var target map[string]any
	err = DecodeResponse(resp, &target)
	assert.Equal(t, errors.KindData, errors.Classify(err).Kind)
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := New(nil, WithTimeout(50*time.Millisecond))
	_, err := client.Get(context.Background(), server.URL, "")
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err))
	assert.Equal(t, errors.MsgTimeout, errors.Classify(err).Message)
}

func TestClientConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := New(nil).Get(context.Background(), url, "")
	require.Error(t, err)
	assert.True(t, errors.IsConnection(err))
	assert.Equal(t, errors.MsgConnection, errors.Classify(err).Message)
}

func TestClientCanceled(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Get(ctx, server.URL, "")
	assert.ErrorIs(t, err, context.Canceled)
}
