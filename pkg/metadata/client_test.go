package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neve/ohai/pkg/errors"
)

func TestBaseURL(t *testing.T) {
	assert.Equal(t, "http://169.254.169.254:80", BaseURL(DefaultAddress, DefaultPort))
	assert.Equal(t, "http://[fe80::a9fe:a9fe]:8080", BaseURL("fe80::a9fe:a9fe", 8080))
}

func TestClient_Get(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("hello"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	assert.Equal(t, srv.URL, c.BaseURL())

	resp, err := c.Get(context.Background(), "/ok")
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "hello", string(resp.Body))

	resp, err = c.Get(context.Background(), "/missing")
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusNotFound, resp.Status)
}

func TestClient_Get_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithRequestTimeout(50*time.Millisecond))
	_, err := c.Get(context.Background(), "/slow")
	require.Error(t, err)

	_, ok := errors.CodeOf(err)
	assert.True(t, ok)
}

func TestClient_Get_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).Get(context.Background(), "/")
	require.Error(t, err)
	code, ok := errors.CodeOf(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnavailable, code)
}

func TestClient_Get_CancelledBeforeRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL, WithRateLimit(1, 1)).Get(ctx, "/")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_Get_BodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(make([]byte, 4096))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, WithMaxResponseSize(1024)).Get(context.Background(), "/")
	assert.Error(t, err)
}

func TestResponse_OK(t *testing.T) {
	var nilResp *Response
	assert.False(t, nilResp.OK())
	assert.True(t, (&Response{Status: http.StatusOK}).OK())
	assert.False(t, (&Response{Status: http.StatusNoContent}).OK())
}
