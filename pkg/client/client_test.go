package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return New(Config{BaseURL: ts.URL})
}

func TestNonSuccessStatusBecomesAPIError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"model backend unavailable"}`))
	}))

	_, err := c.GetStatus(context.Background())
	require.Error(t, err)

	ae, ok := AsAPIError(err)
	require.True(t, ok, "expected APIError, got %T", err)
	assert.Equal(t, http.StatusBadGateway, ae.StatusCode)
	assert.Equal(t, "GET", ae.Method)
	assert.Equal(t, "/status", ae.Path)
	assert.JSONEq(t, `{"error":"model backend unavailable"}`, string(ae.Body))
}

func TestBaseURLTrailingSlash(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := New(Config{BaseURL: ts.URL + "/"})
	_, err := c.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/status", gotPath)
}

func TestBearerTokenHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	c := New(Config{BaseURL: ts.URL, AuthToken: "tok123"})
	require.NoError(t, c.Ping(context.Background()))
	assert.Equal(t, "Bearer tok123", gotAuth)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var hasAuth bool
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, c.Ping(context.Background()))
	assert.False(t, hasAuth)
}

func TestContextCancellationPropagates(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetStatus(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
