package downstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"commerce-mesh/internal/correlation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallSuccessPassesBodyThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"p1","name":"Widget"}`))
	}))
	defer srv.Close()

	client := NewClient(2 * time.Second)
	res := client.Call(context.Background(), http.MethodGet, srv.URL+"/products/p1", nil)

	require.NoError(t, res.Err)
	assert.True(t, res.OK())
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"id":"p1","name":"Widget"}`, string(res.Body))
}

func TestCallAttachesCorrelationID(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(correlation.Header)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx := correlation.WithID(context.Background(), "corr-42")
	client := NewClient(2 * time.Second)
	client.Call(ctx, http.MethodGet, srv.URL, nil)

	assert.Equal(t, "corr-42", seen)
}

func TestCallUpstreamErrorPreservesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Product not found"}`))
	}))
	defer srv.Close()

	client := NewClient(2 * time.Second)
	res := client.Call(context.Background(), http.MethodGet, srv.URL, nil)

	require.NoError(t, res.Err)
	assert.False(t, res.OK())
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.JSONEq(t, `{"error":"Product not found"}`, string(res.Body))
}

func TestCallTransportErrorMapsTo500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(time.Second)
	res := client.Call(context.Background(), http.MethodGet, srv.URL, nil)

	require.Error(t, res.Err)
	assert.False(t, res.OK())
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Nil(t, res.Body)
}

func TestCallTimeoutIsTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewClient(20 * time.Millisecond)
	res := client.Call(context.Background(), http.MethodGet, srv.URL, nil)

	require.Error(t, res.Err)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}
