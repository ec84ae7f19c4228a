package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
)

const providersPayload = `[
  {"id":"1","name":"John Smith","businessName":"Smith Plumbing Co.","category":"Plumbing","location":"Manhattan, NY",
   "coordinates":{"lat":40.7128,"lng":-74.006},"rating":4.8,"reviewCount":124,"isAvailable":true,"hourlyRate":85},
  {"id":"2","name":"Nowhere Inc","category":"Cleaning","coordinates":{"lat":123,"lng":0},"rating":4.1}
]`

func TestClientList(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(providersPayload))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second)
	providers, err := client.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/providers", gotPath)
	require.Equal(t, "application/json", gotAccept)
	require.Len(t, providers, 2)

	require.Equal(t, "Smith Plumbing Co.", providers[0].BusinessName)
	require.Equal(t, catalog.CategoryPlumbing, providers[0].Category)
	require.NotNil(t, providers[0].Coordinates)
	require.InDelta(t, 40.7128, providers[0].Coordinates.Lat, 1e-9)
	require.Equal(t, 124, providers[0].ReviewCount)
	require.NotNil(t, providers[0].Reviews)

	require.Nil(t, providers[1].Coordinates)
}

func TestClientGetEscapesID(t *testing.T) {
	var gotRawPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawPath = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"id":"a/b","name":"Slash","category":"Moving","rating":3}`))
	}))
	defer srv.Close()

	provider, err := NewClient(srv.URL, time.Second).Get(context.Background(), "a/b")
	require.NoError(t, err)
	require.Equal(t, "/providers/a%2Fb", gotRawPath)
	require.Equal(t, "a/b", provider.ID)
}

func TestClientGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"detail":"Provider not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Get(context.Background(), "99")
	require.Error(t, err)
	require.True(t, errors.Is(err, catalog.ErrProviderNotFound))
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).List(context.Background())
	require.Error(t, err)
	require.False(t, errors.Is(err, catalog.ErrProviderNotFound))
	require.Contains(t, err.Error(), "status=500")
	require.Contains(t, err.Error(), "database unavailable")
}

func TestClientMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).List(context.Background())
	require.ErrorContains(t, err, "decode backend response")
}

func TestNewClientDefaults(t *testing.T) {
	require.Equal(t, DevelopmentURL, NewClient("  ", 0).BaseURL())
	require.Equal(t, ProductionURL, NewClient(ProductionURL+"/", 0).BaseURL())
}
