package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withGeocodeServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	old := geocodeBaseURL
	geocodeBaseURL = server.URL
	t.Cleanup(func() { geocodeBaseURL = old })
}

func TestGeocodeAddressResolves(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	withGeocodeServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "MI Road, Jaipur", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"status":"OK","results":[{"geometry":{"location":{"lat":26.9124,"lng":75.7873}}}]}`))
	})

	coords, err := GeocodeAddress(context.Background(), "MI Road, Jaipur")
	require.NoError(t, err)
	require.Len(t, coords, 2)
	assert.Equal(t, 75.7873, coords[0], "longitude first")
	assert.Equal(t, 26.9124, coords[1])
}

func TestGeocodeAddressNoResults(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	withGeocodeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	coords, err := GeocodeAddress(context.Background(), "nowhere at all")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestGeocodeAddressEmptyAddress(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")

	coords, err := GeocodeAddress(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestGeocodeAddressNoAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "")

	coords, err := GeocodeAddress(context.Background(), "MI Road, Jaipur")
	require.NoError(t, err)
	assert.Nil(t, coords)
}

func TestGeocodeAddressUpstreamError(t *testing.T) {
	t.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	withGeocodeServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := GeocodeAddress(context.Background(), "MI Road, Jaipur")
	assert.Error(t, err)
}
