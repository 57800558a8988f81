package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsAdminPassword(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Admin-Password")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	var result HealthResult
	require.NoError(t, NewClient(server.URL+"/", "secret").Get("/api/v1/health", &result))
	assert.Equal(t, "secret", got)
	assert.Equal(t, "ok", result.Status)
}

func TestClientDecodesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"PLAYER_NOT_FOUND","message":"Player not found"}}`))
	}))
	defer server.Close()

	err := NewClient(server.URL, "").Get("/api/v1/players/nobody", nil)
	assert.EqualError(t, err, "Player not found (PLAYER_NOT_FOUND)")
}

func TestClientReportsNonJSONErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewClient(server.URL, "").Get("/api/v1/health", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 502")
}
