package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClient_SetAuthToken(t *testing.T) {
	var seen []http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Clone())
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewAPIClient(srv.URL, 0)

	client.SetAuthToken("abc")
	assert.Equal(t, "Bearer abc", client.DefaultHeader().Get("Authorization"))
	_, err := client.Get(context.Background(), "/admin/dashboard")
	require.NoError(t, err)

	client.SetAuthToken("")
	_, present := client.DefaultHeader()["Authorization"]
	assert.False(t, present)
	_, err = client.Get(context.Background(), "/admin/dashboard")
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "Bearer abc", seen[0].Get("Authorization"))
	assert.Empty(t, seen[1].Values("Authorization"))
	assert.Equal(t, "application/json", seen[1].Get("Accept"))
}

func TestAPIClient_CloneHasOwnHeaders(t *testing.T) {
	client := NewAPIClient("http://backend.invalid", 0)
	clone := client.Clone()
	clone.SetAuthToken("secret")

	assert.Empty(t, client.DefaultHeader().Get("Authorization"))
	assert.Equal(t, "Bearer secret", clone.DefaultHeader().Get("Authorization"))
}

func TestAPIClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":"forbidden area"}`))
	}))
	defer srv.Close()

	_, err := NewAPIClient(srv.URL, 0).Get(context.Background(), "/admin/users")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
	assert.Equal(t, "forbidden area", apiErr.Message)
	assert.JSONEq(t, `{"error":"forbidden area"}`, string(apiErr.Body))
}

func TestAPIClient_PassesBodyThrough(t *testing.T) {
	body := `{"totals":{"bookings":3},"recent":[1,2,3]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	raw, err := NewAPIClient(srv.URL, 0).Get(context.Background(), "/admin/dashboard")
	require.NoError(t, err)
	assert.Equal(t, body, string(raw))
}
