package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pix-recebidos/config"
	"pix-recebidos/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authCfg(url string) config.ProviderConfig {
	return config.ProviderConfig{
		TokenURL: url,
		Scope:    "pix.read",
		Timeout:  5 * time.Second,
	}
}

func TestAuthClient_ExchangeClientCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		user, pass, ok := r.BasicAuth()
		require.True(t, ok, "credentials must travel in the Basic header")
		assert.Equal(t, "client-id", user)
		assert.Equal(t, "client-secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "pix.read", r.PostForm.Get("scope"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"fresh-bearer","expires_in":3600,"token_type":"Bearer"}`))
	}))
	defer srv.Close()

	client := NewAuthClient(authCfg(srv.URL))
	grant, err := client.ExchangeClientCredentials(context.Background(), "client-id", "client-secret")
	require.NoError(t, err)
	assert.Equal(t, "fresh-bearer", grant.AccessToken)
	assert.Equal(t, time.Hour, grant.ExpiresIn)
}

func TestAuthClient_ExchangeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	client := NewAuthClient(authCfg(srv.URL))
	_, err := client.ExchangeClientCredentials(context.Background(), "client-id", "wrong-secret")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CRD_002", appErr.Code)
}

func TestAuthClient_MissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token_type":"Bearer"}`))
	}))
	defer srv.Close()

	client := NewAuthClient(authCfg(srv.URL))
	_, err := client.ExchangeClientCredentials(context.Background(), "client-id", "client-secret")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "CRD_002", appErr.Code)
}
