// Package provider holds the HTTP clients for the PIX provider's OAuth and
// payment query endpoints.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pix-recebidos/config"
	"pix-recebidos/internal/core/ports"
	"pix-recebidos/pkg/apperror"
)

const maxErrorBody = 4 << 10

// AuthClient implements ports.AuthClient against the provider's OAuth
// client-credentials endpoint.
type AuthClient struct {
	tokenURL string
	scope    string
	client   *http.Client
}

// NewAuthClient creates a new AuthClient.
func NewAuthClient(cfg config.ProviderConfig) *AuthClient {
	return &AuthClient{
		tokenURL: cfg.TokenURL,
		scope:    cfg.Scope,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// ExchangeClientCredentials performs the client-credentials grant. The
// client id and secret go in the Basic authorization header, never the body.
func (c *AuthClient) ExchangeClientCredentials(ctx context.Context, clientID, clientSecret string) (*ports.TokenGrant, error) {
	form := url.Values{"grant_type": {"client_credentials"}}
	if c.scope != "" {
		form.Set("scope", c.scope)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build token request: %w", err)
	}
	req.SetBasicAuth(clientID, clientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return nil, fmt.Errorf("read token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperror.ErrCredentialRefreshFailed(resp.StatusCode, string(body))
	}

	var tok tokenResponse
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, apperror.ErrCredentialRefreshFailed(resp.StatusCode, "malformed token response")
	}
	if tok.AccessToken == "" {
		return nil, apperror.ErrCredentialRefreshFailed(resp.StatusCode, "token response missing access_token")
	}

	return &ports.TokenGrant{
		AccessToken: tok.AccessToken,
		ExpiresIn:   time.Duration(tok.ExpiresIn) * time.Second,
	}, nil
}
