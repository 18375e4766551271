// Package messaging holds the outbound client for the text message gateway
// used for payment confirmation notices.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"pix-recebidos/config"
	"pix-recebidos/pkg/apperror"
)

const maxErrorBody = 4 << 10

// GatewayClient implements ports.MessageGateway over the gateway's HTTP API.
type GatewayClient struct {
	url    string
	apiKey string
	client *http.Client
}

// NewGatewayClient creates a new GatewayClient.
func NewGatewayClient(cfg config.GatewayConfig) *GatewayClient {
	return &GatewayClient{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type sendRequest struct {
	Destination string `json:"destination"`
	Message     string `json:"message"`
}

// Send delivers one text message to one destination. A non-2xx response is
// a delivery failure; retrying is the caller's decision.
func (c *GatewayClient) Send(ctx context.Context, destination, text string) error {
	payload, err := json.Marshal(sendRequest{Destination: destination, Message: text})
	if err != nil {
		return fmt.Errorf("marshal gateway request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return apperror.ErrNotificationFailed(destination, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apperror.ErrNotificationFailed(destination,
			fmt.Errorf("gateway returned %d: %s", resp.StatusCode, string(body)))
	}
	return nil
}
