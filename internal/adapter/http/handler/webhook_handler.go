package handler

import (
	"io"

	"pix-recebidos/internal/core/ports"
	"pix-recebidos/pkg/apperror"
	"pix-recebidos/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// WebhookHandler receives provider webhook deliveries.
type WebhookHandler struct {
	reconcileSvc ports.ReconcileService
	log          zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(reconcileSvc ports.ReconcileService, log zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{reconcileSvc: reconcileSvc, log: log}
}

// Receive handles POST /webhook/pix. The body is handed to the pipeline
// verbatim; the ack body is always {"ok": true} because the provider's retry
// policy keys off the status code alone.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.ErrMalformedPayload("cannot read request body"))
		return
	}

	headers := make(map[string]string, len(c.Request.Header))
	for name, values := range c.Request.Header {
		if len(values) > 0 {
			headers[name] = values[0]
		}
	}

	result, err := h.reconcileSvc.Process(c.Request.Context(), ports.InboundWebhook{
		Headers: headers,
		Body:    body,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Warning != "" {
		h.log.Warn().
			Stringer("event_id", result.EventID).
			Str("outcome", result.Outcome).
			Str("warning", result.Warning).
			Msg("webhook acknowledged with warning")
	}

	response.Ack(c)
}
