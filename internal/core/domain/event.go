package domain

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// WebhookEvent is the verbatim audit record of one inbound webhook call.
// Written exactly once per call, never mutated.
type WebhookEvent struct {
	ID         uuid.UUID         `json:"id"`
	EventType  string            `json:"event_type"`
	PaymentID  string            `json:"payment_id"`
	Headers    map[string]string `json:"headers"`
	RawBody    json.RawMessage   `json:"raw_body"`
	ReceivedAt time.Time         `json:"received_at"`
}

// Provider integrations are not consistent about key names, so both the
// event type and the payment identifier are searched under a fixed list of
// accepted aliases, first match wins.
var (
	eventTypeKeys = []string{"event", "evento", "event_type", "type"}
	paymentIDKeys = []string{"txid", "payment_id", "transaction_id", "endToEndId", "e2eid", "id"}
)

// ExtractEventFields pulls the event type and payment identifier out of a
// raw webhook body. Either value may come back empty when no accepted key
// carries a non-empty string.
func ExtractEventFields(raw []byte) (eventType, paymentID string) {
	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return "", ""
	}

	lower := make(map[string]json.RawMessage, len(body))
	for k, v := range body {
		lower[strings.ToLower(k)] = v
	}

	return firstString(lower, eventTypeKeys), firstString(lower, paymentIDKeys)
}

func firstString(body map[string]json.RawMessage, keys []string) string {
	for _, k := range keys {
		raw, ok := body[strings.ToLower(k)]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}
