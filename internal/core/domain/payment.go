package domain

import (
	"encoding/json"
	"time"
)

// PaymentRecord ("recebidos") is the canonical reconciled payment, exactly
// one per payment id. Derived fields are rewritten on every webhook for the
// same id; Notified is owned exclusively by the notification dispatcher.
type PaymentRecord struct {
	PaymentID      string          `json:"payment_id"`
	AmountCentavos int64           `json:"amount_centavos"`
	Status         string          `json:"status"`
	ConfirmedAt    *time.Time      `json:"confirmed_at,omitempty"`
	PayerName      string          `json:"payer_name,omitempty"`
	PayerDocument  string          `json:"payer_document,omitempty"`
	RawDetails     json.RawMessage `json:"raw_details,omitempty"`
	TenantID       string          `json:"tenant_id"`
	SubAccountID   string          `json:"sub_account_id"`
	ChargeID       string          `json:"charge_id"`
	Notified       bool            `json:"notified"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Transition is the pre/post confirmation image captured inside a single
// upsert. It is the only basis for notification triggering; event-type
// strings are not trusted for this.
type Transition struct {
	PreviousConfirmedAt *time.Time
	NewConfirmedAt      *time.Time
}

// IsNewlyConfirmed reports whether this upsert moved the record from
// unconfirmed to confirmed.
func (t Transition) IsNewlyConfirmed() bool {
	return t.PreviousConfirmedAt == nil && t.NewConfirmedAt != nil
}
