package domain

import "time"

// PaymentLink ("vinculo") ties a provider payment id back to the locally
// issued charge. Created by the charge-creation flow; read-only here.
// At most one link exists per payment id.
type PaymentLink struct {
	PaymentID    string    `json:"payment_id"`
	TenantID     string    `json:"tenant_id"`
	SubAccountID string    `json:"sub_account_id"`
	OrderRef     string    `json:"order_ref"`
	ChargeID     string    `json:"charge_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Contact is a notification destination configured for a tenant.
type Contact struct {
	TenantID    string `json:"tenant_id"`
	Destination string `json:"destination"`
	Name        string `json:"name"`
}
