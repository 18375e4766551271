// Package dto holds the request and response shapes of the HTTP API.
package dto

import "time"

// LoginRequest is the operator login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued JWT.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RecebidoResponse is one reconciled payment record as the dashboard sees it.
type RecebidoResponse struct {
	PaymentID      string     `json:"payment_id"`
	AmountCentavos int64      `json:"amount_centavos"`
	Amount         string     `json:"amount"`
	Status         string     `json:"status"`
	ConfirmedAt    *time.Time `json:"confirmed_at"`
	PayerName      string     `json:"payer_name,omitempty"`
	PayerDocument  string     `json:"payer_document,omitempty"`
	TenantID       string     `json:"tenant_id"`
	ChargeID       string     `json:"charge_id,omitempty"`
	Notified       bool       `json:"notified"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RecebidoListResponse is a paginated page of records.
type RecebidoListResponse struct {
	Items    []RecebidoResponse `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}

// StatsResponse is the aggregated dashboard view.
type StatsResponse struct {
	TotalReceived   int64  `json:"total_received"`
	Confirmed       int64  `json:"confirmed"`
	Notified        int64  `json:"notified"`
	ConfirmedAmount int64  `json:"confirmed_amount_centavos"`
	ConfirmedTotal  string `json:"confirmed_total"`
}
