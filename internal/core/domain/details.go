package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PaymentDetails is the canonical, shape-normalized result of a provider
// payment query. The query client owns the normalization; everything past
// that boundary sees only this type.
type PaymentDetails struct {
	PaymentID      string          `json:"payment_id"`
	Status         string          `json:"status"`
	AmountCentavos int64           `json:"amount_centavos"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	PayerName      string          `json:"payer_name,omitempty"`
	PayerDocument  string          `json:"payer_document,omitempty"`
	Raw            json.RawMessage `json:"raw,omitempty"`
}

// Confirmed reports whether the provider considers the payment settled.
// Either an explicit settlement status or a non-empty payment timestamp is
// sufficient on its own.
func (d *PaymentDetails) Confirmed(confirmedStatuses []string) bool {
	for _, s := range confirmedStatuses {
		if strings.EqualFold(d.Status, s) {
			return true
		}
	}
	return d.PaidAt != nil && !d.PaidAt.IsZero()
}

// ConfirmationPolicy carries the configured settlement vocabulary as one
// value, so every component applying the predicate shares the same set.
type ConfirmationPolicy struct {
	statuses []string
}

// NewConfirmationPolicy builds the policy from the configured status list.
func NewConfirmationPolicy(statuses []string) ConfirmationPolicy {
	return ConfirmationPolicy{statuses: statuses}
}

// Confirmed applies the settlement predicate to normalized details.
func (p ConfirmationPolicy) Confirmed(d *PaymentDetails) bool {
	return d.Confirmed(p.statuses)
}

// ParseCentavos converts the provider's decimal amount string ("50.00",
// "1234.5", "7") into centavos. At most two fraction digits are honored.
func ParseCentavos(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}

	whole, frac, _ := strings.Cut(s, ".")
	if len(frac) > 2 {
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var reais, cents int64
	if _, err := fmt.Sscanf(whole, "%d", &reais); err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if _, err := fmt.Sscanf(frac, "%d", &cents); err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if reais < 0 || strings.HasPrefix(whole, "-") {
		return 0, fmt.Errorf("negative amount %q", s)
	}
	return reais*100 + cents, nil
}

// FormatReais renders centavos as a pt-BR currency string ("R$ 50,00").
func FormatReais(centavos int64) string {
	return fmt.Sprintf("R$ %d,%02d", centavos/100, centavos%100)
}
