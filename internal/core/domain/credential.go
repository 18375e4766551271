package domain

import "time"

// TokenExpiryMargin is the safety window before the recorded expiry at
// which a bearer token is already treated as expired, so an in-flight
// request never rides a token that lapses mid-call.
const TokenExpiryMargin = 120 * time.Second

// CredentialRecord holds a tenant's provider OAuth material plus the last
// issued bearer token. BearerToken and ExpiresAt are always written
// together as a pair.
type CredentialRecord struct {
	TenantID     string     `json:"tenant_id"`
	SubAccountID string     `json:"sub_account_id"`
	ClientID     string     `json:"client_id"`
	ClientSecret string     `json:"-"` // Never expose
	BearerToken  *string    `json:"-"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TokenValid reports whether the cached bearer token can still be used at
// instant now, honoring the expiry safety margin.
func (c *CredentialRecord) TokenValid(now time.Time) bool {
	if c.BearerToken == nil || *c.BearerToken == "" || c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Sub(now) >= TokenExpiryMargin
}
