package ports

import (
	"context"
	"time"

	"pix-recebidos/internal/core/domain"
)

// EventRepository is the append-only audit trail of inbound webhooks.
type EventRepository interface {
	Append(ctx context.Context, event *domain.WebhookEvent) error
}

// LinkRepository reads the charge links written by the charge-creation flow.
type LinkRepository interface {
	// GetByPaymentID returns nil, nil when no link exists.
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.PaymentLink, error)
}

// CredentialRepository persists per-tenant provider credentials.
type CredentialRepository interface {
	// Get returns nil, nil when the tenant has no credential configured.
	Get(ctx context.Context, tenantID, subAccountID string) (*domain.CredentialRecord, error)
	// UpdateToken writes the bearer token and its expiry as one atomic pair.
	UpdateToken(ctx context.Context, tenantID, subAccountID, token string, expiresAt time.Time) error
}

// PaymentRepository owns the canonical reconciled payment records.
type PaymentRepository interface {
	// Upsert inserts or rewrites the record keyed by payment id and returns
	// the pre/post confirmation images captured within the same statement.
	// It never touches the notified flag.
	Upsert(ctx context.Context, rec *domain.PaymentRecord) (domain.Transition, error)
	// MarkNotified flips notified false->true. A no-op when already set.
	MarkNotified(ctx context.Context, paymentID string) error
	GetByPaymentID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error)
	// Reporting queries
	List(ctx context.Context, params PaymentListParams) ([]domain.PaymentRecord, int64, error)
	GetStats(ctx context.Context, periodStart *int64) (*PaymentStats, error)
}

// PaymentListParams holds filter + pagination for listing payments.
type PaymentListParams struct {
	TenantID string
	Status   *string
	Notified *bool
	From     *int64 // Unix timestamp
	To       *int64 // Unix timestamp
	Page     int
	PageSize int
}

// PaymentStats holds aggregated statistics for the dashboard.
type PaymentStats struct {
	TotalReceived    int64
	Confirmed        int64
	Notified         int64
	ConfirmedAmount  int64 // Sum of confirmed amounts, centavos
}

// ContactRepository reads the notification destinations of a tenant.
type ContactRepository interface {
	ListByTenant(ctx context.Context, tenantID string) ([]domain.Contact, error)
}

// ChargeRepository is the enrichment read used for message composition.
type ChargeRepository interface {
	// GetCustomerName returns "" when the order reference is unknown.
	GetCustomerName(ctx context.Context, orderRef string) (string, error)
}
