package ports

import (
	"context"
	"time"

	"pix-recebidos/internal/core/domain"

	"github.com/google/uuid"
)

// --- Service Ports (Business Logic) ---

// CredentialService guarantees a non-expired bearer token for a tenant,
// refreshing through the provider when the cached one is stale.
type CredentialService interface {
	EnsureValidToken(ctx context.Context, tenantID, subAccountID string) (string, error)
}

// InboundWebhook is the parsed inbound request handed to the orchestrator:
// headers plus raw JSON body, nothing framework-specific.
type InboundWebhook struct {
	Headers map[string]string
	Body    []byte
}

// Reconciliation outcomes.
const (
	OutcomeIgnored    = "IGNORED"    // unrecognized event type, audited only
	OutcomeUnlinked   = "UNLINKED"   // no charge link, audited only
	OutcomeReconciled = "RECONCILED" // record upserted, no transition
	OutcomeNotified   = "NOTIFIED"   // record upserted, transition fired
	OutcomeFailed     = "FAILED"     // sub-chain aborted after audit
)

// ReconcileResult is what one webhook delivery produced. Warning carries
// sub-chain failures that were deliberately not surfaced to the provider.
type ReconcileResult struct {
	EventID uuid.UUID
	Outcome string
	Warning string
}

// ReconcileService is the pipeline coordinator for one inbound webhook.
type ReconcileService interface {
	Process(ctx context.Context, in InboundWebhook) (*ReconcileResult, error)
}

// NotificationResult summarizes one fan-out attempt.
type NotificationResult struct {
	Attempted int
	Delivered int
	Failed    int
}

// NotificationService composes and dispatches the confirmation message when
// a transition is detected, and marks the record notified afterwards.
type NotificationService interface {
	MaybeNotify(ctx context.Context, link *domain.PaymentLink, details *domain.PaymentDetails, transition domain.Transition) (*NotificationResult, error)
}

// AuthService authenticates the dashboard operator.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// TokenService handles JWT token operations for the dashboard.
type TokenService interface {
	Generate(username string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Username string
}

// HashService verifies the operator password hash.
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// ReportingService serves the read-only monitoring view.
type ReportingService interface {
	ListPayments(ctx context.Context, params PaymentListParams) ([]domain.PaymentRecord, int64, error)
	GetStats(ctx context.Context, period string) (*PaymentStats, error)
}
