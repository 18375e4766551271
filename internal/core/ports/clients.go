package ports

import (
	"context"
	"time"

	"pix-recebidos/internal/core/domain"
)

// TokenGrant is the result of an OAuth client-credentials exchange.
type TokenGrant struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// AuthClient performs the OAuth client-credentials exchange against the
// provider's token endpoint.
type AuthClient interface {
	ExchangeClientCredentials(ctx context.Context, clientID, clientSecret string) (*TokenGrant, error)
}

// QueryClient fetches authoritative payment details from the provider.
type QueryClient interface {
	FetchPayment(ctx context.Context, paymentID, bearerToken string) (*domain.PaymentDetails, error)
}

// MessageGateway delivers one text message to one destination.
type MessageGateway interface {
	Send(ctx context.Context, destination, text string) error
}

// TokenCache is the fast-path bearer token cache shared across
// reconciliations for a tenant. Errors are advisory; callers fall through
// to the credential record.
type TokenCache interface {
	// Get returns "", nil on a miss.
	Get(ctx context.Context, tenantID, subAccountID string) (string, error)
	Set(ctx context.Context, tenantID, subAccountID, token string, ttl time.Duration) error
}
