package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pix-recebidos/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// CredentialRepo implements ports.CredentialRepository.
type CredentialRepo struct {
	pool Pool
}

// NewCredentialRepo creates a new CredentialRepo.
func NewCredentialRepo(pool Pool) *CredentialRepo {
	return &CredentialRepo{pool: pool}
}

// Get fetches the provider credential for a tenant. Returns nil, nil when
// the tenant has no credential configured.
func (r *CredentialRepo) Get(ctx context.Context, tenantID, subAccountID string) (*domain.CredentialRecord, error) {
	query := `SELECT tenant_id, sub_account_id, client_id, client_secret, bearer_token, expires_at, updated_at
		FROM pix_credentials WHERE tenant_id = $1 AND sub_account_id = $2`

	cred := &domain.CredentialRecord{}
	err := r.pool.QueryRow(ctx, query, tenantID, subAccountID).Scan(
		&cred.TenantID, &cred.SubAccountID, &cred.ClientID, &cred.ClientSecret,
		&cred.BearerToken, &cred.ExpiresAt, &cred.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get credential: %w", err)
	}
	return cred, nil
}

// UpdateToken writes the bearer token and its expiry as one atomic pair.
// Concurrent refreshes race benignly; the last write wins and both tokens
// remain valid at the provider.
func (r *CredentialRepo) UpdateToken(ctx context.Context, tenantID, subAccountID, token string, expiresAt time.Time) error {
	query := `UPDATE pix_credentials SET bearer_token = $1, expires_at = $2, updated_at = now()
		WHERE tenant_id = $3 AND sub_account_id = $4`

	tag, err := r.pool.Exec(ctx, query, token, expiresAt, tenantID, subAccountID)
	if err != nil {
		return fmt.Errorf("update credential token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("credential not found: %s/%s", tenantID, subAccountID)
	}
	return nil
}
