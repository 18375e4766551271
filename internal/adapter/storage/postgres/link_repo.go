package postgres

import (
	"context"
	"errors"
	"fmt"

	"pix-recebidos/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

// LinkRepo implements ports.LinkRepository. Links are written by the
// charge-creation flow; this service only reads them.
type LinkRepo struct {
	pool Pool
}

// NewLinkRepo creates a new LinkRepo.
func NewLinkRepo(pool Pool) *LinkRepo {
	return &LinkRepo{pool: pool}
}

// GetByPaymentID fetches the charge link for a provider payment id.
// Returns nil, nil when no link exists.
func (r *LinkRepo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.PaymentLink, error) {
	query := `SELECT payment_id, tenant_id, sub_account_id, order_ref, charge_id, created_at
		FROM pix_links WHERE payment_id = $1`

	link := &domain.PaymentLink{}
	err := r.pool.QueryRow(ctx, query, paymentID).Scan(
		&link.PaymentID, &link.TenantID, &link.SubAccountID,
		&link.OrderRef, &link.ChargeID, &link.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment link: %w", err)
	}
	return link, nil
}
