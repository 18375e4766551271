package postgres

import (
	"context"
	"fmt"

	"pix-recebidos/internal/core/domain"
)

// ContactRepo implements ports.ContactRepository.
type ContactRepo struct {
	pool Pool
}

// NewContactRepo creates a new ContactRepo.
func NewContactRepo(pool Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

// ListByTenant returns the notification destinations of a tenant. An empty
// slice is a valid result; the caller skips the fan-out.
func (r *ContactRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.Contact, error) {
	query := `SELECT tenant_id, destination, name FROM tenant_contacts WHERE tenant_id = $1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list tenant contacts: %w", err)
	}
	defer rows.Close()

	var contacts []domain.Contact
	for rows.Next() {
		c := domain.Contact{}
		if err := rows.Scan(&c.TenantID, &c.Destination, &c.Name); err != nil {
			return nil, fmt.Errorf("scan contact row: %w", err)
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contact rows: %w", err)
	}
	return contacts, nil
}
