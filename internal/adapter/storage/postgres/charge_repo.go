package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ChargeRepo implements ports.ChargeRepository.
type ChargeRepo struct {
	pool Pool
}

// NewChargeRepo creates a new ChargeRepo.
func NewChargeRepo(pool Pool) *ChargeRepo {
	return &ChargeRepo{pool: pool}
}

// GetCustomerName returns the customer name behind an order reference, or
// "" when the reference is unknown. Message composition degrades gracefully.
func (r *ChargeRepo) GetCustomerName(ctx context.Context, orderRef string) (string, error) {
	query := `SELECT customer_name FROM charges WHERE order_ref = $1`

	var name string
	err := r.pool.QueryRow(ctx, query, orderRef).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("get customer name: %w", err)
	}
	return name, nil
}
