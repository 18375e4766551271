package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pix-recebidos/internal/core/domain"
	"pix-recebidos/internal/core/ports"

	"github.com/jackc/pgx/v5"
)

// PaymentRepo implements ports.PaymentRepository over the recebidos table.
type PaymentRepo struct {
	pool Pool
}

// NewPaymentRepo creates a new PaymentRepo.
func NewPaymentRepo(pool Pool) *PaymentRepo {
	return &PaymentRepo{pool: pool}
}

// Upsert inserts or rewrites the record keyed by payment id. The RETURNING
// clause carries both confirmation images: the subselect runs against the
// statement snapshot, so it yields the pre-statement confirmed_at (NULL on
// first insert), while the bare column yields the post-statement value.
// confirmed_at only moves null->value: a later delivery whose query came
// back unconfirmed must not reopen a settled payment, or the next confirmed
// delivery would fire the transition a second time. The notified flag is
// never touched here; only MarkNotified owns it.
func (r *PaymentRepo) Upsert(ctx context.Context, rec *domain.PaymentRecord) (domain.Transition, error) {
	query := `INSERT INTO recebidos
		(payment_id, amount_centavos, status, confirmed_at, payer_name, payer_document,
		 raw_details, tenant_id, sub_account_id, charge_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		ON CONFLICT (payment_id) DO UPDATE SET
			amount_centavos = EXCLUDED.amount_centavos,
			status = EXCLUDED.status,
			confirmed_at = COALESCE(recebidos.confirmed_at, EXCLUDED.confirmed_at),
			payer_name = EXCLUDED.payer_name,
			payer_document = EXCLUDED.payer_document,
			raw_details = EXCLUDED.raw_details,
			tenant_id = EXCLUDED.tenant_id,
			sub_account_id = EXCLUDED.sub_account_id,
			charge_id = EXCLUDED.charge_id,
			updated_at = now()
		RETURNING (SELECT confirmed_at FROM recebidos WHERE payment_id = $1), confirmed_at`

	var t domain.Transition
	err := r.pool.QueryRow(ctx, query,
		rec.PaymentID, rec.AmountCentavos, rec.Status, rec.ConfirmedAt,
		rec.PayerName, rec.PayerDocument, rec.RawDetails,
		rec.TenantID, rec.SubAccountID, rec.ChargeID,
	).Scan(&t.PreviousConfirmedAt, &t.NewConfirmedAt)
	if err != nil {
		return domain.Transition{}, fmt.Errorf("upsert payment record: %w", err)
	}
	return t, nil
}

// MarkNotified flips notified false->true. Zero rows affected means another
// delivery already claimed the notification; that is not an error.
func (r *PaymentRepo) MarkNotified(ctx context.Context, paymentID string) error {
	query := `UPDATE recebidos SET notified = TRUE, updated_at = now()
		WHERE payment_id = $1 AND notified = FALSE`

	_, err := r.pool.Exec(ctx, query, paymentID)
	if err != nil {
		return fmt.Errorf("mark payment notified: %w", err)
	}
	return nil
}

// GetByPaymentID fetches a reconciled record. Returns nil, nil when absent.
func (r *PaymentRepo) GetByPaymentID(ctx context.Context, paymentID string) (*domain.PaymentRecord, error) {
	query := `SELECT payment_id, amount_centavos, status, confirmed_at, payer_name, payer_document,
		raw_details, tenant_id, sub_account_id, charge_id, notified, created_at, updated_at
		FROM recebidos WHERE payment_id = $1`

	rec := &domain.PaymentRecord{}
	err := r.pool.QueryRow(ctx, query, paymentID).Scan(
		&rec.PaymentID, &rec.AmountCentavos, &rec.Status, &rec.ConfirmedAt,
		&rec.PayerName, &rec.PayerDocument, &rec.RawDetails,
		&rec.TenantID, &rec.SubAccountID, &rec.ChargeID,
		&rec.Notified, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment record: %w", err)
	}
	return rec, nil
}

// List fetches reconciled records with filtering and pagination.
func (r *PaymentRepo) List(ctx context.Context, params ports.PaymentListParams) ([]domain.PaymentRecord, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.TenantID != "" {
		conditions = append(conditions, fmt.Sprintf("tenant_id = $%d", argIdx))
		args = append(args, params.TenantID)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *params.Status)
		argIdx++
	}
	if params.Notified != nil {
		conditions = append(conditions, fmt.Sprintf("notified = $%d", argIdx))
		args = append(args, *params.Notified)
		argIdx++
	}
	if params.From != nil {
		conditions = append(conditions, fmt.Sprintf("created_at >= to_timestamp($%d)", argIdx))
		args = append(args, *params.From)
		argIdx++
	}
	if params.To != nil {
		conditions = append(conditions, fmt.Sprintf("created_at <= to_timestamp($%d)", argIdx))
		args = append(args, *params.To)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM recebidos %s", where)
	var total int64
	err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count payment records: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT payment_id, amount_centavos, status, confirmed_at, payer_name, payer_document,
		raw_details, tenant_id, sub_account_id, charge_id, notified, created_at, updated_at
		FROM recebidos %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	rows, err := r.pool.Query(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list payment records: %w", err)
	}
	defer rows.Close()

	var recs []domain.PaymentRecord
	for rows.Next() {
		rec := domain.PaymentRecord{}
		err := rows.Scan(
			&rec.PaymentID, &rec.AmountCentavos, &rec.Status, &rec.ConfirmedAt,
			&rec.PayerName, &rec.PayerDocument, &rec.RawDetails,
			&rec.TenantID, &rec.SubAccountID, &rec.ChargeID,
			&rec.Notified, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan payment row: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate payment rows: %w", err)
	}
	return recs, total, nil
}

// GetStats retrieves aggregated reconciliation statistics.
func (r *PaymentRepo) GetStats(ctx context.Context, periodStart *int64) (*ports.PaymentStats, error) {
	var args []any
	condition := "TRUE"
	if periodStart != nil {
		condition = "created_at >= to_timestamp($1)"
		args = append(args, *periodStart)
	}

	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE confirmed_at IS NOT NULL) AS confirmed,
		COUNT(*) FILTER (WHERE notified) AS notified,
		COALESCE(SUM(amount_centavos) FILTER (WHERE confirmed_at IS NOT NULL), 0) AS confirmed_amount
		FROM recebidos WHERE %s`, condition)

	stats := &ports.PaymentStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.TotalReceived, &stats.Confirmed, &stats.Notified, &stats.ConfirmedAmount,
	)
	if err != nil {
		return nil, fmt.Errorf("get payment stats: %w", err)
	}
	return stats, nil
}
