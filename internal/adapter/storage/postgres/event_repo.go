package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"pix-recebidos/internal/core/domain"
)

// EventRepo implements ports.EventRepository. Rows are append-only; there is
// deliberately no update or delete path.
type EventRepo struct {
	pool Pool
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(pool Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// Append records one inbound webhook delivery verbatim.
func (r *EventRepo) Append(ctx context.Context, event *domain.WebhookEvent) error {
	headers, err := json.Marshal(event.Headers)
	if err != nil {
		return fmt.Errorf("marshal event headers: %w", err)
	}

	query := `INSERT INTO webhook_events (id, event_type, payment_id, headers, raw_body, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.pool.Exec(ctx, query,
		event.ID, event.EventType, event.PaymentID, headers, event.RawBody, event.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("insert webhook event: %w", err)
	}
	return nil
}
