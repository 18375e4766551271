package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"pix-recebidos/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepo_Append(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEventRepo(mock)
	event := &domain.WebhookEvent{
		ID:         uuid.New(),
		EventType:  "PIX_PAID",
		PaymentID:  "E2E123456789",
		Headers:    map[string]string{"Content-Type": "application/json"},
		RawBody:    json.RawMessage(`{"event":"PIX_PAID","txid":"E2E123456789"}`),
		ReceivedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	headers, err := json.Marshal(event.Headers)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO webhook_events").
		WithArgs(event.ID, event.EventType, event.PaymentID, headers, event.RawBody, event.ReceivedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = repo.Append(context.Background(), event)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepo_Append_DBError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEventRepo(mock)
	event := &domain.WebhookEvent{
		ID:         uuid.New(),
		RawBody:    json.RawMessage(`{}`),
		ReceivedAt: time.Now(),
	}

	mock.ExpectExec("INSERT INTO webhook_events").
		WithArgs(
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
		).
		WillReturnError(errors.New("connection refused"))

	err = repo.Append(context.Background(), event)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
