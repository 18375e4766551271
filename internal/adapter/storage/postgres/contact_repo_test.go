package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRepo_ListByTenant(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM tenant_contacts WHERE tenant_id").
		WithArgs("tenant-1").
		WillReturnRows(pgxmock.NewRows([]string{"tenant_id", "destination", "name"}).
			AddRow("tenant-1", "5511999990000", "Financeiro").
			AddRow("tenant-1", "5511888880000", "Vendas"))

	contacts, err := repo.ListByTenant(context.Background(), "tenant-1")
	require.NoError(t, err)
	require.Len(t, contacts, 2)
	assert.Equal(t, "5511999990000", contacts[0].Destination)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepo_ListByTenant_Empty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewContactRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM tenant_contacts WHERE tenant_id").
		WithArgs("tenant-x").
		WillReturnRows(pgxmock.NewRows([]string{"tenant_id", "destination", "name"}))

	contacts, err := repo.ListByTenant(context.Background(), "tenant-x")
	assert.NoError(t, err)
	assert.Empty(t, contacts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
