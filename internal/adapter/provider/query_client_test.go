package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pix-recebidos/config"
	"pix-recebidos/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queryCfg(url string) config.ProviderConfig {
	return config.ProviderConfig{
		QueryURL: url,
		Timeout:  5 * time.Second,
	}
}

func TestQueryClient_FetchPayment_TopLevelShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/E2E123456789", r.URL.Path)
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))

		w.Write([]byte(`{
			"status": "CONCLUIDA",
			"valor": {"original": "50.00"},
			"horario": "2026-08-27T12:00:00Z",
			"pagador": {"nome": "Maria Silva", "cpf": "12345678900"}
		}`))
	}))
	defer srv.Close()

	client := NewQueryClient(queryCfg(srv.URL))
	details, err := client.FetchPayment(context.Background(), "E2E123456789", "tok-abc")
	require.NoError(t, err)

	assert.Equal(t, "E2E123456789", details.PaymentID)
	assert.Equal(t, "CONCLUIDA", details.Status)
	assert.Equal(t, int64(5000), details.AmountCentavos)
	require.NotNil(t, details.PaidAt)
	assert.Equal(t, "Maria Silva", details.PayerName)
	assert.Equal(t, "12345678900", details.PayerDocument)
	assert.JSONEq(t, `{
		"status": "CONCLUIDA",
		"valor": {"original": "50.00"},
		"horario": "2026-08-27T12:00:00Z",
		"pagador": {"nome": "Maria Silva", "cpf": "12345678900"}
	}`, string(details.Raw))
}

func TestQueryClient_FetchPayment_PixListShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"pix": [{
				"status": "CONCLUIDA",
				"valor": "120.50",
				"horario": "2026-08-27T12:00:00Z",
				"pagador": {"nome": "Joao Souza", "cnpj": "11222333000181"}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewQueryClient(queryCfg(srv.URL))
	details, err := client.FetchPayment(context.Background(), "E2E1", "tok")
	require.NoError(t, err)

	assert.Equal(t, "CONCLUIDA", details.Status)
	assert.Equal(t, int64(12050), details.AmountCentavos)
	assert.Equal(t, "Joao Souza", details.PayerName)
	assert.Equal(t, "11222333000181", details.PayerDocument)
}

func TestQueryClient_FetchPayment_PaymentsListShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"payments": [{
				"status": "paid",
				"amount": 75.25,
				"paid_at": "2026-08-27T15:30:00Z",
				"payer": {"name": "Ana Costa", "document": "98765432100"}
			}]
		}`))
	}))
	defer srv.Close()

	client := NewQueryClient(queryCfg(srv.URL))
	details, err := client.FetchPayment(context.Background(), "E2E2", "tok")
	require.NoError(t, err)

	assert.Equal(t, "paid", details.Status)
	assert.Equal(t, int64(7525), details.AmountCentavos)
	require.NotNil(t, details.PaidAt)
	assert.Equal(t, "Ana Costa", details.PayerName)
}

func TestQueryClient_FetchPayment_PaymentDateAlone(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"paymentDate": "2024-01-01T10:00:00Z", "amount": 50.00}`))
	}))
	defer srv.Close()

	client := NewQueryClient(queryCfg(srv.URL))
	details, err := client.FetchPayment(context.Background(), "E2E6", "tok")
	require.NoError(t, err)

	// No status at all: the settlement timestamp alone must confirm.
	require.NotNil(t, details.PaidAt)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), details.PaidAt.UTC())
	assert.Equal(t, int64(5000), details.AmountCentavos)
	assert.True(t, details.Confirmed([]string{"concluida"}))
}

func TestQueryClient_FetchPayment_Pending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ATIVA", "valor": {"original": "10.00"}}`))
	}))
	defer srv.Close()

	client := NewQueryClient(queryCfg(srv.URL))
	details, err := client.FetchPayment(context.Background(), "E2E3", "tok")
	require.NoError(t, err)

	assert.Equal(t, "ATIVA", details.Status)
	assert.Nil(t, details.PaidAt)
	assert.False(t, details.Confirmed([]string{"concluida"}))
}

func TestQueryClient_FetchPayment_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title":"cobranca nao encontrada"}`))
	}))
	defer srv.Close()

	client := NewQueryClient(queryCfg(srv.URL))
	_, err := client.FetchPayment(context.Background(), "E2E404", "tok")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "PRV_001", appErr.Code)
}

func TestQueryClient_FetchPayment_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewQueryClient(queryCfg(srv.URL))
	_, err := client.FetchPayment(context.Background(), "E2E5", "tok")
	require.Error(t, err)

	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "PRV_001", appErr.Code)
}
