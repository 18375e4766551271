package service

import (
	"context"
	"testing"

	"pix-recebidos/internal/core/domain"
	"pix-recebidos/internal/core/ports"
	"pix-recebidos/internal/core/ports/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestReporting_ListPayments_NormalizesPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPaymentRepository(ctrl)
	svc := NewReportingService(repo)

	repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params ports.PaymentListParams) ([]domain.PaymentRecord, int64, error) {
			assert.Equal(t, 1, params.Page)
			assert.Equal(t, 20, params.PageSize)
			return []domain.PaymentRecord{{PaymentID: "E2E1"}}, 1, nil
		})

	recs, total, err := svc.ListPayments(context.Background(), ports.PaymentListParams{Page: 0, PageSize: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, recs, 1)
}

func TestReporting_ListPayments_CapsPageSize(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPaymentRepository(ctrl)
	svc := NewReportingService(repo)

	repo.EXPECT().List(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, params ports.PaymentListParams) ([]domain.PaymentRecord, int64, error) {
			assert.Equal(t, 100, params.PageSize)
			return nil, 0, nil
		})

	_, _, err := svc.ListPayments(context.Background(), ports.PaymentListParams{Page: 1, PageSize: 500})
	require.NoError(t, err)
}

func TestReporting_GetStats_Periods(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPaymentRepository(ctrl)
	svc := NewReportingService(repo)

	repo.EXPECT().GetStats(gomock.Any(), gomock.Nil()).
		Return(&ports.PaymentStats{TotalReceived: 5}, nil)

	stats, err := svc.GetStats(context.Background(), "all")
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.TotalReceived)

	repo.EXPECT().GetStats(gomock.Any(), gomock.Not(gomock.Nil())).
		Return(&ports.PaymentStats{TotalReceived: 2}, nil)

	stats, err = svc.GetStats(context.Background(), "week")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalReceived)
}

func TestReporting_GetStats_InvalidPeriod(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPaymentRepository(ctrl)
	svc := NewReportingService(repo)

	_, err := svc.GetStats(context.Background(), "year")
	assert.Error(t, err)
}
