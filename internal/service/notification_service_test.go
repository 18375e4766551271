package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pix-recebidos/internal/core/domain"
	"pix-recebidos/internal/core/ports"
	"pix-recebidos/internal/core/ports/mocks"
	"pix-recebidos/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type notifyFixture struct {
	contactRepo *mocks.MockContactRepository
	chargeRepo  *mocks.MockChargeRepository
	paymentRepo *mocks.MockPaymentRepository
	gateway     *mocks.MockMessageGateway
	svc         ports.NotificationService
}

func newNotifyFixture(t *testing.T) *notifyFixture {
	ctrl := gomock.NewController(t)
	f := &notifyFixture{
		contactRepo: mocks.NewMockContactRepository(ctrl),
		chargeRepo:  mocks.NewMockChargeRepository(ctrl),
		paymentRepo: mocks.NewMockPaymentRepository(ctrl),
		gateway:     mocks.NewMockMessageGateway(ctrl),
	}
	f.svc = NewNotificationService(
		f.contactRepo, f.chargeRepo, f.paymentRepo, f.gateway,
		domain.NewConfirmationPolicy([]string{"concluida", "paid"}),
		logger.New("error", false),
	)
	return f
}

func notifyDetails() *domain.PaymentDetails {
	paidAt := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)
	return &domain.PaymentDetails{
		PaymentID:      "E2E123456789",
		Status:         "CONCLUIDA",
		AmountCentavos: 5000,
		PaidAt:         &paidAt,
		PayerName:      "Maria Silva",
	}
}

func notifyLink() *domain.PaymentLink {
	return &domain.PaymentLink{
		PaymentID: "E2E123456789",
		TenantID:  "tenant-1",
		OrderRef:  "ORDER-42",
	}
}

func firedTransition(d *domain.PaymentDetails) domain.Transition {
	return domain.Transition{NewConfirmedAt: d.PaidAt}
}

func TestMaybeNotify_NoTransitionNoFanout(t *testing.T) {
	f := newNotifyFixture(t)
	details := notifyDetails()
	// Replay: pre-image already set.
	transition := domain.Transition{PreviousConfirmedAt: details.PaidAt, NewConfirmedAt: details.PaidAt}

	result, err := f.svc.MaybeNotify(context.Background(), notifyLink(), details, transition)
	require.NoError(t, err)
	assert.Zero(t, result.Attempted)
}

func TestMaybeNotify_UnconfirmedDetailsNoFanout(t *testing.T) {
	f := newNotifyFixture(t)
	now := time.Now()
	details := &domain.PaymentDetails{
		PaymentID: "E2E1",
		Status:    "ATIVA",
	}
	transition := domain.Transition{NewConfirmedAt: &now}

	result, err := f.svc.MaybeNotify(context.Background(), notifyLink(), details, transition)
	require.NoError(t, err)
	assert.Zero(t, result.Attempted)
}

func TestMaybeNotify_FanoutAllDelivered(t *testing.T) {
	f := newNotifyFixture(t)
	details := notifyDetails()
	link := notifyLink()

	f.contactRepo.EXPECT().ListByTenant(gomock.Any(), "tenant-1").Return([]domain.Contact{
		{TenantID: "tenant-1", Destination: "5511999990000"},
		{TenantID: "tenant-1", Destination: "5511888880000"},
	}, nil)
	f.chargeRepo.EXPECT().GetCustomerName(gomock.Any(), "ORDER-42").Return("Cliente Ltda", nil)
	f.gateway.EXPECT().Send(gomock.Any(), "5511999990000", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, text string) error {
			assert.Contains(t, text, "Cliente Ltda")
			assert.Contains(t, text, "R$ 50,00")
			assert.Contains(t, text, "ORDER-42")
			return nil
		})
	f.gateway.EXPECT().Send(gomock.Any(), "5511888880000", gomock.Any()).Return(nil)
	f.paymentRepo.EXPECT().MarkNotified(gomock.Any(), "E2E123456789").Return(nil)

	result, err := f.svc.MaybeNotify(context.Background(), link, details, firedTransition(details))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 2, result.Delivered)
	assert.Zero(t, result.Failed)
}

func TestMaybeNotify_PartialFailureDoesNotBlockSiblings(t *testing.T) {
	f := newNotifyFixture(t)
	details := notifyDetails()
	link := notifyLink()

	f.contactRepo.EXPECT().ListByTenant(gomock.Any(), "tenant-1").Return([]domain.Contact{
		{TenantID: "tenant-1", Destination: "5511999990000"},
		{TenantID: "tenant-1", Destination: "5511888880000"},
	}, nil)
	f.chargeRepo.EXPECT().GetCustomerName(gomock.Any(), "ORDER-42").Return("", nil)
	f.gateway.EXPECT().Send(gomock.Any(), "5511999990000", gomock.Any()).
		Return(errors.New("session offline"))
	f.gateway.EXPECT().Send(gomock.Any(), "5511888880000", gomock.Any()).Return(nil)
	f.paymentRepo.EXPECT().MarkNotified(gomock.Any(), "E2E123456789").Return(nil)

	result, err := f.svc.MaybeNotify(context.Background(), link, details, firedTransition(details))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.Delivered)
	assert.Equal(t, 1, result.Failed)
}

func TestMaybeNotify_ChargeLookupFailureFallsBackToPayerName(t *testing.T) {
	f := newNotifyFixture(t)
	details := notifyDetails()
	link := notifyLink()

	f.contactRepo.EXPECT().ListByTenant(gomock.Any(), "tenant-1").Return([]domain.Contact{
		{TenantID: "tenant-1", Destination: "5511999990000"},
	}, nil)
	f.chargeRepo.EXPECT().GetCustomerName(gomock.Any(), "ORDER-42").Return("", errors.New("db down"))
	f.gateway.EXPECT().Send(gomock.Any(), "5511999990000", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, text string) error {
			assert.Contains(t, text, "Maria Silva")
			return nil
		})
	f.paymentRepo.EXPECT().MarkNotified(gomock.Any(), "E2E123456789").Return(nil)

	_, err := f.svc.MaybeNotify(context.Background(), link, details, firedTransition(details))
	require.NoError(t, err)
}

func TestMaybeNotify_NoContactsStillMarksNotified(t *testing.T) {
	f := newNotifyFixture(t)
	details := notifyDetails()
	link := notifyLink()

	f.contactRepo.EXPECT().ListByTenant(gomock.Any(), "tenant-1").Return(nil, nil)
	f.chargeRepo.EXPECT().GetCustomerName(gomock.Any(), "ORDER-42").Return("Cliente Ltda", nil)
	f.paymentRepo.EXPECT().MarkNotified(gomock.Any(), "E2E123456789").Return(nil)

	result, err := f.svc.MaybeNotify(context.Background(), link, details, firedTransition(details))
	require.NoError(t, err)
	assert.Zero(t, result.Attempted)
}

func TestMaybeNotify_ContactListFailure(t *testing.T) {
	f := newNotifyFixture(t)
	details := notifyDetails()

	f.contactRepo.EXPECT().ListByTenant(gomock.Any(), "tenant-1").
		Return(nil, errors.New("db down"))

	_, err := f.svc.MaybeNotify(context.Background(), notifyLink(), details, firedTransition(details))
	assert.Error(t, err)
}
