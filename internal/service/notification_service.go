package service

import (
	"context"
	"fmt"

	"pix-recebidos/internal/core/domain"
	"pix-recebidos/internal/core/ports"
	"pix-recebidos/internal/metrics"
	"pix-recebidos/pkg/apperror"

	"github.com/rs/zerolog"
)

// notificationService implements ports.NotificationService.
type notificationService struct {
	contactRepo ports.ContactRepository
	chargeRepo  ports.ChargeRepository
	paymentRepo ports.PaymentRepository
	gateway     ports.MessageGateway
	policy      domain.ConfirmationPolicy
	log         zerolog.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(
	contactRepo ports.ContactRepository,
	chargeRepo ports.ChargeRepository,
	paymentRepo ports.PaymentRepository,
	gateway ports.MessageGateway,
	policy domain.ConfirmationPolicy,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{
		contactRepo: contactRepo,
		chargeRepo:  chargeRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		policy:      policy,
		log:         log,
	}
}

// MaybeNotify fans the confirmation message out to the tenant's contacts
// when, and only when, this delivery flipped confirmed_at from null to a
// value. The upsert hands out that transition exactly once per payment, so
// the fan-out runs at most once regardless of replays. Per-destination
// failures are counted, logged, and never block sibling destinations.
func (s *notificationService) MaybeNotify(ctx context.Context, link *domain.PaymentLink, details *domain.PaymentDetails, transition domain.Transition) (*ports.NotificationResult, error) {
	result := &ports.NotificationResult{}

	if !transition.IsNewlyConfirmed() || !s.policy.Confirmed(details) {
		return result, nil
	}

	contacts, err := s.contactRepo.ListByTenant(ctx, link.TenantID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list contacts: %w", err))
	}

	text := s.composeMessage(ctx, link, details)

	for _, contact := range contacts {
		result.Attempted++
		if err := s.gateway.Send(ctx, contact.Destination, text); err != nil {
			result.Failed++
			metrics.NotificationsSent.WithLabelValues("failure").Inc()
			s.log.Warn().Err(err).
				Str("payment_id", details.PaymentID).
				Str("destination", contact.Destination).
				Msg("notification delivery failed")
			continue
		}
		result.Delivered++
		metrics.NotificationsSent.WithLabelValues("success").Inc()
	}

	// The flag records that the fan-out ran, not that every destination got
	// the message. Undelivered destinations are not retried.
	if err := s.paymentRepo.MarkNotified(ctx, details.PaymentID); err != nil {
		s.log.Warn().Err(err).Str("payment_id", details.PaymentID).Msg("marking payment notified failed")
	}

	return result, nil
}

// composeMessage builds the operator-facing confirmation text. The customer
// name from the local charge wins over the payer name the provider reports.
func (s *notificationService) composeMessage(ctx context.Context, link *domain.PaymentLink, details *domain.PaymentDetails) string {
	name := ""
	if link.OrderRef != "" {
		var err error
		name, err = s.chargeRepo.GetCustomerName(ctx, link.OrderRef)
		if err != nil {
			s.log.Warn().Err(err).Str("order_ref", link.OrderRef).Msg("charge lookup failed, using payer name")
			name = ""
		}
	}
	if name == "" {
		name = details.PayerName
	}

	amount := domain.FormatReais(details.AmountCentavos)
	if name == "" {
		return fmt.Sprintf("PIX recebido: %s (pedido %s)", amount, link.OrderRef)
	}
	return fmt.Sprintf("PIX recebido de %s: %s (pedido %s)", name, amount, link.OrderRef)
}
