package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"pix-recebidos/config"
	"pix-recebidos/internal/core/domain"
	"pix-recebidos/internal/core/ports"
	"pix-recebidos/internal/metrics"
	"pix-recebidos/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reconcileService implements ports.ReconcileService. It coordinates the
// pipeline for one inbound webhook: authenticate, audit, resolve the charge
// link, fetch authoritative details, upsert, and maybe notify.
//
// Once the event is audited, the provider always gets a 2xx: any failure in
// the sub-chain is demoted to a warning on the result so the provider does
// not retry deliveries we have already recorded.
type reconcileService struct {
	eventRepo   ports.EventRepository
	linkRepo    ports.LinkRepository
	credSvc     ports.CredentialService
	queryClient ports.QueryClient
	paymentRepo ports.PaymentRepository
	notifySvc   ports.NotificationService

	secret        string
	confirmEvents map[string]struct{}
	policy        domain.ConfirmationPolicy
	log           zerolog.Logger
}

// NewReconcileService creates a new reconcile service.
func NewReconcileService(
	eventRepo ports.EventRepository,
	linkRepo ports.LinkRepository,
	credSvc ports.CredentialService,
	queryClient ports.QueryClient,
	paymentRepo ports.PaymentRepository,
	notifySvc ports.NotificationService,
	webhookCfg config.WebhookConfig,
	policy domain.ConfirmationPolicy,
	log zerolog.Logger,
) ports.ReconcileService {
	confirmEvents := make(map[string]struct{}, len(webhookCfg.ConfirmEvents))
	for _, e := range webhookCfg.ConfirmEvents {
		confirmEvents[strings.ToLower(e)] = struct{}{}
	}
	return &reconcileService{
		eventRepo:     eventRepo,
		linkRepo:      linkRepo,
		credSvc:       credSvc,
		queryClient:   queryClient,
		paymentRepo:   paymentRepo,
		notifySvc:     notifySvc,
		secret:        webhookCfg.Secret,
		confirmEvents: confirmEvents,
		policy:        policy,
		log:           log,
	}
}

// Process runs the pipeline for one delivery. An error return means the
// provider should not get a 2xx: only authentication, payload extraction,
// and the audit write can produce one.
func (s *reconcileService) Process(ctx context.Context, in ports.InboundWebhook) (*ports.ReconcileResult, error) {
	if !s.authorized(in.Headers) {
		metrics.WebhooksRejected.WithLabelValues("unauthorized").Inc()
		return nil, apperror.ErrUnauthorized()
	}

	eventType, paymentID := domain.ExtractEventFields(in.Body)
	if paymentID == "" {
		metrics.WebhooksRejected.WithLabelValues("malformed").Inc()
		return nil, apperror.ErrMalformedPayload("no payment identifier found")
	}

	event := &domain.WebhookEvent{
		ID:         uuid.New(),
		EventType:  eventType,
		PaymentID:  paymentID,
		Headers:    in.Headers,
		RawBody:    in.Body,
		ReceivedAt: time.Now().UTC(),
	}
	if err := s.eventRepo.Append(ctx, event); err != nil {
		// The audit trail is the one non-negotiable write. Without it the
		// provider must retry.
		return nil, apperror.InternalError(fmt.Errorf("append webhook event: %w", err))
	}

	start := time.Now()
	defer func() {
		metrics.ReconcileDuration.Observe(time.Since(start).Seconds())
	}()

	result := &ports.ReconcileResult{EventID: event.ID}
	log := s.log.With().
		Stringer("event_id", event.ID).
		Str("event_type", eventType).
		Str("payment_id", paymentID).
		Logger()

	if _, ok := s.confirmEvents[strings.ToLower(eventType)]; !ok {
		result.Outcome = ports.OutcomeIgnored
		log.Info().Msg("event type outside confirmation vocabulary, audited only")
		return s.finish(result), nil
	}

	link, err := s.linkRepo.GetByPaymentID(ctx, paymentID)
	if err != nil {
		return s.demote(result, log, fmt.Errorf("resolve link: %w", err)), nil
	}
	if link == nil {
		result.Outcome = ports.OutcomeUnlinked
		log.Info().Msg("no charge link for payment, audited only")
		return s.finish(result), nil
	}

	token, err := s.credSvc.EnsureValidToken(ctx, link.TenantID, link.SubAccountID)
	if err != nil {
		return s.demote(result, log, err), nil
	}

	queryStart := time.Now()
	details, err := s.queryClient.FetchPayment(ctx, paymentID, token)
	metrics.ProviderQueryDuration.Observe(time.Since(queryStart).Seconds())
	if err != nil {
		return s.demote(result, log, err), nil
	}

	transition, err := s.paymentRepo.Upsert(ctx, s.buildRecord(link, details))
	if err != nil {
		return s.demote(result, log, err), nil
	}
	result.Outcome = ports.OutcomeReconciled

	notify, err := s.notifySvc.MaybeNotify(ctx, link, details, transition)
	if err != nil {
		result.Warning = err.Error()
		log.Warn().Err(err).Msg("notification fan-out failed")
		return s.finish(result), nil
	}
	if notify.Attempted > 0 {
		result.Outcome = ports.OutcomeNotified
		if notify.Failed > 0 {
			result.Warning = fmt.Sprintf("%d of %d notifications failed", notify.Failed, notify.Attempted)
		}
	}

	log.Info().
		Str("outcome", result.Outcome).
		Int("notified", notify.Delivered).
		Msg("webhook reconciled")
	return s.finish(result), nil
}

// authorized compares the Authorization header against the shared secret in
// constant time. An unset secret rejects everything rather than accepting
// everything.
func (s *reconcileService) authorized(headers map[string]string) bool {
	if s.secret == "" {
		return false
	}
	auth := headers["Authorization"]
	if auth == "" {
		auth = headers["authorization"]
	}
	return subtle.ConstantTimeCompare([]byte(auth), []byte(s.secret)) == 1
}

// buildRecord maps provider details onto the stored record. confirmed_at is
// the provider's liquidation time when given, else the observation time.
func (s *reconcileService) buildRecord(link *domain.PaymentLink, details *domain.PaymentDetails) *domain.PaymentRecord {
	rec := &domain.PaymentRecord{
		PaymentID:      details.PaymentID,
		AmountCentavos: details.AmountCentavos,
		Status:         details.Status,
		PayerName:      details.PayerName,
		PayerDocument:  details.PayerDocument,
		RawDetails:     details.Raw,
		TenantID:       link.TenantID,
		SubAccountID:   link.SubAccountID,
		ChargeID:       link.ChargeID,
	}
	if s.policy.Confirmed(details) {
		if details.PaidAt != nil {
			rec.ConfirmedAt = details.PaidAt
		} else {
			now := time.Now().UTC()
			rec.ConfirmedAt = &now
		}
	}
	return rec
}

func (s *reconcileService) demote(result *ports.ReconcileResult, log zerolog.Logger, err error) *ports.ReconcileResult {
	result.Outcome = ports.OutcomeFailed
	result.Warning = err.Error()
	log.Warn().Err(err).Msg("reconciliation sub-chain failed, acknowledging anyway")
	return s.finish(result)
}

func (s *reconcileService) finish(result *ports.ReconcileResult) *ports.ReconcileResult {
	metrics.WebhooksReceived.WithLabelValues(result.Outcome).Inc()
	return result
}
