package service

import (
	"context"
	"fmt"
	"time"

	"pix-recebidos/internal/core/domain"
	"pix-recebidos/internal/core/ports"
	"pix-recebidos/internal/metrics"
	"pix-recebidos/pkg/apperror"

	"github.com/rs/zerolog"
)

// credentialService implements ports.CredentialService.
//
// Token resolution order: Redis cache, then the credential record, then a
// fresh exchange at the provider. Cache failures are advisory; the record
// is the source of truth. Concurrent refreshes for the same tenant race
// benignly: last write wins and every issued token stays valid provider-side.
type credentialService struct {
	credRepo ports.CredentialRepository
	cache    ports.TokenCache
	auth     ports.AuthClient
	log      zerolog.Logger
}

// NewCredentialService creates a new credential service.
func NewCredentialService(
	credRepo ports.CredentialRepository,
	cache ports.TokenCache,
	auth ports.AuthClient,
	log zerolog.Logger,
) ports.CredentialService {
	return &credentialService{
		credRepo: credRepo,
		cache:    cache,
		auth:     auth,
		log:      log,
	}
}

// EnsureValidToken returns a bearer token guaranteed to outlive the expiry
// margin, refreshing through the provider when needed.
func (s *credentialService) EnsureValidToken(ctx context.Context, tenantID, subAccountID string) (string, error) {
	cached, err := s.cache.Get(ctx, tenantID, subAccountID)
	switch {
	case err != nil:
		metrics.TokenCacheHits.WithLabelValues("error").Inc()
		s.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("token cache read failed, falling back to credential record")
	case cached != "":
		metrics.TokenCacheHits.WithLabelValues("hit").Inc()
		return cached, nil
	default:
		metrics.TokenCacheHits.WithLabelValues("miss").Inc()
	}

	cred, err := s.credRepo.Get(ctx, tenantID, subAccountID)
	if err != nil {
		return "", apperror.InternalError(fmt.Errorf("load credential: %w", err))
	}
	if cred == nil {
		return "", apperror.ErrCredentialNotFound(tenantID)
	}

	now := time.Now()
	if cred.TokenValid(now) {
		s.cacheToken(ctx, tenantID, subAccountID, *cred.BearerToken, cred.ExpiresAt.Sub(now))
		return *cred.BearerToken, nil
	}

	grant, err := s.auth.ExchangeClientCredentials(ctx, cred.ClientID, cred.ClientSecret)
	if err != nil {
		metrics.CredentialRefreshes.WithLabelValues("failure").Inc()
		return "", err
	}
	metrics.CredentialRefreshes.WithLabelValues("success").Inc()

	expiresAt := now.Add(grant.ExpiresIn)
	if err := s.credRepo.UpdateToken(ctx, tenantID, subAccountID, grant.AccessToken, expiresAt); err != nil {
		// The fresh token is still good for this reconciliation; the next
		// one will refresh again.
		s.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("persisting refreshed token failed")
	}
	s.cacheToken(ctx, tenantID, subAccountID, grant.AccessToken, grant.ExpiresIn)

	s.log.Info().
		Str("tenant_id", tenantID).
		Str("sub_account_id", subAccountID).
		Time("expires_at", expiresAt).
		Msg("provider token refreshed")

	return grant.AccessToken, nil
}

// cacheToken stores the token with a TTL clipped by the expiry margin, so a
// cache hit can never return a token inside its margin.
func (s *credentialService) cacheToken(ctx context.Context, tenantID, subAccountID, token string, remaining time.Duration) {
	ttl := remaining - domain.TokenExpiryMargin
	if ttl <= 0 {
		return
	}
	if err := s.cache.Set(ctx, tenantID, subAccountID, token, ttl); err != nil {
		s.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("token cache write failed")
	}
}
