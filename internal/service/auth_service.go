package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"pix-recebidos/config"
	"pix-recebidos/internal/core/ports"
	"pix-recebidos/pkg/apperror"
)

// operatorAuthService implements ports.AuthService against the single
// operator account configured for the dashboard. There is no user store;
// the username and Argon2id password hash come from configuration.
type operatorAuthService struct {
	username     string
	passwordHash string
	hashSvc      ports.HashService
	tokenSvc     ports.TokenService
}

// NewAuthService creates a new operator auth service.
func NewAuthService(cfg config.OperatorConfig, hashSvc ports.HashService, tokenSvc ports.TokenService) ports.AuthService {
	return &operatorAuthService{
		username:     cfg.Username,
		passwordHash: cfg.PasswordHash,
		hashSvc:      hashSvc,
		tokenSvc:     tokenSvc,
	}
}

// Login validates operator credentials and returns a JWT token. An account
// with no configured hash cannot log in.
func (s *operatorAuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if s.username == "" || s.passwordHash == "" {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}
	if subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 {
		// Verify against the real hash anyway to keep timing flat.
		_, _ = s.hashSvc.Verify(password, s.passwordHash)
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	valid, err := s.hashSvc.Verify(password, s.passwordHash)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("verify password: %w", err))
	}
	if !valid {
		return "", time.Time{}, apperror.ErrInvalidCredentials()
	}

	token, expiry, err := s.tokenSvc.Generate(username)
	if err != nil {
		return "", time.Time{}, apperror.InternalError(fmt.Errorf("generate token: %w", err))
	}

	return token, expiry, nil
}
