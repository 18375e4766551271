package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "pix-recebidos")

	token, expiry, err := svc.Generate("operator")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiry, 5*time.Second)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "operator", claims.Username)
}

func TestJWTTokenService_ValidateWrongSecret(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "pix-recebidos")
	other := NewJWTTokenService("another-secret", time.Hour, "pix-recebidos")

	token, _, err := svc.Generate("operator")
	require.NoError(t, err)

	_, err = other.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_ValidateExpired(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", -time.Minute, "pix-recebidos")

	token, _, err := svc.Generate("operator")
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.Error(t, err)
}

func TestJWTTokenService_ValidateGarbage(t *testing.T) {
	svc := NewJWTTokenService("test-secret-key", time.Hour, "pix-recebidos")

	_, err := svc.Validate("not.a.token")
	assert.Error(t, err)
}
