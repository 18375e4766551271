package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2HashService_HashAndVerify(t *testing.T) {
	svc := NewArgon2HashService()

	hash, err := svc.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	valid, err := svc.Verify("correct horse battery staple", hash)
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = svc.Verify("wrong password", hash)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestArgon2HashService_UniqueSalts(t *testing.T) {
	svc := NewArgon2HashService()

	h1, err := svc.Hash("same password")
	require.NoError(t, err)
	h2, err := svc.Hash("same password")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "salts must differ between hashes")
}

func TestArgon2HashService_VerifyMalformedHash(t *testing.T) {
	svc := NewArgon2HashService()

	_, err := svc.Verify("password", "$bcrypt$garbage")
	assert.Error(t, err)
}
