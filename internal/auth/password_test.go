package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/apiempleados/api-empleados/internal/auth"
	"github.com/apiempleados/api-empleados/internal/shared"
)

func TestBcryptHasherHashAndVerify(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, hasher.Verify("secret1", hash))
	assert.ErrorIs(t, hasher.Verify("secret2", hash), auth.ErrHashMismatch)
	assert.NotErrorIs(t, hasher.Verify("secret2", hash), shared.ErrPasswordMismatch)

	again, err := hasher.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "bcrypt salts each hash")
}

func TestBcryptHasherCostFallback(t *testing.T) {
	hasher := auth.NewBcryptHasher(99)
	hash, err := hasher.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasherRejectsGarbageHash(t *testing.T) {
	err := auth.NewBcryptHasher(bcrypt.MinCost).Verify("secret1", "not-a-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, auth.ErrHashMismatch)
}
