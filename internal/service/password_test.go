package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"portfolio-api/internal/model"
)

func TestNewPasswordHasherCostBounds(t *testing.T) {
	t.Parallel()

	_, err := NewPasswordHasher(MinBcryptCost - 1)
	require.Error(t, err)

	_, err = NewPasswordHasher(bcrypt.MaxCost + 1)
	require.Error(t, err)

	_, err = NewPasswordHasher(MinBcryptCost)
	require.NoError(t, err)
}

func TestPasswordHasher(t *testing.T) {
	t.Parallel()

	hasher, err := NewPasswordHasher(MinBcryptCost)
	require.NoError(t, err)

	first, err := hasher.Hash("correct horse")
	require.NoError(t, err)
	second, err := hasher.Hash("correct horse")
	require.NoError(t, err)

	t.Run("salts every hash", func(t *testing.T) {
		assert.NotEqual(t, first, second)
		cost, err := bcrypt.Cost([]byte(first))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, cost, MinBcryptCost)
	})

	t.Run("round trip", func(t *testing.T) {
		ok, err := hasher.Verify("correct horse", first)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = hasher.Verify("correct horse", second)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("mismatch is not an error", func(t *testing.T) {
		ok, err := hasher.Verify("battery staple", first)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("corrupt hash is an integrity error", func(t *testing.T) {
		ok, err := hasher.Verify("correct horse", "not-a-bcrypt-hash")
		require.ErrorIs(t, err, model.ErrIntegrity)
		assert.False(t, ok)
	})
}
