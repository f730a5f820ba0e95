package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("123456")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "123456", hash)

	assert.True(t, VerifyPassword("123456", hash))
	assert.False(t, VerifyPassword("1234567", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPasswordUsesFreshSalt(t *testing.T) {
	first, err := HashPassword("hunter2secret")
	require.NoError(t, err)
	second, err := HashPassword("hunter2secret")
	require.NoError(t, err)

	// per-call salt makes hashing non-deterministic
	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("hunter2secret", first))
	assert.True(t, VerifyPassword("hunter2secret", second))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	assert.False(t, VerifyPassword("123456", "not-a-bcrypt-hash"))
	assert.False(t, VerifyPassword("123456", ""))
}
