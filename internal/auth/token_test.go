package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoapi/internal/user"
)

var testTokenKey = []byte("0123456789abcdef0123456789abcdef")

func newTestTokenService(t *testing.T, duration time.Duration) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testTokenKey, duration)
	require.NoError(t, err)
	return svc
}

func TestNewTokenServiceRejectsBadKey(t *testing.T) {
	_, err := NewTokenService([]byte("too-short"), time.Hour)
	assert.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	token, err := svc.Issue("5f8d0d55b54764421b7156c3", user.PurposeAuth)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "5f8d0d55b54764421b7156c3", claims.Subject)
	assert.Equal(t, user.PurposeAuth, claims.Purpose)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt, 5*time.Second)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
}

func TestParseRejectsMalformedToken(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	for _, raw := range []string{"", "garbage", "v4.local.AAAA"} {
		_, err := svc.Parse(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", raw)
	}
}

func TestParseRejectsTokenFromDifferentKey(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	other, err := NewTokenService([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	require.NoError(t, err)

	token, err := other.Issue("5f8d0d55b54764421b7156c3", user.PurposeAuth)
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)

	token, err := svc.Issue("5f8d0d55b54764421b7156c3", user.PurposeAuth)
	require.NoError(t, err)

	_, err = svc.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
